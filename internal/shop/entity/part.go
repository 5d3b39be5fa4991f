package entity

import (
	"time"
)

// PartStatus 配件状态
const (
	PartStatusPending   = "PENDING"
	PartStatusInstalled = "INSTALLED"
	PartStatusReturned  = "RETURNED"
)

// JobCostType 费用类型
const (
	JobCostTypeLabor = "LABOR"
	JobCostTypeOther = "OTHER"
)

// Part 工单配件行项。InventoryID非空表示从库存领用，
// 名称与价格为领用时刻的库存快照，后续库存改价不回溯。
type Part struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	ShopID      string  `json:"shop_id" gorm:"size:36;not null;index"`
	JobCardID   string  `json:"job_card_id" gorm:"size:36;not null;index"`
	InventoryID *string `json:"inventory_id" gorm:"size:36;index"`

	Name         string  `json:"name" gorm:"size:200;not null"`
	PartNumber   string  `json:"part_number" gorm:"size:100"`
	Quantity     int     `json:"quantity" gorm:"not null;default:1"`
	CostPrice    float64 `json:"cost_price" gorm:"type:decimal(12,2);default:0"`
	SellingPrice float64 `json:"selling_price" gorm:"type:decimal(12,2);default:0"`
	Supplier     string  `json:"supplier" gorm:"size:200"`
	Status       string  `json:"status" gorm:"size:20;not null;default:PENDING"`

	InstalledAt  *time.Time `json:"installed_at"`
	InstalledBy  string     `json:"installed_by" gorm:"size:64"`
	ReturnedAt   *time.Time `json:"returned_at"`
	ReturnReason string     `json:"return_reason" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Part) TableName() string {
	return "parts"
}

// JobCost 工单工时/其他费用行项
type JobCost struct {
	ID          string   `json:"id" gorm:"primaryKey;size:36"`
	JobCardID   string   `json:"job_card_id" gorm:"size:36;not null;index"`
	Type        string   `json:"type" gorm:"size:20;not null"` // LABOR/OTHER
	Description string   `json:"description" gorm:"size:500"`
	Hours       *float64 `json:"hours" gorm:"type:decimal(6,2)"`
	Rate        *float64 `json:"rate" gorm:"type:decimal(12,2)"`
	Amount      float64  `json:"amount" gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (JobCost) TableName() string {
	return "job_costs"
}
