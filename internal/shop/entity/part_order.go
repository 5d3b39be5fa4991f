package entity

import (
	"time"
)

// PartOrderStatus 采购订单状态
const (
	PartOrderStatusPending   = "PENDING"
	PartOrderStatusOrdered   = "ORDERED"
	PartOrderStatusComplete  = "COMPLETE"
	PartOrderStatusCancelled = "CANCELLED"
)

// PartOrder 配件采购订单
type PartOrder struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	ShopID     string    `json:"shop_id" gorm:"size:36;not null;index"`
	SupplierID string    `json:"supplier_id" gorm:"size:36;not null;index"`
	Status     string    `json:"status" gorm:"size:20;not null;default:PENDING"`
	Notes      string    `json:"notes" gorm:"type:text"`
	Total      float64   `json:"total" gorm:"type:decimal(12,2);default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Supplier *Supplier       `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Items    []PartOrderItem `json:"items,omitempty" gorm:"foreignKey:PartOrderID"`
}

func (PartOrder) TableName() string {
	return "part_orders"
}

// PartOrderItem 采购订单行项
type PartOrderItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	PartOrderID string    `json:"part_order_id" gorm:"size:36;not null;index"`
	PartNumber  string    `json:"part_number" gorm:"size:100;not null"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	CostPrice   float64   `json:"cost_price" gorm:"type:decimal(12,2);not null"`
	Total       float64   `json:"total" gorm:"type:decimal(12,2);not null"`
	Status      string    `json:"status" gorm:"size:20;not null;default:PENDING"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PartOrderItem) TableName() string {
	return "part_order_items"
}
