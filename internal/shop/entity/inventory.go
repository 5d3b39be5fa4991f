package entity

import (
	"time"
)

// AdjustmentType 库存调整方向
const (
	AdjustmentTypeIn  = "IN"
	AdjustmentTypeOut = "OUT"
)

// AdjustmentReason 库存调整原因
const (
	AdjustReasonJobPart  = "JOB_PART" // 工单领料
	AdjustReasonReturn   = "RETURN"   // 配件退回
	AdjustReasonRemoval  = "REMOVAL"  // 配件删除回库
	AdjustReasonPurchase = "PURCHASE" // 采购入库
	AdjustReasonManual   = "MANUAL"   // 人工调整
)

// Inventory 库存条目，(shop_id, part_number)唯一
type Inventory struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	ShopID      string  `json:"shop_id" gorm:"size:36;not null;index;index:idx_inventory_shop_part,unique,priority:1"`
	PartNumber  string  `json:"part_number" gorm:"size:100;not null;index:idx_inventory_shop_part,unique,priority:2"`
	Name        string  `json:"name" gorm:"size:200;not null"`
	Description string  `json:"description" gorm:"type:text"`

	// quantity只能通过带StockAdjustment记录的事务变更
	Quantity     int     `json:"quantity" gorm:"not null;default:0"`
	MinQuantity  int     `json:"min_quantity" gorm:"not null;default:0"`
	CostPrice    float64 `json:"cost_price" gorm:"type:decimal(12,2);default:0"`
	SellingPrice float64 `json:"selling_price" gorm:"type:decimal(12,2);default:0"`
	Location     string  `json:"location" gorm:"size:100"`
	Category     string  `json:"category" gorm:"size:100"`
	SupplierID   *string `json:"supplier_id" gorm:"size:36;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Supplier    *Supplier         `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Adjustments []StockAdjustment `json:"adjustments,omitempty" gorm:"foreignKey:InventoryID"`
}

func (Inventory) TableName() string {
	return "inventory_items"
}

// StockAdjustment 库存变动审计记录。只追加，不更新不删除。
type StockAdjustment struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ShopID      string    `json:"shop_id" gorm:"size:36;not null;index"`
	InventoryID string    `json:"inventory_id" gorm:"size:36;not null;index"`
	Type        string    `json:"type" gorm:"size:10;not null"` // IN/OUT
	Quantity    int       `json:"quantity" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"size:50;not null"`
	Notes       string    `json:"notes" gorm:"type:text"`
	Reference   string    `json:"reference" gorm:"size:100"` // 关联单据，如工单ID
	CreatedBy   string    `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Inventory *Inventory `json:"inventory,omitempty" gorm:"foreignKey:InventoryID"`
}

func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// InventorySettings 库存参数，每店一条。仅存储，不参与计算。
type InventorySettings struct {
	ID                    string    `json:"id" gorm:"primaryKey;size:36"`
	ShopID                string    `json:"shop_id" gorm:"size:36;uniqueIndex;not null"`
	OrderingCost          float64   `json:"ordering_cost" gorm:"type:decimal(12,2);default:500"`
	HoldingCostPercentage float64   `json:"holding_cost_percentage" gorm:"type:decimal(6,2);default:20"`
	SafetyStockPercentage float64   `json:"safety_stock_percentage" gorm:"type:decimal(6,2);default:20"`
	DefaultLeadTime       int       `json:"default_lead_time" gorm:"default:7"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (InventorySettings) TableName() string {
	return "inventory_settings"
}
