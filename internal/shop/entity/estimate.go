package entity

import (
	"time"
)

// EstimateStatus 报价单状态
const (
	EstimateStatusDraft    = "DRAFT"
	EstimateStatusSent     = "SENT"
	EstimateStatusApproved = "APPROVED"
	EstimateStatusRejected = "REJECTED"
)

// Estimate 维修报价单
type Estimate struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	ShopID         string     `json:"shop_id" gorm:"size:36;not null;index"`
	JobCardID      string     `json:"job_card_id" gorm:"size:36;not null;index"`
	EstimateNumber string     `json:"estimate_number" gorm:"size:20;not null"`
	Status         string     `json:"status" gorm:"size:20;not null;default:DRAFT"`
	Subtotal       float64    `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	TaxAmount      float64    `json:"tax_amount" gorm:"type:decimal(12,2);default:0"`
	DiscountRate   float64    `json:"discount_rate" gorm:"type:decimal(6,2);default:0"`
	DiscountAmount float64    `json:"discount_amount" gorm:"type:decimal(12,2);default:0"`
	Total          float64    `json:"total" gorm:"type:decimal(12,2);not null"`

	TermsAndConditions string     `json:"terms_and_conditions" gorm:"type:text"`
	ValidUntil         *time.Time `json:"valid_until"`
	Notes              string     `json:"notes" gorm:"type:text"`
	SentAt             *time.Time `json:"sent_at"`
	ApprovedAt         *time.Time `json:"approved_at"`
	RejectedAt         *time.Time `json:"rejected_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items   []EstimateItem `json:"items,omitempty" gorm:"foreignKey:EstimateID"`
	JobCard *JobCard       `json:"job_card,omitempty" gorm:"foreignKey:JobCardID"`
}

func (Estimate) TableName() string {
	return "estimates"
}

// EstimateItem 报价单行项
type EstimateItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	EstimateID  string    `json:"estimate_id" gorm:"size:36;not null;index"`
	Type        string    `json:"type" gorm:"size:20;not null"` // PARTS/LABOR/OTHER
	Description string    `json:"description" gorm:"size:500;not null"`
	Quantity    float64   `json:"quantity" gorm:"type:decimal(10,2);not null"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Notes       string    `json:"notes" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
}

func (EstimateItem) TableName() string {
	return "estimate_items"
}
