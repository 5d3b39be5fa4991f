package entity

import (
	"time"
)

// Supplier 供应商
type Supplier struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ShopID      string    `json:"shop_id" gorm:"size:36;not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	ContactName string    `json:"contact_name" gorm:"size:200"`
	Phone       string    `json:"phone" gorm:"size:50"`
	Email       string    `json:"email" gorm:"size:200"`
	Address     string    `json:"address" gorm:"size:500"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
