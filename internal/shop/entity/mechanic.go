package entity

import (
	"time"
)

// Mechanic 技师
type Mechanic struct {
	ID          string      `json:"id" gorm:"primaryKey;size:36"`
	ShopID      string      `json:"shop_id" gorm:"size:36;not null;index"`
	Name        string      `json:"name" gorm:"size:200;not null"`
	Specialties *JSONBArray `json:"specialties" gorm:"type:jsonb"`
	Phone       string      `json:"phone" gorm:"size:50"`
	Email       string      `json:"email" gorm:"size:200"`
	IsActive    bool        `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Jobs []JobCard `json:"jobs,omitempty" gorm:"foreignKey:MechanicID"`
}

func (Mechanic) TableName() string {
	return "mechanics"
}
