package entity

import (
	"time"
)

// JobStatus 工单状态
const (
	JobStatusPending    = "PENDING"
	JobStatusInProgress = "IN_PROGRESS"
	JobStatusCompleted  = "COMPLETED"
)

// JobCard 维修工单
type JobCard struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	ShopID         string     `json:"shop_id" gorm:"size:36;not null;index;index:idx_job_cards_shop_number,unique,priority:1"`
	JobNumber      string     `json:"job_number" gorm:"size:20;not null;index:idx_job_cards_shop_number,unique,priority:2"`
	CustomerName   string     `json:"customer_name" gorm:"size:200;not null"`
	CustomerPhone  string     `json:"customer_phone" gorm:"size:50"`
	CustomerEmail  string     `json:"customer_email" gorm:"size:200"`
	VehicleMake    string     `json:"vehicle_make" gorm:"size:100"`
	VehicleModel   string     `json:"vehicle_model" gorm:"size:100"`
	VehicleYear    string     `json:"vehicle_year" gorm:"size:10"`
	RegistrationNo string     `json:"registration_no" gorm:"size:50"`
	Mileage        string     `json:"mileage" gorm:"size:20"`
	Description    string     `json:"description" gorm:"type:text"`
	Status         string     `json:"status" gorm:"size:20;not null;default:PENDING;index"`
	EstimatedCost  float64    `json:"estimated_cost" gorm:"type:decimal(12,2);default:0"`

	// 排班
	MechanicID     *string    `json:"mechanic_id" gorm:"size:36;index"`
	ScheduledDate  *time.Time `json:"scheduled_date" gorm:"index"`
	ScheduledTime  string     `json:"scheduled_time" gorm:"size:10"`
	EstimatedHours float64    `json:"estimated_hours" gorm:"type:decimal(6,2);default:0"`

	// 派生汇总，始终等于未退回Part与JobCost行之和，不可独立写入
	TotalParts float64 `json:"total_parts" gorm:"type:decimal(12,2);default:0"`
	TotalLabor float64 `json:"total_labor" gorm:"type:decimal(12,2);default:0"`
	TotalOther float64 `json:"total_other" gorm:"type:decimal(12,2);default:0"`
	FinalCost  float64 `json:"final_cost" gorm:"type:decimal(12,2);default:0"`

	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Mechanic      *Mechanic          `json:"mechanic,omitempty" gorm:"foreignKey:MechanicID"`
	Parts         []Part             `json:"parts,omitempty" gorm:"foreignKey:JobCardID"`
	Costs         []JobCost          `json:"costs,omitempty" gorm:"foreignKey:JobCardID"`
	StatusHistory []JobStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:JobCardID"`
	Notes         []JobNote          `json:"notes,omitempty" gorm:"foreignKey:JobCardID"`
}

func (JobCard) TableName() string {
	return "job_cards"
}

// JobStatusHistory 工单状态变更记录，只追加
type JobStatusHistory struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	JobCardID  string    `json:"job_card_id" gorm:"size:36;not null;index"`
	FromStatus string    `json:"from_status" gorm:"size:20"`
	ToStatus   string    `json:"to_status" gorm:"size:20;not null"`
	Notes      string    `json:"notes" gorm:"type:text"`
	ChangedBy  string    `json:"changed_by" gorm:"size:64;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (JobStatusHistory) TableName() string {
	return "job_status_history"
}

// JobNote 工单备注
type JobNote struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	JobCardID string    `json:"job_card_id" gorm:"size:36;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedBy string    `json:"created_by" gorm:"size:64;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (JobNote) TableName() string {
	return "job_notes"
}
