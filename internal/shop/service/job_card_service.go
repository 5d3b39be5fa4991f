package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobCardService 工单服务
type JobCardService struct {
	repo *repository.JobCardRepository
	db   *gorm.DB
}

func NewJobCardService(repo *repository.JobCardRepository, db *gorm.DB) *JobCardService {
	return &JobCardService{repo: repo, db: db}
}

// CreateJobCardRequest 创建工单请求
type CreateJobCardRequest struct {
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail string  `json:"customer_email"`
	VehicleMake   string  `json:"vehicle_make"`
	VehicleModel  string  `json:"vehicle_model"`
	VehicleYear   string  `json:"vehicle_year"`
	RegistrationNo string `json:"registration_no"`
	Mileage       string  `json:"mileage"`
	Description   string  `json:"description"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Create 创建工单。工单号在同一事务内按店铺+月份序列生成，
// 唯一索引兜底并发撞号。
func (s *JobCardService) Create(ctx context.Context, shopID, userID string, req *CreateJobCardRequest) (*entity.JobCard, error) {
	job := &entity.JobCard{
		ID:             uuid.New().String(),
		ShopID:         shopID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		VehicleMake:    req.VehicleMake,
		VehicleModel:   req.VehicleModel,
		VehicleYear:    req.VehicleYear,
		RegistrationNo: req.RegistrationNo,
		Mileage:        req.Mileage,
		Description:    req.Description,
		Status:         entity.JobStatusPending,
		EstimatedCost:  req.EstimatedCost,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.repo.GenerateJobNumber(ctx, tx, shopID)
		if err != nil {
			return err
		}
		job.JobNumber = number

		if err := tx.Create(job).Error; err != nil {
			return err
		}

		return tx.Create(&entity.JobStatusHistory{
			ID:        uuid.New().String(),
			JobCardID: job.ID,
			ToStatus:  entity.JobStatusPending,
			Notes:     "Job card created",
			ChangedBy: userID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// List 工单列表，按状态筛选
func (s *JobCardService) List(ctx context.Context, shopID, status string) ([]entity.JobCard, error) {
	return s.repo.FindAll(ctx, shopID, status)
}

// Get 工单详情，含配件、费用、状态历史与备注
func (s *JobCardService) Get(ctx context.Context, shopID, id string) (*entity.JobCard, error) {
	return s.repo.FindByIDWithDetails(ctx, shopID, id)
}

// UpdateJobCardRequest 更新工单请求，逐字段选更
type UpdateJobCardRequest struct {
	CustomerName   *string  `json:"customer_name"`
	CustomerPhone  *string  `json:"customer_phone"`
	CustomerEmail  *string  `json:"customer_email"`
	VehicleMake    *string  `json:"vehicle_make"`
	VehicleModel   *string  `json:"vehicle_model"`
	VehicleYear    *string  `json:"vehicle_year"`
	RegistrationNo *string  `json:"registration_no"`
	Mileage        *string  `json:"mileage"`
	Description    *string  `json:"description"`
	EstimatedCost  *float64 `json:"estimated_cost"`
}

// Update 更新工单描述字段。汇总金额与工单号由系统维护，不可直改。
func (s *JobCardService) Update(ctx context.Context, shopID, id string, req *UpdateJobCardRequest) (*entity.JobCard, error) {
	job, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		job.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		job.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		job.CustomerEmail = *req.CustomerEmail
	}
	if req.VehicleMake != nil {
		job.VehicleMake = *req.VehicleMake
	}
	if req.VehicleModel != nil {
		job.VehicleModel = *req.VehicleModel
	}
	if req.VehicleYear != nil {
		job.VehicleYear = *req.VehicleYear
	}
	if req.RegistrationNo != nil {
		job.RegistrationNo = *req.RegistrationNo
	}
	if req.Mileage != nil {
		job.Mileage = *req.Mileage
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.EstimatedCost != nil {
		job.EstimatedCost = *req.EstimatedCost
	}

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete 删除工单
func (s *JobCardService) Delete(ctx context.Context, shopID, id string) error {
	return s.repo.Delete(ctx, shopID, id)
}

var validJobStatus = map[string]bool{
	entity.JobStatusPending:    true,
	entity.JobStatusInProgress: true,
	entity.JobStatusCompleted:  true,
}

// UpdateStatus 更新工单状态并追加状态历史
func (s *JobCardService) UpdateStatus(ctx context.Context, shopID, id, userID, status, notes string) (*entity.JobCard, error) {
	if !validJobStatus[status] {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	job, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": status}
		if status == entity.JobStatusCompleted {
			updates["completed_at"] = time.Now()
		}
		if err := tx.Model(&entity.JobCard{}).Where("id = ?", job.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&entity.JobStatusHistory{
			ID:         uuid.New().String(),
			JobCardID:  job.ID,
			FromStatus: job.Status,
			ToStatus:   status,
			Notes:      notes,
			ChangedBy:  userID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, shopID, id)
}

// AddNote 追加工单备注
func (s *JobCardService) AddNote(ctx context.Context, shopID, id, userID, content string) (*entity.JobNote, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: note content is required", ErrValidation)
	}
	if _, err := s.repo.FindByID(ctx, shopID, id); err != nil {
		return nil, err
	}

	note := &entity.JobNote{
		ID:        uuid.New().String(),
		JobCardID: id,
		Content:   content,
		CreatedBy: userID,
	}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
