package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
)

// ScheduleService 排班服务
type ScheduleService struct {
	jobRepo      *repository.JobCardRepository
	mechanicRepo *repository.MechanicRepository
}

func NewScheduleService(jobRepo *repository.JobCardRepository, mechanicRepo *repository.MechanicRepository) *ScheduleService {
	return &ScheduleService{jobRepo: jobRepo, mechanicRepo: mechanicRepo}
}

// ScheduleRequest 排班请求
type ScheduleRequest struct {
	MechanicID     string  `json:"mechanic_id" binding:"required"`
	ScheduledDate  string  `json:"scheduled_date" binding:"required"` // YYYY-MM-DD
	ScheduledTime  string  `json:"scheduled_time" binding:"required"` // 如 09:00
	EstimatedHours float64 `json:"estimated_hours"`
}

// ScheduleJob 给工单派工。同一技师同日同时段只允许一个工单，
// 冲突检测是精确时段匹配，不考虑时长重叠。派工后工单进入IN_PROGRESS。
func (s *ScheduleService) ScheduleJob(ctx context.Context, shopID, jobCardID string, req *ScheduleRequest) (*entity.JobCard, error) {
	job, err := s.jobRepo.FindByID(ctx, shopID, jobCardID)
	if err != nil {
		return nil, err
	}

	mechanic, err := s.mechanicRepo.FindByID(ctx, shopID, req.MechanicID)
	if err != nil {
		return nil, err
	}
	if !mechanic.IsActive {
		return nil, fmt.Errorf("%w: mechanic %s is not active", ErrValidation, mechanic.Name)
	}

	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_date must be YYYY-MM-DD", ErrValidation)
	}

	conflicts, err := s.jobRepo.CountSlotConflicts(ctx, shopID, req.MechanicID, date, req.ScheduledTime, job.ID)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, fmt.Errorf("%w: mechanic already booked at %s %s", ErrScheduleConflict, req.ScheduledDate, req.ScheduledTime)
	}

	job.MechanicID = &mechanic.ID
	job.ScheduledDate = &date
	job.ScheduledTime = req.ScheduledTime
	job.EstimatedHours = req.EstimatedHours
	job.Status = entity.JobStatusInProgress

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateScheduleRequest 调整排班请求，逐字段选更
type UpdateScheduleRequest struct {
	MechanicID     *string  `json:"mechanic_id"`
	ScheduledDate  *string  `json:"scheduled_date"`
	ScheduledTime  *string  `json:"scheduled_time"`
	EstimatedHours *float64 `json:"estimated_hours"`
}

// UpdateSchedule 调整已有排班，变更时段或技师时重新查冲突
func (s *ScheduleService) UpdateSchedule(ctx context.Context, shopID, jobCardID string, req *UpdateScheduleRequest) (*entity.JobCard, error) {
	job, err := s.jobRepo.FindByID(ctx, shopID, jobCardID)
	if err != nil {
		return nil, err
	}
	if job.MechanicID == nil || job.ScheduledDate == nil {
		return nil, fmt.Errorf("%w: job is not scheduled", ErrValidation)
	}

	mechanicID := *job.MechanicID
	date := *job.ScheduledDate
	timeSlot := job.ScheduledTime

	if req.MechanicID != nil {
		mechanic, err := s.mechanicRepo.FindByID(ctx, shopID, *req.MechanicID)
		if err != nil {
			return nil, err
		}
		if !mechanic.IsActive {
			return nil, fmt.Errorf("%w: mechanic %s is not active", ErrValidation, mechanic.Name)
		}
		mechanicID = mechanic.ID
	}
	if req.ScheduledDate != nil {
		date, err = time.Parse("2006-01-02", *req.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("%w: scheduled_date must be YYYY-MM-DD", ErrValidation)
		}
	}
	if req.ScheduledTime != nil {
		timeSlot = *req.ScheduledTime
	}

	conflicts, err := s.jobRepo.CountSlotConflicts(ctx, shopID, mechanicID, date, timeSlot, job.ID)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, fmt.Errorf("%w: mechanic already booked at %s %s", ErrScheduleConflict, date.Format("2006-01-02"), timeSlot)
	}

	job.MechanicID = &mechanicID
	job.ScheduledDate = &date
	job.ScheduledTime = timeSlot
	if req.EstimatedHours != nil {
		job.EstimatedHours = *req.EstimatedHours
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ScheduleOverview 排班总览
type ScheduleOverview struct {
	Scheduled   []entity.JobCard `json:"scheduled"`
	Unscheduled []entity.JobCard `json:"unscheduled"`
}

// GetSchedule 排班总览。date为空返回全部已排班工单。
func (s *ScheduleService) GetSchedule(ctx context.Context, shopID, dateStr string) (*ScheduleOverview, error) {
	var date *time.Time
	if dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		date = &d
	}

	scheduled, err := s.jobRepo.FindScheduled(ctx, shopID, date)
	if err != nil {
		return nil, err
	}
	unscheduled, err := s.jobRepo.FindUnscheduled(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return &ScheduleOverview{Scheduled: scheduled, Unscheduled: unscheduled}, nil
}

// GetMechanicJobs 技师当前在排工单
func (s *ScheduleService) GetMechanicJobs(ctx context.Context, shopID, mechanicID string) ([]entity.JobCard, error) {
	if _, err := s.mechanicRepo.FindByID(ctx, shopID, mechanicID); err != nil {
		return nil, err
	}
	return s.jobRepo.FindAssigned(ctx, shopID, mechanicID)
}
