package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"gorm.io/gorm"
)

// JobCardRepository 工单仓库
type JobCardRepository struct {
	db *gorm.DB
}

func NewJobCardRepository(db *gorm.DB) *JobCardRepository {
	return &JobCardRepository{db: db}
}

// GenerateJobNumber 生成工单号 JOB-YYMM-NNNN。
// 序号按门店按月独立递增，不跨门店唯一。
func (r *JobCardRepository) GenerateJobNumber(ctx context.Context, tx *gorm.DB, shopID string) (string, error) {
	if tx == nil {
		tx = r.db
	}
	yymm := time.Now().Format("0601")
	prefix := fmt.Sprintf("JOB-%s-", yymm)

	var maxNumber string
	err := tx.WithContext(ctx).
		Model(&entity.JobCard{}).
		Select("COALESCE(MAX(job_number), '')").
		Where("shop_id = ? AND job_number LIKE ?", shopID, prefix+"%").
		Scan(&maxNumber).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, "JOB-"+yymm+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("JOB-%s-%04d", yymm, seq), nil
}

// Create 创建工单
func (r *JobCardRepository) Create(ctx context.Context, job *entity.JobCard) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID 查找门店下的工单
func (r *JobCardRepository) FindByID(ctx context.Context, shopID, id string) (*entity.JobCard, error) {
	var job entity.JobCard
	err := r.db.WithContext(ctx).
		Preload("Mechanic").
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&job).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &job, nil
}

// FindByIDWithDetails 查找工单及其配件/费用/历史
func (r *JobCardRepository) FindByIDWithDetails(ctx context.Context, shopID, id string) (*entity.JobCard, error) {
	var job entity.JobCard
	err := r.db.WithContext(ctx).
		Preload("Mechanic").
		Preload("Parts", func(db *gorm.DB) *gorm.DB {
			return db.Where("status <> ?", entity.PartStatusReturned).Order("created_at ASC")
		}).
		Preload("Costs").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&job).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &job, nil
}

// FindAll 门店工单列表，按状态筛选
func (r *JobCardRepository) FindAll(ctx context.Context, shopID, status string) ([]entity.JobCard, error) {
	query := r.db.WithContext(ctx).
		Preload("Mechanic").
		Where("shop_id = ?", shopID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var jobs []entity.JobCard
	err := query.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

// FindUnscheduled 未排班且未完工的工单
func (r *JobCardRepository) FindUnscheduled(ctx context.Context, shopID string) ([]entity.JobCard, error) {
	var jobs []entity.JobCard
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND scheduled_date IS NULL AND status <> ?", shopID, entity.JobStatusCompleted).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// FindScheduled 已排班工单，可按日期过滤
func (r *JobCardRepository) FindScheduled(ctx context.Context, shopID string, date *time.Time) ([]entity.JobCard, error) {
	query := r.db.WithContext(ctx).
		Preload("Mechanic").
		Where("shop_id = ? AND scheduled_date IS NOT NULL", shopID)
	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		query = query.Where("scheduled_date >= ? AND scheduled_date < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}
	var jobs []entity.JobCard
	err := query.Order("scheduled_time ASC").Find(&jobs).Error
	return jobs, err
}

// FindAssigned 某技师的未完工工单
func (r *JobCardRepository) FindAssigned(ctx context.Context, shopID, mechanicID string) ([]entity.JobCard, error) {
	var jobs []entity.JobCard
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND mechanic_id = ? AND status <> ?", shopID, mechanicID, entity.JobStatusCompleted).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&jobs).Error
	return jobs, err
}

// CountSlotConflicts 同技师同日期同时段的其他工单数（粗粒度时段检查）
func (r *JobCardRepository) CountSlotConflicts(ctx context.Context, shopID, mechanicID string, date time.Time, timeSlot, excludeJobID string) (int64, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.JobCard{}).
		Where("shop_id = ? AND mechanic_id = ? AND scheduled_date >= ? AND scheduled_date < ? AND scheduled_time = ?",
			shopID, mechanicID, dayStart, dayStart.AddDate(0, 0, 1), timeSlot).
		Where("id <> ?", excludeJobID).
		Count(&count).Error
	return count, err
}

// Update 更新工单
func (r *JobCardRepository) Update(ctx context.Context, job *entity.JobCard) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// Delete 删除工单
func (r *JobCardRepository) Delete(ctx context.Context, shopID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&entity.JobCard{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateStatusHistory 追加状态变更记录
func (r *JobCardRepository) CreateStatusHistory(ctx context.Context, h *entity.JobStatusHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// CreateNote 追加工单备注
func (r *JobCardRepository) CreateNote(ctx context.Context, note *entity.JobNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// FindPart 查找门店下某工单的配件
func (r *JobCardRepository) FindPart(ctx context.Context, shopID, jobCardID, partID string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ? AND job_card_id = ?", partID, shopID, jobCardID).
		First(&part).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &part, nil
}

// FindParts 工单配件列表，排除已退回
func (r *JobCardRepository) FindParts(ctx context.Context, shopID, jobCardID string) ([]entity.Part, error) {
	var parts []entity.Part
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND job_card_id = ? AND status <> ?", shopID, jobCardID, entity.PartStatusReturned).
		Order("created_at ASC").
		Find(&parts).Error
	return parts, err
}

// FindCost 查找工单费用行项
func (r *JobCardRepository) FindCost(ctx context.Context, jobCardID, costID string) (*entity.JobCost, error) {
	var cost entity.JobCost
	err := r.db.WithContext(ctx).
		Where("id = ? AND job_card_id = ?", costID, jobCardID).
		First(&cost).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &cost, nil
}
