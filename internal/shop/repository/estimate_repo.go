package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"gorm.io/gorm"
)

// EstimateRepository 报价单仓库
type EstimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

// GenerateEstimateNumber 生成报价单号 EST-YYMM-NNNN，按门店按月递增
func (r *EstimateRepository) GenerateEstimateNumber(ctx context.Context, shopID string) (string, error) {
	yymm := time.Now().Format("0601")
	prefix := fmt.Sprintf("EST-%s-", yymm)

	var maxNumber string
	err := r.db.WithContext(ctx).
		Model(&entity.Estimate{}).
		Select("COALESCE(MAX(estimate_number), '')").
		Where("shop_id = ? AND estimate_number LIKE ?", shopID, prefix+"%").
		Scan(&maxNumber).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, "EST-"+yymm+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("EST-%s-%04d", yymm, seq), nil
}

// FindByID 查找门店下的报价单
func (r *EstimateRepository) FindByID(ctx context.Context, shopID, id string) (*entity.Estimate, error) {
	var estimate entity.Estimate
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("JobCard").
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&estimate).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &estimate, nil
}

// FindByJobCard 某工单的报价单列表
func (r *EstimateRepository) FindByJobCard(ctx context.Context, shopID, jobCardID string) ([]entity.Estimate, error) {
	var estimates []entity.Estimate
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("JobCard").
		Where("shop_id = ? AND job_card_id = ?", shopID, jobCardID).
		Order("created_at DESC").
		Find(&estimates).Error
	return estimates, err
}

// Create 创建报价单及行项
func (r *EstimateRepository) Create(ctx context.Context, estimate *entity.Estimate) error {
	return r.db.WithContext(ctx).Create(estimate).Error
}

// Update 更新报价单
func (r *EstimateRepository) Update(ctx context.Context, estimate *entity.Estimate) error {
	return r.db.WithContext(ctx).Save(estimate).Error
}
