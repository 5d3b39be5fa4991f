package repository

import (
	"context"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"gorm.io/gorm"
)

// MechanicRepository 技师仓库
type MechanicRepository struct {
	db *gorm.DB
}

func NewMechanicRepository(db *gorm.DB) *MechanicRepository {
	return &MechanicRepository{db: db}
}

// activeJobs 限定为已排班且进行中/待处理的工单
func activeJobs(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ? AND scheduled_date IS NOT NULL",
		[]string{entity.JobStatusPending, entity.JobStatusInProgress}).
		Order("scheduled_date ASC")
}

// FindAll 门店技师列表，附带活跃工单
func (r *MechanicRepository) FindAll(ctx context.Context, shopID string) ([]entity.Mechanic, error) {
	var mechanics []entity.Mechanic
	err := r.db.WithContext(ctx).
		Preload("Jobs", activeJobs).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&mechanics).Error
	return mechanics, err
}

// FindByID 查找门店下的技师，附带活跃工单
func (r *MechanicRepository) FindByID(ctx context.Context, shopID, id string) (*entity.Mechanic, error) {
	var mechanic entity.Mechanic
	err := r.db.WithContext(ctx).
		Preload("Jobs", activeJobs).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&mechanic).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &mechanic, nil
}

// Create 创建技师
func (r *MechanicRepository) Create(ctx context.Context, mechanic *entity.Mechanic) error {
	return r.db.WithContext(ctx).Create(mechanic).Error
}

// Update 更新技师
func (r *MechanicRepository) Update(ctx context.Context, mechanic *entity.Mechanic) error {
	return r.db.WithContext(ctx).Save(mechanic).Error
}

// Delete 删除技师，先解除工单上的分派
func (r *MechanicRepository) Delete(ctx context.Context, shopID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.JobCard{}).
			Where("shop_id = ? AND mechanic_id = ?", shopID, id).
			Update("mechanic_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND shop_id = ?", id, shopID).
			Delete(&entity.Mechanic{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
