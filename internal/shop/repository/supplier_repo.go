package repository

import (
	"context"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"gorm.io/gorm"
)

// SupplierRepository 供应商仓库
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// FindAll 门店供应商列表
func (r *SupplierRepository) FindAll(ctx context.Context, shopID string) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&suppliers).Error
	return suppliers, err
}

// FindByID 查找门店下的供应商
func (r *SupplierRepository) FindByID(ctx context.Context, shopID, id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&supplier).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &supplier, nil
}

// Create 创建供应商
func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

// Update 更新供应商
func (r *SupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Delete 删除供应商
func (r *SupplierRepository) Delete(ctx context.Context, shopID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&entity.Supplier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
