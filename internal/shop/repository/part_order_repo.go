package repository

import (
	"context"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"gorm.io/gorm"
)

// PartOrderRepository 采购订单仓库
type PartOrderRepository struct {
	db *gorm.DB
}

func NewPartOrderRepository(db *gorm.DB) *PartOrderRepository {
	return &PartOrderRepository{db: db}
}

// FindAll 门店采购订单列表，按状态筛选
func (r *PartOrderRepository) FindAll(ctx context.Context, shopID, status string) ([]entity.PartOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		Where("shop_id = ?", shopID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []entity.PartOrder
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// FindByID 查找门店下的采购订单
func (r *PartOrderRepository) FindByID(ctx context.Context, shopID, id string) (*entity.PartOrder, error) {
	var order entity.PartOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&order).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &order, nil
}

// FindBySupplier 某供应商的采购订单
func (r *PartOrderRepository) FindBySupplier(ctx context.Context, shopID, supplierID string) ([]entity.PartOrder, error) {
	var orders []entity.PartOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("shop_id = ? AND supplier_id = ?", shopID, supplierID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Create 创建采购订单及行项
func (r *PartOrderRepository) Create(ctx context.Context, order *entity.PartOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// DB 返回底层db用于事务
func (r *PartOrderRepository) DB() *gorm.DB {
	return r.db
}
