package repository

import (
	"context"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"gorm.io/gorm"
)

// InventoryRepository 库存仓库
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// FindByID 查找门店下的库存条目
func (r *InventoryRepository) FindByID(ctx context.Context, shopID, id string) (*entity.Inventory, error) {
	var item entity.Inventory
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&item).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

// FindAll 门店库存列表，支持名称/件号模糊搜索与类目过滤
func (r *InventoryRepository) FindAll(ctx context.Context, shopID, search, category string) ([]entity.Inventory, error) {
	query := r.db.WithContext(ctx).Where("shop_id = ?", shopID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR part_number ILIKE ?", pattern, pattern)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var items []entity.Inventory
	err := query.Order("part_number ASC").Find(&items).Error
	return items, err
}

// FindLowStock 低库存条目（quantity <= min_quantity）
func (r *InventoryRepository) FindLowStock(ctx context.Context, shopID string) ([]entity.Inventory, error) {
	var items []entity.Inventory
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND quantity <= min_quantity", shopID).
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

// FindBySupplier 某供应商提供的库存条目
func (r *InventoryRepository) FindBySupplier(ctx context.Context, shopID, supplierID string) ([]entity.Inventory, error) {
	var items []entity.Inventory
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND supplier_id = ?", shopID, supplierID).
		Order("part_number ASC").
		Find(&items).Error
	return items, err
}

// Create 创建库存条目
func (r *InventoryRepository) Create(ctx context.Context, item *entity.Inventory) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update 更新库存条目
func (r *InventoryRepository) Update(ctx context.Context, item *entity.Inventory) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete 删除库存条目
func (r *InventoryRepository) Delete(ctx context.Context, shopID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&entity.Inventory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock 条件扣减库存。数量不足或条目不存在时不产生任何写入，
// 返回扣减是否生效。并发扣减由该条件更新在存储层串行化。
func DecrementStock(tx *gorm.DB, shopID, inventoryID string, quantity int) (bool, error) {
	result := tx.Model(&entity.Inventory{}).
		Where("id = ? AND shop_id = ? AND quantity >= ?", inventoryID, shopID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementStock 回增库存
func IncrementStock(tx *gorm.DB, shopID, inventoryID string, quantity int) error {
	result := tx.Model(&entity.Inventory{}).
		Where("id = ? AND shop_id = ?", inventoryID, shopID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustmentListParams 库存调整记录过滤条件
type AdjustmentListParams struct {
	InventoryID string
	StartDate   *time.Time
	EndDate     *time.Time
}

// FindAdjustments 库存调整记录列表
func (r *InventoryRepository) FindAdjustments(ctx context.Context, shopID string, params AdjustmentListParams) ([]entity.StockAdjustment, error) {
	query := r.db.WithContext(ctx).
		Preload("Inventory").
		Where("shop_id = ?", shopID)
	if params.InventoryID != "" {
		query = query.Where("inventory_id = ?", params.InventoryID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", params.EndDate)
	}
	var adjustments []entity.StockAdjustment
	err := query.Order("created_at DESC").Find(&adjustments).Error
	return adjustments, err
}

// FindAdjustmentsSince 某时点之后的调整记录（报表用）
func (r *InventoryRepository) FindAdjustmentsSince(ctx context.Context, shopID string, since time.Time) ([]entity.StockAdjustment, error) {
	var adjustments []entity.StockAdjustment
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Where("shop_id = ? AND created_at >= ?", shopID, since).
		Order("created_at DESC").
		Find(&adjustments).Error
	return adjustments, err
}

// FindAllWithMovements 库存及时段内的调整记录（导出用）
func (r *InventoryRepository) FindAllWithMovements(ctx context.Context, shopID string, since time.Time) ([]entity.Inventory, error) {
	var items []entity.Inventory
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Adjustments", func(db *gorm.DB) *gorm.DB {
			return db.Where("created_at >= ?", since)
		}).
		Where("shop_id = ?", shopID).
		Order("part_number ASC").
		Find(&items).Error
	return items, err
}

// GetSettings 门店库存参数
func (r *InventoryRepository) GetSettings(ctx context.Context, shopID string) (*entity.InventorySettings, error) {
	var settings entity.InventorySettings
	err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).First(&settings).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &settings, nil
}

// CreateSettings 创建库存参数
func (r *InventoryRepository) CreateSettings(ctx context.Context, settings *entity.InventorySettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// UpdateSettings 更新库存参数
func (r *InventoryRepository) UpdateSettings(ctx context.Context, settings *entity.InventorySettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
