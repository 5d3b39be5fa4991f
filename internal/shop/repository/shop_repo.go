package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"gorm.io/gorm"
)

// ShopRepository 门店仓库
type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// FindByUserID 根据外部用户ID查找门店
func (r *ShopRepository) FindByUserID(ctx context.Context, userID string) (*entity.Shop, error) {
	var shop entity.Shop
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&shop).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &shop, nil
}

// ExistsByUserID 该用户是否已注册门店
func (r *ShopRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	_, err := r.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create 创建门店
func (r *ShopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

// Update 更新门店
func (r *ShopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}
