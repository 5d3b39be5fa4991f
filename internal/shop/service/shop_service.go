package service

import (
	"context"
	"errors"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const shopCacheTTL = 10 * time.Minute

// ShopService 门店服务，同时实现middleware.ShopResolver。
// 每个请求都要做一次用户→门店解析，redis缓存该映射；
// redis不可用时直接降级到数据库。
type ShopService struct {
	repo  *repository.ShopRepository
	redis *redis.Client
}

func NewShopService(repo *repository.ShopRepository, redisClient *redis.Client) *ShopService {
	return &ShopService{repo: repo, redis: redisClient}
}

func shopCacheKey(userID string) string {
	return "gearbox:shop:uid:" + userID
}

// ResolveShopID 根据外部用户ID解析门店ID。无门店时返回空串且无错误。
func (s *ShopService) ResolveShopID(ctx context.Context, userID string) (string, error) {
	if s.redis != nil {
		if id, err := s.redis.Get(ctx, shopCacheKey(userID)).Result(); err == nil && id != "" {
			return id, nil
		}
	}

	shop, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	if s.redis != nil {
		s.redis.Set(ctx, shopCacheKey(userID), shop.ID, shopCacheTTL)
	}
	return shop.ID, nil
}

// CreateShopRequest 创建门店请求
type CreateShopRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Create 创建门店。一个外部身份只能注册一个门店。
func (s *ShopService) Create(ctx context.Context, userID string, req *CreateShopRequest) (*entity.Shop, error) {
	exists, err := s.repo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrShopExists
	}

	shop := &entity.Shop{
		ID:      uuid.New().String(),
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}

	if s.redis != nil {
		s.redis.Set(ctx, shopCacheKey(userID), shop.ID, shopCacheTTL)
	}
	return shop, nil
}

// Get 当前用户的门店
func (s *ShopService) Get(ctx context.Context, userID string) (*entity.Shop, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// UpdateShopRequest 更新门店请求
type UpdateShopRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Update 更新门店资料
func (s *ShopService) Update(ctx context.Context, userID string, req *UpdateShopRequest) (*entity.Shop, error) {
	shop, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	shop.Name = req.Name
	shop.Email = req.Email
	shop.Phone = req.Phone
	shop.Address = req.Address
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}
