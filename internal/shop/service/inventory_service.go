package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService 库存服务
type InventoryService struct {
	repo *repository.InventoryRepository
	db   *gorm.DB
}

func NewInventoryService(repo *repository.InventoryRepository, db *gorm.DB) *InventoryService {
	return &InventoryService{repo: repo, db: db}
}

// InventoryListParams 库存列表筛选
type InventoryListParams struct {
	Category string
	LowStock bool
	Search   string
}

// List 库存列表
func (s *InventoryService) List(ctx context.Context, shopID string, params *InventoryListParams) ([]entity.Inventory, error) {
	if params != nil && params.LowStock {
		return s.repo.FindLowStock(ctx, shopID)
	}
	search, category := "", ""
	if params != nil {
		search, category = params.Search, params.Category
	}
	return s.repo.FindAll(ctx, shopID, search, category)
}

// Get 库存条目详情
func (s *InventoryService) Get(ctx context.Context, shopID, id string) (*entity.Inventory, error) {
	return s.repo.FindByID(ctx, shopID, id)
}

// CreateInventoryRequest 新建库存条目请求
type CreateInventoryRequest struct {
	PartNumber   string  `json:"part_number" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	MinQuantity  int     `json:"min_quantity" binding:"gte=0"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	Location     string  `json:"location"`
	Category     string  `json:"category"`
	SupplierID   *string `json:"supplier_id"`
}

// Create 新建库存条目。初始数量非零时同时记一条IN/MANUAL调整，
// 保证任何数量变动都有审计。
func (s *InventoryService) Create(ctx context.Context, shopID, userID string, req *CreateInventoryRequest) (*entity.Inventory, error) {
	inv := &entity.Inventory{
		ID:           uuid.New().String(),
		ShopID:       shopID,
		PartNumber:   req.PartNumber,
		Name:         req.Name,
		Description:  req.Description,
		Quantity:     req.Quantity,
		MinQuantity:  req.MinQuantity,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Location:     req.Location,
		Category:     req.Category,
		SupplierID:   req.SupplierID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		if inv.Quantity > 0 {
			return tx.Create(&entity.StockAdjustment{
				ID:          uuid.New().String(),
				ShopID:      shopID,
				InventoryID: inv.ID,
				Type:        entity.AdjustmentTypeIn,
				Quantity:    inv.Quantity,
				Reason:      entity.AdjustReasonManual,
				Notes:       "Initial stock",
				CreatedBy:   userID,
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateInventoryRequest 更新库存条目请求。数量不在这里改，
// 走CreateAdjustment。
type UpdateInventoryRequest struct {
	PartNumber   *string  `json:"part_number"`
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	MinQuantity  *int     `json:"min_quantity"`
	CostPrice    *float64 `json:"cost_price"`
	SellingPrice *float64 `json:"selling_price"`
	Location     *string  `json:"location"`
	Category     *string  `json:"category"`
	SupplierID   *string  `json:"supplier_id"`
}

// Update 更新库存条目描述字段
func (s *InventoryService) Update(ctx context.Context, shopID, id string, req *UpdateInventoryRequest) (*entity.Inventory, error) {
	inv, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}

	if req.PartNumber != nil {
		inv.PartNumber = *req.PartNumber
	}
	if req.Name != nil {
		inv.Name = *req.Name
	}
	if req.Description != nil {
		inv.Description = *req.Description
	}
	if req.MinQuantity != nil {
		if *req.MinQuantity < 0 {
			return nil, fmt.Errorf("%w: min_quantity cannot be negative", ErrValidation)
		}
		inv.MinQuantity = *req.MinQuantity
	}
	if req.CostPrice != nil {
		inv.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		inv.SellingPrice = *req.SellingPrice
	}
	if req.Location != nil {
		inv.Location = *req.Location
	}
	if req.Category != nil {
		inv.Category = *req.Category
	}
	if req.SupplierID != nil {
		inv.SupplierID = req.SupplierID
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete 删除库存条目
func (s *InventoryService) Delete(ctx context.Context, shopID, id string) error {
	return s.repo.Delete(ctx, shopID, id)
}

// AdjustmentRequest 人工库存调整请求
type AdjustmentRequest struct {
	InventoryID string `json:"inventory_id" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=IN OUT"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Notes       string `json:"notes"`
}

// CreateAdjustment 人工调整库存。OUT方向条件扣减，不足即失败，
// 数量变更与审计记录同一事务。
func (s *InventoryService) CreateAdjustment(ctx context.Context, shopID, userID string, req *AdjustmentRequest) (*entity.StockAdjustment, error) {
	adj := &entity.StockAdjustment{
		ID:          uuid.New().String(),
		ShopID:      shopID,
		InventoryID: req.InventoryID,
		Type:        req.Type,
		Quantity:    req.Quantity,
		Reason:      entity.AdjustReasonManual,
		Notes:       req.Notes,
		CreatedBy:   userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv entity.Inventory
		if err := tx.Where("id = ? AND shop_id = ?", req.InventoryID, shopID).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.Type == entity.AdjustmentTypeOut {
			ok, err := repository.DecrementStock(tx, shopID, inv.ID, req.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: item %s has %d, requested %d", ErrInsufficientStock, inv.PartNumber, inv.Quantity, req.Quantity)
			}
		} else {
			if err := repository.IncrementStock(tx, shopID, inv.ID, req.Quantity); err != nil {
				return err
			}
		}

		return tx.Create(adj).Error
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// ListAdjustments 调整历史
func (s *InventoryService) ListAdjustments(ctx context.Context, shopID string, params repository.AdjustmentListParams) ([]entity.StockAdjustment, error) {
	return s.repo.FindAdjustments(ctx, shopID, params)
}

// GetSettings 取店铺库存参数，不存在则落一条默认值
func (s *InventoryService) GetSettings(ctx context.Context, shopID string) (*entity.InventorySettings, error) {
	settings, err := s.repo.GetSettings(ctx, shopID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	settings = &entity.InventorySettings{
		ID:                    uuid.New().String(),
		ShopID:                shopID,
		OrderingCost:          500,
		HoldingCostPercentage: 20,
		SafetyStockPercentage: 20,
		DefaultLeadTime:       7,
	}
	if err := s.repo.CreateSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SettingsRequest 库存参数更新请求
type SettingsRequest struct {
	OrderingCost          *float64 `json:"ordering_cost"`
	HoldingCostPercentage *float64 `json:"holding_cost_percentage"`
	SafetyStockPercentage *float64 `json:"safety_stock_percentage"`
	DefaultLeadTime       *int     `json:"default_lead_time"`
}

// UpdateSettings 更新库存参数
func (s *InventoryService) UpdateSettings(ctx context.Context, shopID string, req *SettingsRequest) (*entity.InventorySettings, error) {
	settings, err := s.GetSettings(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if req.OrderingCost != nil {
		if *req.OrderingCost < 0 {
			return nil, fmt.Errorf("%w: ordering_cost cannot be negative", ErrValidation)
		}
		settings.OrderingCost = *req.OrderingCost
	}
	if req.HoldingCostPercentage != nil {
		settings.HoldingCostPercentage = *req.HoldingCostPercentage
	}
	if req.SafetyStockPercentage != nil {
		settings.SafetyStockPercentage = *req.SafetyStockPercentage
	}
	if req.DefaultLeadTime != nil {
		if *req.DefaultLeadTime < 0 {
			return nil, fmt.Errorf("%w: default_lead_time cannot be negative", ErrValidation)
		}
		settings.DefaultLeadTime = *req.DefaultLeadTime
	}

	if err := s.repo.UpdateSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
