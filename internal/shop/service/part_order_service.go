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

// 采购完成入库时新建库存条目的默认参数
const (
	defaultMinQuantity   = 5
	defaultSellingMarkup = 1.3
)

// PartOrderService 配件采购服务
type PartOrderService struct {
	repo         *repository.PartOrderRepository
	supplierRepo *repository.SupplierRepository
	db           *gorm.DB
}

func NewPartOrderService(repo *repository.PartOrderRepository, supplierRepo *repository.SupplierRepository, db *gorm.DB) *PartOrderService {
	return &PartOrderService{repo: repo, supplierRepo: supplierRepo, db: db}
}

// List 采购订单列表
func (s *PartOrderService) List(ctx context.Context, shopID, status string) ([]entity.PartOrder, error) {
	return s.repo.FindAll(ctx, shopID, status)
}

// Get 采购订单详情
func (s *PartOrderService) Get(ctx context.Context, shopID, id string) (*entity.PartOrder, error) {
	return s.repo.FindByID(ctx, shopID, id)
}

// PartOrderItemRequest 采购行项
type PartOrderItemRequest struct {
	PartNumber string  `json:"part_number" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	CostPrice  float64 `json:"cost_price" binding:"gte=0"`
}

// CreatePartOrderRequest 创建采购订单请求
type CreatePartOrderRequest struct {
	SupplierID string                 `json:"supplier_id" binding:"required"`
	Notes      string                 `json:"notes"`
	Items      []PartOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// Create 创建采购订单，行项小计与订单总额由服务端计算
func (s *PartOrderService) Create(ctx context.Context, shopID string, req *CreatePartOrderRequest) (*entity.PartOrder, error) {
	if _, err := s.supplierRepo.FindByID(ctx, shopID, req.SupplierID); err != nil {
		return nil, err
	}

	order := &entity.PartOrder{
		ID:         uuid.New().String(),
		ShopID:     shopID,
		SupplierID: req.SupplierID,
		Status:     entity.PartOrderStatusPending,
		Notes:      req.Notes,
	}
	for _, item := range req.Items {
		lineTotal := float64(item.Quantity) * item.CostPrice
		order.Items = append(order.Items, entity.PartOrderItem{
			ID:          uuid.New().String(),
			PartOrderID: order.ID,
			PartNumber:  item.PartNumber,
			Name:        item.Name,
			Quantity:    item.Quantity,
			CostPrice:   item.CostPrice,
			Total:       lineTotal,
			Status:      entity.PartOrderStatusPending,
		})
		order.Total += lineTotal
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

var partOrderTransitions = map[string][]string{
	entity.PartOrderStatusPending: {entity.PartOrderStatusOrdered, entity.PartOrderStatusCancelled},
	entity.PartOrderStatusOrdered: {entity.PartOrderStatusComplete, entity.PartOrderStatusCancelled},
}

func partOrderTransitionAllowed(from, to string) bool {
	for _, next := range partOrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus 采购订单状态流转。流转到COMPLETE时按行项入库：
// (shop_id, part_number)已存在则回增数量并刷新成本价，否则新建条目
// （min_quantity取默认值，售价按成本加成），每行记一条IN/PURCHASE调整。
// 全部入库与状态更新同一事务。
func (s *PartOrderService) UpdateStatus(ctx context.Context, shopID, userID, id, status string) (*entity.PartOrder, error) {
	order, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if !partOrderTransitionAllowed(order.Status, status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrValidation, order.Status, status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if status == entity.PartOrderStatusComplete {
			for _, item := range order.Items {
				if err := receiveOrderItem(tx, shopID, userID, order.ID, &item); err != nil {
					return err
				}
			}
			if err := tx.Model(&entity.PartOrderItem{}).
				Where("part_order_id = ?", order.ID).
				Update("status", entity.PartOrderStatusComplete).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entity.PartOrder{}).
			Where("id = ?", order.ID).
			Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, shopID, id)
}

// receiveOrderItem 单个采购行项入库
func receiveOrderItem(tx *gorm.DB, shopID, userID, orderID string, item *entity.PartOrderItem) error {
	var inv entity.Inventory
	err := tx.Where("shop_id = ? AND part_number = ?", shopID, item.PartNumber).First(&inv).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", item.Quantity),
			"cost_price": item.CostPrice,
		}
		if err := tx.Model(&entity.Inventory{}).Where("id = ?", inv.ID).Updates(updates).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		inv = entity.Inventory{
			ID:           uuid.New().String(),
			ShopID:       shopID,
			PartNumber:   item.PartNumber,
			Name:         item.Name,
			Quantity:     item.Quantity,
			MinQuantity:  defaultMinQuantity,
			CostPrice:    item.CostPrice,
			SellingPrice: item.CostPrice * defaultSellingMarkup,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
	default:
		return err
	}

	return tx.Create(&entity.StockAdjustment{
		ID:          uuid.New().String(),
		ShopID:      shopID,
		InventoryID: inv.ID,
		Type:        entity.AdjustmentTypeIn,
		Quantity:    item.Quantity,
		Reason:      entity.AdjustReasonPurchase,
		Reference:   orderID,
		CreatedBy:   userID,
	}).Error
}
