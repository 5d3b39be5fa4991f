package service

import (
	"context"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/google/uuid"
)

// SupplierService 供应商服务
type SupplierService struct {
	repo          *repository.SupplierRepository
	inventoryRepo *repository.InventoryRepository
	orderRepo     *repository.PartOrderRepository
}

func NewSupplierService(repo *repository.SupplierRepository, inventoryRepo *repository.InventoryRepository, orderRepo *repository.PartOrderRepository) *SupplierService {
	return &SupplierService{repo: repo, inventoryRepo: inventoryRepo, orderRepo: orderRepo}
}

// SupplierRequest 供应商创建/更新请求
type SupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// List 供应商列表
func (s *SupplierService) List(ctx context.Context, shopID string) ([]entity.Supplier, error) {
	return s.repo.FindAll(ctx, shopID)
}

// Get 供应商详情
func (s *SupplierService) Get(ctx context.Context, shopID, id string) (*entity.Supplier, error) {
	return s.repo.FindByID(ctx, shopID, id)
}

// GetParts 某供应商提供的库存条目
func (s *SupplierService) GetParts(ctx context.Context, shopID, id string) ([]entity.Inventory, error) {
	if _, err := s.repo.FindByID(ctx, shopID, id); err != nil {
		return nil, err
	}
	return s.inventoryRepo.FindBySupplier(ctx, shopID, id)
}

// GetOrders 某供应商的采购订单
func (s *SupplierService) GetOrders(ctx context.Context, shopID, id string) ([]entity.PartOrder, error) {
	if _, err := s.repo.FindByID(ctx, shopID, id); err != nil {
		return nil, err
	}
	return s.orderRepo.FindBySupplier(ctx, shopID, id)
}

// Create 新增供应商
func (s *SupplierService) Create(ctx context.Context, shopID string, req *SupplierRequest) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		ShopID:      shopID,
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update 更新供应商
func (s *SupplierService) Update(ctx context.Context, shopID, id string, req *SupplierRequest) (*entity.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = req.Name
	supplier.ContactName = req.ContactName
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.Notes = req.Notes

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete 删除供应商
func (s *SupplierService) Delete(ctx context.Context, shopID, id string) error {
	return s.repo.Delete(ctx, shopID, id)
}
