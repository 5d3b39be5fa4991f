package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartService 工单配件与费用服务。
// 配件的领用/安装/退回/删除必须保持库存数量、StockAdjustment审计、
// 配件状态与工单汇总四者一致，全部子写入在单个事务内完成。
type PartService struct {
	jobRepo *repository.JobCardRepository
	invRepo *repository.InventoryRepository
	db      *gorm.DB
}

func NewPartService(jobRepo *repository.JobCardRepository, invRepo *repository.InventoryRepository, db *gorm.DB) *PartService {
	return &PartService{jobRepo: jobRepo, invRepo: invRepo, db: db}
}

// ListParts 工单配件列表，排除已退回
func (s *PartService) ListParts(ctx context.Context, shopID, jobCardID string) ([]entity.Part, error) {
	if _, err := s.jobRepo.FindByID(ctx, shopID, jobCardID); err != nil {
		return nil, err
	}
	return s.jobRepo.FindParts(ctx, shopID, jobCardID)
}

// AttachPartRequest 添加配件请求。InventoryID非空表示从库存领用。
type AttachPartRequest struct {
	InventoryID  *string `json:"inventory_id"`
	Name         string  `json:"name"`
	PartNumber   string  `json:"part_number"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	Supplier     string  `json:"supplier"`
}

// AttachPart 为工单添加配件。
// 从库存领用时：条件扣减（不足即失败，无任何写入）→ 记OUT调整 →
// 以库存行当前名称/价格快照建Part（后续库存改价不回溯）→ 重算汇总。
// 无库存关联的配件只建行并重算，无库存副作用。
func (s *PartService) AttachPart(ctx context.Context, shopID, userID, jobCardID string, req *AttachPartRequest) (*entity.Part, error) {
	if _, err := s.jobRepo.FindByID(ctx, shopID, jobCardID); err != nil {
		return nil, err
	}

	part := &entity.Part{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		JobCardID: jobCardID,
		Quantity:  req.Quantity,
		Status:    entity.PartStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.InventoryID != nil && *req.InventoryID != "" {
			var inv entity.Inventory
			if err := tx.Where("id = ? AND shop_id = ?", *req.InventoryID, shopID).First(&inv).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			ok, err := repository.DecrementStock(tx, shopID, inv.ID, req.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: item %s has %d, requested %d", ErrInsufficientStock, inv.PartNumber, inv.Quantity, req.Quantity)
			}

			if err := tx.Create(&entity.StockAdjustment{
				ID:          uuid.New().String(),
				ShopID:      shopID,
				InventoryID: inv.ID,
				Type:        entity.AdjustmentTypeOut,
				Quantity:    req.Quantity,
				Reason:      entity.AdjustReasonJobPart,
				Reference:   jobCardID,
				CreatedBy:   userID,
			}).Error; err != nil {
				return err
			}

			// 价格快照
			part.InventoryID = &inv.ID
			part.Name = inv.Name
			part.PartNumber = inv.PartNumber
			part.CostPrice = inv.CostPrice
			part.SellingPrice = inv.SellingPrice
		} else {
			if req.Name == "" {
				return fmt.Errorf("%w: part name is required", ErrValidation)
			}
			part.Name = req.Name
			part.PartNumber = req.PartNumber
			part.CostPrice = req.CostPrice
			part.SellingPrice = req.SellingPrice
			part.Supplier = req.Supplier
		}

		if err := tx.Create(part).Error; err != nil {
			return err
		}

		return recomputeJobTotals(tx, jobCardID)
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

// InstallPart 安装配件。仅允许PENDING→INSTALLED，无库存副作用
// （库存已在领用时扣减）。
func (s *PartService) InstallPart(ctx context.Context, shopID, userID, jobCardID, partID string) (*entity.Part, error) {
	var part *entity.Part
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		part, err = findPartForUpdate(tx, shopID, jobCardID, partID)
		if err != nil {
			return err
		}
		if part.Status != entity.PartStatusPending {
			return fmt.Errorf("%w: cannot install part in status %s", ErrInvalidPartState, part.Status)
		}

		now := time.Now()
		part.Status = entity.PartStatusInstalled
		part.InstalledAt = &now
		part.InstalledBy = userID
		if err := tx.Save(part).Error; err != nil {
			return err
		}

		return recomputeJobTotals(tx, jobCardID)
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

// ReturnPart 退回配件。PENDING或INSTALLED可退，RETURNED为终态。
// 有库存关联时回增库存并记IN调整；退回后的配件保留行做审计，
// 但不再计入工单汇总。
func (s *PartService) ReturnPart(ctx context.Context, shopID, userID, jobCardID, partID, reason string) (*entity.Part, error) {
	var part *entity.Part
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		part, err = findPartForUpdate(tx, shopID, jobCardID, partID)
		if err != nil {
			return err
		}
		if part.Status != entity.PartStatusPending && part.Status != entity.PartStatusInstalled {
			return fmt.Errorf("%w: cannot return part in status %s", ErrInvalidPartState, part.Status)
		}

		now := time.Now()
		part.Status = entity.PartStatusReturned
		part.ReturnedAt = &now
		part.ReturnReason = reason
		if err := tx.Save(part).Error; err != nil {
			return err
		}

		if part.InventoryID != nil {
			if err := repository.IncrementStock(tx, shopID, *part.InventoryID, part.Quantity); err != nil {
				return err
			}
			if err := tx.Create(&entity.StockAdjustment{
				ID:          uuid.New().String(),
				ShopID:      shopID,
				InventoryID: *part.InventoryID,
				Type:        entity.AdjustmentTypeIn,
				Quantity:    part.Quantity,
				Reason:      entity.AdjustReasonReturn,
				Notes:       reason,
				Reference:   jobCardID,
				CreatedBy:   userID,
			}).Error; err != nil {
				return err
			}
		}

		return recomputeJobTotals(tx, jobCardID)
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

// RemovePart 硬删除配件。仅当配件有库存关联且仍为PENDING时回库并记
// IN调整；已安装的配件视为已消耗，删除不回库。
func (s *PartService) RemovePart(ctx context.Context, shopID, userID, jobCardID, partID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		part, err := findPartForUpdate(tx, shopID, jobCardID, partID)
		if err != nil {
			return err
		}

		if part.InventoryID != nil && part.Status == entity.PartStatusPending {
			if err := repository.IncrementStock(tx, shopID, *part.InventoryID, part.Quantity); err != nil {
				return err
			}
			if err := tx.Create(&entity.StockAdjustment{
				ID:          uuid.New().String(),
				ShopID:      shopID,
				InventoryID: *part.InventoryID,
				Type:        entity.AdjustmentTypeIn,
				Quantity:    part.Quantity,
				Reason:      entity.AdjustReasonRemoval,
				Reference:   jobCardID,
				CreatedBy:   userID,
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&entity.Part{}, "id = ?", part.ID).Error; err != nil {
			return err
		}

		return recomputeJobTotals(tx, jobCardID)
	})
}

// UpdatePartRequest 更新配件请求，逐字段选更
type UpdatePartRequest struct {
	Name         *string  `json:"name"`
	PartNumber   *string  `json:"part_number"`
	Quantity     *int     `json:"quantity"`
	CostPrice    *float64 `json:"cost_price"`
	SellingPrice *float64 `json:"selling_price"`
	Supplier     *string  `json:"supplier"`
}

// UpdatePart 更新配件描述字段。有库存关联的配件数量已对库存扣账，
// 不允许在这里改数量（应退回后重新领用）。
func (s *PartService) UpdatePart(ctx context.Context, shopID, jobCardID, partID string, req *UpdatePartRequest) (*entity.Part, error) {
	var part *entity.Part
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		part, err = findPartForUpdate(tx, shopID, jobCardID, partID)
		if err != nil {
			return err
		}

		if req.Quantity != nil {
			if part.InventoryID != nil {
				return fmt.Errorf("%w: quantity of a stock-linked part cannot be edited", ErrValidation)
			}
			if *req.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be positive", ErrValidation)
			}
			part.Quantity = *req.Quantity
		}
		if req.Name != nil {
			part.Name = *req.Name
		}
		if req.PartNumber != nil {
			part.PartNumber = *req.PartNumber
		}
		if req.CostPrice != nil {
			part.CostPrice = *req.CostPrice
		}
		if req.SellingPrice != nil {
			part.SellingPrice = *req.SellingPrice
		}
		if req.Supplier != nil {
			part.Supplier = *req.Supplier
		}

		if err := tx.Save(part).Error; err != nil {
			return err
		}

		return recomputeJobTotals(tx, jobCardID)
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

func findPartForUpdate(tx *gorm.DB, shopID, jobCardID, partID string) (*entity.Part, error) {
	var part entity.Part
	err := tx.Where("id = ? AND shop_id = ? AND job_card_id = ?", partID, shopID, jobCardID).
		First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

// === 工单费用 ===

// JobCostRequest 费用行项请求
type JobCostRequest struct {
	Type        string   `json:"type" binding:"required,oneof=LABOR OTHER"`
	Description string   `json:"description"`
	Hours       *float64 `json:"hours"`
	Rate        *float64 `json:"rate"`
	Amount      float64  `json:"amount" binding:"required,gt=0"`
}

// AddCost 添加费用行项并重算汇总
func (s *PartService) AddCost(ctx context.Context, shopID, jobCardID string, req *JobCostRequest) (*entity.JobCost, error) {
	if _, err := s.jobRepo.FindByID(ctx, shopID, jobCardID); err != nil {
		return nil, err
	}

	cost := &entity.JobCost{
		ID:          uuid.New().String(),
		JobCardID:   jobCardID,
		Type:        req.Type,
		Description: req.Description,
		Hours:       req.Hours,
		Rate:        req.Rate,
		Amount:      req.Amount,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cost).Error; err != nil {
			return err
		}
		return recomputeJobTotals(tx, jobCardID)
	})
	if err != nil {
		return nil, err
	}
	return cost, nil
}

// UpdateCost 更新费用行项并重算汇总
func (s *PartService) UpdateCost(ctx context.Context, shopID, jobCardID, costID string, req *JobCostRequest) (*entity.JobCost, error) {
	if _, err := s.jobRepo.FindByID(ctx, shopID, jobCardID); err != nil {
		return nil, err
	}

	cost, err := s.jobRepo.FindCost(ctx, jobCardID, costID)
	if err != nil {
		return nil, err
	}

	cost.Type = req.Type
	cost.Description = req.Description
	cost.Hours = req.Hours
	cost.Rate = req.Rate
	cost.Amount = req.Amount

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(cost).Error; err != nil {
			return err
		}
		return recomputeJobTotals(tx, jobCardID)
	})
	if err != nil {
		return nil, err
	}
	return cost, nil
}

// DeleteCost 删除费用行项并重算汇总
func (s *PartService) DeleteCost(ctx context.Context, shopID, jobCardID, costID string) error {
	if _, err := s.jobRepo.FindByID(ctx, shopID, jobCardID); err != nil {
		return err
	}
	if _, err := s.jobRepo.FindCost(ctx, jobCardID, costID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.JobCost{}, "id = ? AND job_card_id = ?", costID, jobCardID).Error; err != nil {
			return err
		}
		return recomputeJobTotals(tx, jobCardID)
	})
}
