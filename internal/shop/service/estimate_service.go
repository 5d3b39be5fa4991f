package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/google/uuid"
)

// EstimateService 报价单服务
type EstimateService struct {
	repo    *repository.EstimateRepository
	jobRepo *repository.JobCardRepository
}

func NewEstimateService(repo *repository.EstimateRepository, jobRepo *repository.JobCardRepository) *EstimateService {
	return &EstimateService{repo: repo, jobRepo: jobRepo}
}

// EstimateItemRequest 报价行项
type EstimateItemRequest struct {
	Type        string  `json:"type" binding:"required,oneof=PARTS LABOR OTHER"`
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
	Notes       string  `json:"notes"`
}

// CreateEstimateRequest 创建报价单请求
type CreateEstimateRequest struct {
	Subtotal           float64               `json:"subtotal" binding:"required,gte=0"`
	TaxAmount          float64               `json:"tax_amount" binding:"gte=0"`
	DiscountRate       float64               `json:"discount_rate" binding:"gte=0,lte=100"`
	TermsAndConditions string                `json:"terms_and_conditions"`
	ValidUntil         *time.Time            `json:"valid_until"`
	Notes              string                `json:"notes"`
	Items              []EstimateItemRequest `json:"items" binding:"required,min=1,dive"`
}

// Create 创建报价单。subtotal必须与行项金额之和一致（容差0.01），
// 折扣与总额由服务端计算，单号按门店按月生成。
func (s *EstimateService) Create(ctx context.Context, shopID, jobCardID string, req *CreateEstimateRequest) (*entity.Estimate, error) {
	if _, err := s.jobRepo.FindByID(ctx, shopID, jobCardID); err != nil {
		return nil, err
	}

	var itemsTotal float64
	for _, item := range req.Items {
		itemsTotal += item.Quantity * item.UnitPrice
	}
	if math.Abs(itemsTotal-req.Subtotal) > 0.01 {
		return nil, fmt.Errorf("%w: subtotal %.2f does not match items total %.2f", ErrValidation, req.Subtotal, itemsTotal)
	}

	number, err := s.repo.GenerateEstimateNumber(ctx, shopID)
	if err != nil {
		return nil, err
	}

	discountAmount := req.Subtotal * req.DiscountRate / 100
	estimate := &entity.Estimate{
		ID:                 uuid.New().String(),
		ShopID:             shopID,
		JobCardID:          jobCardID,
		EstimateNumber:     number,
		Status:             entity.EstimateStatusDraft,
		Subtotal:           req.Subtotal,
		TaxAmount:          req.TaxAmount,
		DiscountRate:       req.DiscountRate,
		DiscountAmount:     discountAmount,
		Total:              req.Subtotal + req.TaxAmount - discountAmount,
		TermsAndConditions: req.TermsAndConditions,
		ValidUntil:         req.ValidUntil,
		Notes:              req.Notes,
	}
	for _, item := range req.Items {
		estimate.Items = append(estimate.Items, entity.EstimateItem{
			ID:          uuid.New().String(),
			EstimateID:  estimate.ID,
			Type:        item.Type,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Quantity * item.UnitPrice,
			Notes:       item.Notes,
		})
	}

	if err := s.repo.Create(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

// Get 报价单详情
func (s *EstimateService) Get(ctx context.Context, shopID, id string) (*entity.Estimate, error) {
	return s.repo.FindByID(ctx, shopID, id)
}

// ListByJobCard 某工单的报价单列表
func (s *EstimateService) ListByJobCard(ctx context.Context, shopID, jobCardID string) ([]entity.Estimate, error) {
	if _, err := s.jobRepo.FindByID(ctx, shopID, jobCardID); err != nil {
		return nil, err
	}
	return s.repo.FindByJobCard(ctx, shopID, jobCardID)
}

var estimateTransitions = map[string][]string{
	entity.EstimateStatusDraft: {entity.EstimateStatusSent},
	entity.EstimateStatusSent:  {entity.EstimateStatusApproved, entity.EstimateStatusRejected},
}

func estimateTransitionAllowed(from, to string) bool {
	for _, next := range estimateTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus 报价单状态流转，流转时打上对应时间戳
func (s *EstimateService) UpdateStatus(ctx context.Context, shopID, id, status string) (*entity.Estimate, error) {
	estimate, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if !estimateTransitionAllowed(estimate.Status, status) {
		return nil, fmt.Errorf("%w: cannot move estimate from %s to %s", ErrValidation, estimate.Status, status)
	}

	now := time.Now()
	estimate.Status = status
	switch status {
	case entity.EstimateStatusSent:
		estimate.SentAt = &now
	case entity.EstimateStatusApproved:
		estimate.ApprovedAt = &now
	case entity.EstimateStatusRejected:
		estimate.RejectedAt = &now
	}

	if err := s.repo.Update(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}
