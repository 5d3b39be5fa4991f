package service

import (
	"context"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/google/uuid"
)

// MechanicService 技师服务
type MechanicService struct {
	repo *repository.MechanicRepository
}

func NewMechanicService(repo *repository.MechanicRepository) *MechanicService {
	return &MechanicService{repo: repo}
}

// MechanicRequest 技师创建/更新请求
type MechanicRequest struct {
	Name        string   `json:"name" binding:"required"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Specialties []string `json:"specialties"`
	IsActive    *bool    `json:"is_active"`
}

func specialtiesArray(values []string) *entity.JSONBArray {
	arr := make(entity.JSONBArray, len(values))
	for i, v := range values {
		arr[i] = v
	}
	return &arr
}

// List 技师列表，含各自在排工单
func (s *MechanicService) List(ctx context.Context, shopID string) ([]entity.Mechanic, error) {
	return s.repo.FindAll(ctx, shopID)
}

// Get 技师详情
func (s *MechanicService) Get(ctx context.Context, shopID, id string) (*entity.Mechanic, error) {
	return s.repo.FindByID(ctx, shopID, id)
}

// Create 新增技师
func (s *MechanicService) Create(ctx context.Context, shopID string, req *MechanicRequest) (*entity.Mechanic, error) {
	mechanic := &entity.Mechanic{
		ID:       uuid.New().String(),
		ShopID:   shopID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}
	if req.Specialties != nil {
		mechanic.Specialties = specialtiesArray(req.Specialties)
	}
	if req.IsActive != nil {
		mechanic.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, mechanic); err != nil {
		return nil, err
	}
	return mechanic, nil
}

// Update 更新技师
func (s *MechanicService) Update(ctx context.Context, shopID, id string, req *MechanicRequest) (*entity.Mechanic, error) {
	mechanic, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}

	mechanic.Name = req.Name
	mechanic.Phone = req.Phone
	mechanic.Email = req.Email
	if req.Specialties != nil {
		mechanic.Specialties = specialtiesArray(req.Specialties)
	}
	if req.IsActive != nil {
		mechanic.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, mechanic); err != nil {
		return nil, err
	}
	return mechanic, nil
}

// Delete 删除技师，仓库层同时置空其在排工单的mechanic_id
func (s *MechanicService) Delete(ctx context.Context, shopID, id string) error {
	return s.repo.Delete(ctx, shopID, id)
}
