package service

import (
	"errors"

	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 业务错误。handler层据此映射HTTP状态码：
// ErrNotFound → 404，其余业务错误 → 400，未知错误 → 500。
var (
	ErrNotFound          = repository.ErrNotFound
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidPartState  = errors.New("invalid part state")
	ErrScheduleConflict  = errors.New("mechanic already has a job scheduled for this time slot")
	ErrShopExists        = errors.New("shop already registered")
	ErrValidation        = errors.New("validation failed")
)

// Services 服务集合
type Services struct {
	Shop      *ShopService
	JobCard   *JobCardService
	Part      *PartService
	Schedule  *ScheduleService
	Mechanic  *MechanicService
	Inventory *InventoryService
	Supplier  *SupplierService
	PartOrder *PartOrderService
	Estimate  *EstimateService
	Report    *ReportService
}

// NewServices 创建服务集合。redisClient可为nil，此时门店解析不走缓存。
func NewServices(repos *repository.Repositories, db *gorm.DB, redisClient *redis.Client) *Services {
	return &Services{
		Shop:      NewShopService(repos.Shop, redisClient),
		JobCard:   NewJobCardService(repos.JobCard, db),
		Part:      NewPartService(repos.JobCard, repos.Inventory, db),
		Schedule:  NewScheduleService(repos.JobCard, repos.Mechanic),
		Mechanic:  NewMechanicService(repos.Mechanic),
		Inventory: NewInventoryService(repos.Inventory, db),
		Supplier:  NewSupplierService(repos.Supplier, repos.Inventory, repos.PartOrder),
		PartOrder: NewPartOrderService(repos.PartOrder, repos.Supplier, db),
		Estimate:  NewEstimateService(repos.Estimate, repos.JobCard),
		Report:    NewReportService(repos.Inventory),
	}
}
