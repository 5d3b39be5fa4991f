package handler

import (
	"errors"
	"net/http"

	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers 处理器集合
type Handlers struct {
	Shop      *ShopHandler
	JobCard   *JobCardHandler
	Part      *PartHandler
	Schedule  *ScheduleHandler
	Mechanic  *MechanicHandler
	Inventory *InventoryHandler
	Supplier  *SupplierHandler
	PartOrder *PartOrderHandler
	Estimate  *EstimateHandler
	Report    *ReportHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(services *service.Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		Shop:      &ShopHandler{svc: services.Shop},
		JobCard:   &JobCardHandler{svc: services.JobCard},
		Part:      &PartHandler{svc: services.Part},
		Schedule:  &ScheduleHandler{svc: services.Schedule},
		Mechanic:  &MechanicHandler{svc: services.Mechanic},
		Inventory: &InventoryHandler{svc: services.Inventory},
		Supplier:  &SupplierHandler{svc: services.Supplier},
		PartOrder: &PartOrderHandler{svc: services.PartOrder},
		Estimate:  &EstimateHandler{svc: services.Estimate},
		Report:    &ReportHandler{svc: services.Report, logger: logger},
	}
}

// 统一响应信封

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error":   gin.H{"code": code},
	})
}

// respondServiceError 业务错误映射HTTP状态码
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, service.ErrInvalidPartState):
		respondError(c, http.StatusBadRequest, "INVALID_PART_STATE", err.Error())
	case errors.Is(err, service.ErrScheduleConflict):
		respondError(c, http.StatusBadRequest, "SCHEDULE_CONFLICT", err.Error())
	case errors.Is(err, service.ErrShopExists):
		respondError(c, http.StatusBadRequest, "SHOP_EXISTS", err.Error())
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}

func getUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

func getShopID(c *gin.Context) string {
	return c.GetString("shop_id")
}
