package handler

import (
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// PartOrderHandler 采购订单接口
type PartOrderHandler struct {
	svc *service.PartOrderService
}

// List 采购订单列表
// GET /api/part-orders?status=
func (h *PartOrderHandler) List(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context(), getShopID(c), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, orders, "")
}

// Get 采购订单详情
// GET /api/part-orders/:id
func (h *PartOrderHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, order, "")
}

// Create 创建采购订单
// POST /api/part-orders
func (h *PartOrderHandler) Create(c *gin.Context) {
	var req service.CreatePartOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.svc.Create(c.Request.Context(), getShopID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, order, "Part order created successfully")
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING ORDERED COMPLETE CANCELLED"`
}

// UpdateStatus 采购订单状态流转
// PATCH /api/part-orders/:id/status
func (h *PartOrderHandler) UpdateStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), getShopID(c), getUserID(c), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, order, "Order status updated successfully")
}
