package handler

import (
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// EstimateHandler 报价单接口
type EstimateHandler struct {
	svc *service.EstimateService
}

// ListByJob 工单报价单列表
// GET /api/jobs/:id/estimates
func (h *EstimateHandler) ListByJob(c *gin.Context) {
	estimates, err := h.svc.ListByJobCard(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, estimates, "")
}

// Create 为工单创建报价单
// POST /api/jobs/:id/estimates
func (h *EstimateHandler) Create(c *gin.Context) {
	var req service.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	estimate, err := h.svc.Create(c.Request.Context(), getShopID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, estimate, "Estimate created successfully")
}

// Get 报价单详情
// GET /api/estimates/:id
func (h *EstimateHandler) Get(c *gin.Context) {
	estimate, err := h.svc.Get(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, estimate, "")
}

type estimateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT SENT APPROVED REJECTED"`
}

// UpdateStatus 报价单状态流转
// PATCH /api/estimates/:id/status
func (h *EstimateHandler) UpdateStatus(c *gin.Context) {
	var req estimateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	estimate, err := h.svc.UpdateStatus(c.Request.Context(), getShopID(c), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, estimate, "Estimate status updated successfully")
}
