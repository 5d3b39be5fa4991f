package handler

import (
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// PartHandler 工单配件与费用接口
type PartHandler struct {
	svc *service.PartService
}

// List 工单配件列表
// GET /api/jobs/:id/parts
func (h *PartHandler) List(c *gin.Context) {
	parts, err := h.svc.ListParts(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, parts, "")
}

// Attach 工单添加配件
// POST /api/jobs/:id/parts
func (h *PartHandler) Attach(c *gin.Context) {
	var req service.AttachPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	part, err := h.svc.AttachPart(c.Request.Context(), getShopID(c), getUserID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, part, "Part added successfully")
}

// Update 更新配件
// PUT /api/jobs/:id/parts/:partId
func (h *PartHandler) Update(c *gin.Context) {
	var req service.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	part, err := h.svc.UpdatePart(c.Request.Context(), getShopID(c), c.Param("id"), c.Param("partId"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, part, "Part updated successfully")
}

// Install 安装配件
// POST /api/jobs/:id/parts/:partId/install
func (h *PartHandler) Install(c *gin.Context) {
	part, err := h.svc.InstallPart(c.Request.Context(), getShopID(c), getUserID(c), c.Param("id"), c.Param("partId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, part, "Part installed successfully")
}

type returnPartRequest struct {
	Reason string `json:"reason"`
}

// Return 退回配件
// POST /api/jobs/:id/parts/:partId/return
func (h *PartHandler) Return(c *gin.Context) {
	var req returnPartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	part, err := h.svc.ReturnPart(c.Request.Context(), getShopID(c), getUserID(c), c.Param("id"), c.Param("partId"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, part, "Part returned successfully")
}

// Remove 删除配件
// DELETE /api/jobs/:id/parts/:partId
func (h *PartHandler) Remove(c *gin.Context) {
	if err := h.svc.RemovePart(c.Request.Context(), getShopID(c), getUserID(c), c.Param("id"), c.Param("partId")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Part removed successfully")
}

// AddCost 添加费用行项
// POST /api/jobs/:id/costs
func (h *PartHandler) AddCost(c *gin.Context) {
	var req service.JobCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cost, err := h.svc.AddCost(c.Request.Context(), getShopID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, cost, "Cost added successfully")
}

// UpdateCost 更新费用行项
// PUT /api/jobs/:id/costs/:costId
func (h *PartHandler) UpdateCost(c *gin.Context) {
	var req service.JobCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cost, err := h.svc.UpdateCost(c.Request.Context(), getShopID(c), c.Param("id"), c.Param("costId"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, cost, "Cost updated successfully")
}

// DeleteCost 删除费用行项
// DELETE /api/jobs/:id/costs/:costId
func (h *PartHandler) DeleteCost(c *gin.Context) {
	if err := h.svc.DeleteCost(c.Request.Context(), getShopID(c), c.Param("id"), c.Param("costId")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Cost deleted successfully")
}
