package handler

import (
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// MechanicHandler 技师接口
type MechanicHandler struct {
	svc *service.MechanicService
}

// List 技师列表
// GET /api/mechanics
func (h *MechanicHandler) List(c *gin.Context) {
	mechanics, err := h.svc.List(c.Request.Context(), getShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mechanics, "")
}

// Get 技师详情
// GET /api/mechanics/:id
func (h *MechanicHandler) Get(c *gin.Context) {
	mechanic, err := h.svc.Get(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mechanic, "")
}

// Create 新增技师
// POST /api/mechanics
func (h *MechanicHandler) Create(c *gin.Context) {
	var req service.MechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	mechanic, err := h.svc.Create(c.Request.Context(), getShopID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, mechanic, "Mechanic created successfully")
}

// Update 更新技师
// PUT /api/mechanics/:id
func (h *MechanicHandler) Update(c *gin.Context) {
	var req service.MechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	mechanic, err := h.svc.Update(c.Request.Context(), getShopID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, mechanic, "Mechanic updated successfully")
}

// Delete 删除技师
// DELETE /api/mechanics/:id
func (h *MechanicHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), getShopID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Mechanic deleted successfully")
}
