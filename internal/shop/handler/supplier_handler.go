package handler

import (
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// SupplierHandler 供应商接口
type SupplierHandler struct {
	svc *service.SupplierService
}

// List 供应商列表
// GET /api/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.svc.List(c.Request.Context(), getShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, suppliers, "")
}

// Get 供应商详情
// GET /api/suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	supplier, err := h.svc.Get(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, supplier, "")
}

// GetParts 供应商提供的库存条目
// GET /api/suppliers/:id/parts
func (h *SupplierHandler) GetParts(c *gin.Context) {
	items, err := h.svc.GetParts(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, items, "")
}

// GetOrders 供应商的采购订单
// GET /api/suppliers/:id/orders
func (h *SupplierHandler) GetOrders(c *gin.Context) {
	orders, err := h.svc.GetOrders(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, orders, "")
}

// Create 新增供应商
// POST /api/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req service.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	supplier, err := h.svc.Create(c.Request.Context(), getShopID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, supplier, "Supplier created successfully")
}

// Update 更新供应商
// PUT /api/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	var req service.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	supplier, err := h.svc.Update(c.Request.Context(), getShopID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, supplier, "Supplier updated successfully")
}

// Delete 删除供应商
// DELETE /api/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), getShopID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Supplier deleted successfully")
}
