package handler

import (
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// InventoryHandler 库存接口
type InventoryHandler struct {
	svc *service.InventoryService
}

// List 库存列表
// GET /api/inventory?search=&category=&low_stock=true
func (h *InventoryHandler) List(c *gin.Context) {
	params := &service.InventoryListParams{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		LowStock: c.Query("low_stock") == "true",
	}
	items, err := h.svc.List(c.Request.Context(), getShopID(c), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, items, "")
}

// Get 库存条目详情
// GET /api/inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, item, "")
}

// Create 新建库存条目
// POST /api/inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), getShopID(c), getUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, item, "Inventory item created successfully")
}

// Update 更新库存条目
// PUT /api/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	var req service.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.svc.Update(c.Request.Context(), getShopID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, item, "Inventory item updated successfully")
}

// Delete 删除库存条目
// DELETE /api/inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), getShopID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Inventory item deleted successfully")
}

// CreateAdjustment 人工库存调整
// POST /api/inventory/adjustments
func (h *InventoryHandler) CreateAdjustment(c *gin.Context) {
	var req service.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	adj, err := h.svc.CreateAdjustment(c.Request.Context(), getShopID(c), getUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, adj, "Stock adjusted successfully")
}

// ListAdjustments 调整历史
// GET /api/inventory/adjustments?inventory_id=&start_date=&end_date=
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	params := repository.AdjustmentListParams{
		InventoryID: c.Query("inventory_id"),
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(c, 400, "VALIDATION_ERROR", "start_date must be YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(c, 400, "VALIDATION_ERROR", "end_date must be YYYY-MM-DD")
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	adjustments, err := h.svc.ListAdjustments(c.Request.Context(), getShopID(c), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, adjustments, "")
}

// GetSettings 库存参数
// GET /api/inventory/settings
func (h *InventoryHandler) GetSettings(c *gin.Context) {
	settings, err := h.svc.GetSettings(c.Request.Context(), getShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, settings, "")
}

// UpdateSettings 更新库存参数
// PUT /api/inventory/settings
func (h *InventoryHandler) UpdateSettings(c *gin.Context) {
	var req service.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := h.svc.UpdateSettings(c.Request.Context(), getShopID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, settings, "Settings updated successfully")
}
