package handler

import (
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// ShopHandler 门店接口
type ShopHandler struct {
	svc *service.ShopService
}

// Create 注册门店
// POST /api/shops
func (h *ShopHandler) Create(c *gin.Context) {
	var req service.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shop, err := h.svc.Create(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, shop, "Shop created successfully")
}

// Get 当前用户的门店
// GET /api/shops/me
func (h *ShopHandler) Get(c *gin.Context) {
	shop, err := h.svc.Get(c.Request.Context(), getUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, shop, "")
}

// Update 更新门店资料
// PUT /api/shops/me
func (h *ShopHandler) Update(c *gin.Context) {
	var req service.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shop, err := h.svc.Update(c.Request.Context(), getUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, shop, "Shop updated successfully")
}
