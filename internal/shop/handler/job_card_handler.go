package handler

import (
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// JobCardHandler 工单接口
type JobCardHandler struct {
	svc *service.JobCardService
}

// List 工单列表
// GET /api/jobs?status=
func (h *JobCardHandler) List(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context(), getShopID(c), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, jobs, "")
}

// Create 创建工单
// POST /api/jobs
func (h *JobCardHandler) Create(c *gin.Context) {
	var req service.CreateJobCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.svc.Create(c.Request.Context(), getShopID(c), getUserID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, job, "Job card created successfully")
}

// Get 工单详情
// GET /api/jobs/:id
func (h *JobCardHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, job, "")
}

// Update 更新工单
// PUT /api/jobs/:id
func (h *JobCardHandler) Update(c *gin.Context) {
	var req service.UpdateJobCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.svc.Update(c.Request.Context(), getShopID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, job, "Job card updated successfully")
}

// Delete 删除工单
// DELETE /api/jobs/:id
func (h *JobCardHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), getShopID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, nil, "Job card deleted successfully")
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateStatus 更新工单状态
// PATCH /api/jobs/:id/status
func (h *JobCardHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.svc.UpdateStatus(c.Request.Context(), getShopID(c), c.Param("id"), getUserID(c), req.Status, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, job, "Status updated successfully")
}

type addNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddNote 追加工单备注
// POST /api/jobs/:id/notes
func (h *JobCardHandler) AddNote(c *gin.Context) {
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	note, err := h.svc.AddNote(c.Request.Context(), getShopID(c), c.Param("id"), getUserID(c), req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, note, "Note added successfully")
}
