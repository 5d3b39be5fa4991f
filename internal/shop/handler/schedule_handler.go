package handler

import (
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// ScheduleHandler 排班接口
type ScheduleHandler struct {
	svc *service.ScheduleService
}

// Get 排班总览
// GET /api/schedule?date=YYYY-MM-DD
func (h *ScheduleHandler) Get(c *gin.Context) {
	overview, err := h.svc.GetSchedule(c.Request.Context(), getShopID(c), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, overview, "")
}

// ScheduleJob 工单派工
// POST /api/jobs/:id/schedule
func (h *ScheduleHandler) ScheduleJob(c *gin.Context) {
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.svc.ScheduleJob(c.Request.Context(), getShopID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, job, "Job scheduled successfully")
}

// UpdateSchedule 调整排班
// PUT /api/jobs/:id/schedule
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.svc.UpdateSchedule(c.Request.Context(), getShopID(c), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, job, "Schedule updated successfully")
}

// MechanicJobs 技师在排工单
// GET /api/mechanics/:id/jobs
func (h *ScheduleHandler) MechanicJobs(c *gin.Context) {
	jobs, err := h.svc.GetMechanicJobs(c.Request.Context(), getShopID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, jobs, "")
}
