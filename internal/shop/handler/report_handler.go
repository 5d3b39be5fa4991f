package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler 库存报表接口
type ReportHandler struct {
	svc    *service.ReportService
	logger *zap.Logger
}

// Summary 库存概览
// GET /api/reports/inventory
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), getShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, summary, "")
}

// exportSince 导出时段起点，默认最近30天
func exportSince(c *gin.Context) (time.Time, error) {
	if v := c.Query("since"); v != "" {
		return time.Parse("2006-01-02", v)
	}
	return time.Now().AddDate(0, 0, -30), nil
}

// ExportCSV 导出库存CSV
// GET /api/reports/inventory/export?since=YYYY-MM-DD
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	since, err := exportSince(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "since must be YYYY-MM-DD")
		return
	}

	data, err := h.svc.ExportCSV(c.Request.Context(), getShopID(c), since)
	if err != nil {
		h.logger.Error("CSV export failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("inventory-report-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportExcel 导出库存Excel
// GET /api/reports/inventory/export/xlsx?since=YYYY-MM-DD
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	since, err := exportSince(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "since must be YYYY-MM-DD")
		return
	}

	data, err := h.svc.ExportExcel(c.Request.Context(), getShopID(c), since)
	if err != nil {
		h.logger.Error("Excel export failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("inventory-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
