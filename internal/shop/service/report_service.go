package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/xuri/excelize/v2"
)

// ReportService 库存报表服务
type ReportService struct {
	invRepo *repository.InventoryRepository
}

func NewReportService(invRepo *repository.InventoryRepository) *ReportService {
	return &ReportService{invRepo: invRepo}
}

// InventorySummary 库存概览
type InventorySummary struct {
	TotalItems     int        `json:"total_items"`
	TotalQuantity  int        `json:"total_quantity"`
	TotalValue     float64    `json:"total_value"`
	LowStockCount  int        `json:"low_stock_count"`
	RecentInCount  int        `json:"recent_in_count"`
	RecentOutCount int        `json:"recent_out_count"`
	TopMovers      []TopMover `json:"top_movers"`
}

// TopMover 时段内变动次数最多的配件
type TopMover struct {
	PartNumber string `json:"part_number"`
	Name       string `json:"name"`
	Movements  int    `json:"movements"`
}

// Summary 库存概览报表。总值按成本价计，出入库计数取最近30天。
func (s *ReportService) Summary(ctx context.Context, shopID string) (*InventorySummary, error) {
	items, err := s.invRepo.FindAll(ctx, shopID, "", "")
	if err != nil {
		return nil, err
	}

	summary := &InventorySummary{TotalItems: len(items)}
	for _, item := range items {
		summary.TotalQuantity += item.Quantity
		summary.TotalValue += float64(item.Quantity) * item.CostPrice
		if item.Quantity <= item.MinQuantity {
			summary.LowStockCount++
		}
	}

	since := time.Now().AddDate(0, 0, -30)
	adjustments, err := s.invRepo.FindAdjustmentsSince(ctx, shopID, since)
	if err != nil {
		return nil, err
	}
	movements := make(map[string]int)
	for _, adj := range adjustments {
		if adj.Type == entity.AdjustmentTypeIn {
			summary.RecentInCount++
		} else {
			summary.RecentOutCount++
		}
		movements[adj.InventoryID]++
	}

	for _, item := range items {
		if n := movements[item.ID]; n > 0 {
			summary.TopMovers = append(summary.TopMovers, TopMover{
				PartNumber: item.PartNumber,
				Name:       item.Name,
				Movements:  n,
			})
		}
	}
	sort.Slice(summary.TopMovers, func(i, j int) bool {
		return summary.TopMovers[i].Movements > summary.TopMovers[j].Movements
	})
	if len(summary.TopMovers) > 5 {
		summary.TopMovers = summary.TopMovers[:5]
	}

	return summary, nil
}

var exportHeader = []string{
	"Part Number", "Name", "Quantity", "Min Quantity",
	"Cost Price", "Selling Price", "Supplier", "Total Value", "Movements",
}

// exportRows 导出数据行。Movements为时段内调整记录条数，
// Total Value按成本价计。
func (s *ReportService) exportRows(ctx context.Context, shopID string, since time.Time) ([][]string, error) {
	items, err := s.invRepo.FindAllWithMovements(ctx, shopID, since)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		supplierName := ""
		if item.Supplier != nil {
			supplierName = item.Supplier.Name
		}
		rows = append(rows, []string{
			item.PartNumber,
			item.Name,
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.MinQuantity),
			fmt.Sprintf("%.2f", item.CostPrice),
			fmt.Sprintf("%.2f", item.SellingPrice),
			supplierName,
			fmt.Sprintf("%.2f", float64(item.Quantity)*item.CostPrice),
			strconv.Itoa(len(item.Adjustments)),
		})
	}
	return rows, nil
}

// ExportCSV 导出库存CSV
func (s *ReportService) ExportCSV(ctx context.Context, shopID string, since time.Time) ([]byte, error) {
	rows, err := s.exportRows(ctx, shopID, since)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportExcel 导出库存Excel
func (s *ReportService) ExportExcel(ctx context.Context, shopID string, since time.Time) ([]byte, error) {
	rows, err := s.exportRows(ctx, shopID, since)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
