package handler_test

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/bitfantasy/gearbox/internal/shop/testutil"
	"github.com/xuri/excelize/v2"
)

func TestInventorySummaryReport(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-rp1", "Owner", "rp1@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-rp1", "Report Shop")
	filter := testutil.SeedInventory(t, env.DB, shop.ID, "RPT-001", "Filter", 10, 5, 9)
	// quantity 1 <= min_quantity 2 → 低库存
	wiper := testutil.SeedInventory(t, env.DB, shop.ID, "RPT-002", "Wiper", 1, 3, 6)

	// 手工调整制造近期流水：RPT-001两次出库，RPT-002一次入库
	for _, adj := range []map[string]interface{}{
		{"inventory_id": filter.ID, "type": "OUT", "quantity": 2},
		{"inventory_id": filter.ID, "type": "OUT", "quantity": 1},
		{"inventory_id": wiper.ID, "type": "IN", "quantity": 1},
	} {
		w := testutil.DoRequest(env.Router, "POST", "/api/inventory/adjustments", adj, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/reports/inventory", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["total_items"].(float64) != 2 {
		t.Errorf("Expected 2 items, got %v", data["total_items"])
	}
	if data["total_quantity"].(float64) != 9 {
		t.Errorf("Expected total quantity 9, got %v", data["total_quantity"])
	}
	// 7*5 + 2*3
	if data["total_value"].(float64) != 41 {
		t.Errorf("Expected total value 41, got %v", data["total_value"])
	}
	if data["low_stock_count"].(float64) != 1 {
		t.Errorf("Expected 1 low stock item, got %v", data["low_stock_count"])
	}
	if data["recent_in_count"].(float64) != 1 || data["recent_out_count"].(float64) != 2 {
		t.Errorf("Expected 1 in / 2 out, got %v / %v",
			data["recent_in_count"], data["recent_out_count"])
	}
	movers := data["top_movers"].([]interface{})
	if len(movers) != 2 {
		t.Fatalf("Expected 2 top movers, got %d", len(movers))
	}
	first := movers[0].(map[string]interface{})
	if first["part_number"] != "RPT-001" || first["movements"].(float64) != 2 {
		t.Errorf("Unexpected top mover: %v", first)
	}
}

func TestInventoryCSVExport(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-rp2", "Owner", "rp2@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-rp2", "CSV Shop")
	supplier := testutil.SeedSupplier(t, env.DB, shop.ID, "CSV Supplies")
	inv := testutil.SeedInventory(t, env.DB, shop.ID, "CSV-001", "Coolant", 12, 4, 7.5)
	env.DB.Model(inv).Update("supplier_id", supplier.ID)

	w := testutil.DoRequest(env.Router, "GET", "/api/reports/inventory/export", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Expected attachment disposition, got %s", cd)
	}

	records, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header + 1 row, got %d records", len(records))
	}

	header := records[0]
	expected := []string{
		"Part Number", "Name", "Quantity", "Min Quantity",
		"Cost Price", "Selling Price", "Supplier", "Total Value", "Movements",
	}
	for i, col := range expected {
		if header[i] != col {
			t.Errorf("Expected column %d %q, got %q", i, col, header[i])
		}
	}

	row := records[1]
	if row[0] != "CSV-001" || row[1] != "Coolant" || row[2] != "12" {
		t.Errorf("Unexpected row: %v", row)
	}
	if row[6] != "CSV Supplies" {
		t.Errorf("Expected supplier name, got %q", row[6])
	}
	// 12 * 4.00
	if row[7] != "48.00" {
		t.Errorf("Expected total value 48.00, got %q", row[7])
	}
}

func TestInventoryExcelExport(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-rp3", "Owner", "rp3@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-rp3", "Excel Shop")
	testutil.SeedInventory(t, env.DB, shop.ID, "XLS-001", "Hose", 6, 3, 5.5)

	w := testutil.DoRequest(env.Router, "GET", "/api/reports/inventory/export/xlsx", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("Failed to open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 row, got %d", len(rows))
	}
	if rows[0][0] != "Part Number" {
		t.Errorf("Expected Part Number header, got %q", rows[0][0])
	}
	if rows[1][0] != "XLS-001" {
		t.Errorf("Expected XLS-001, got %q", rows[1][0])
	}
}

func TestReportCrossTenantScope(t *testing.T) {
	env := testutil.SetupEnv(t)
	tokenA := testutil.GenerateTestToken("user-rp4a", "A", "rp4a@test.com")
	tokenB := testutil.GenerateTestToken("user-rp4b", "B", "rp4b@test.com")
	shopA := testutil.SeedShop(t, env.DB, "user-rp4a", "Shop A")
	testutil.SeedShop(t, env.DB, "user-rp4b", "Shop B")
	testutil.SeedInventory(t, env.DB, shopA.ID, "SCOPE-001", "Scoped Part", 9, 2, 4)

	w := testutil.DoRequest(env.Router, "GET", "/api/reports/inventory", nil, tokenA)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["total_items"].(float64) != 1 {
		t.Errorf("Shop A should see its own item, got %v items", data["total_items"])
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/reports/inventory", nil, tokenB)
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["total_items"].(float64) != 0 {
		t.Errorf("Shop B must not see shop A inventory, got %v items", data["total_items"])
	}
}
