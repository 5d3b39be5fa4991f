package handler_test

import (
	"net/http"
	"testing"

	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/testutil"
)

func inventoryQuantity(t *testing.T, env *testutil.TestEnv, id string) int {
	t.Helper()
	var item entity.Inventory
	if err := env.DB.First(&item, "id = ?", id).Error; err != nil {
		t.Fatalf("Failed to load inventory: %v", err)
	}
	return item.Quantity
}

func jobTotals(t *testing.T, env *testutil.TestEnv, id string) (parts, labor, other, final float64) {
	t.Helper()
	var job entity.JobCard
	if err := env.DB.First(&job, "id = ?", id).Error; err != nil {
		t.Fatalf("Failed to load job card: %v", err)
	}
	return job.TotalParts, job.TotalLabor, job.TotalOther, job.FinalCost
}

func TestPartLifecycleFromStock(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-pt1", "Owner", "pt1@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-pt1", "Parts Shop")
	inv := testutil.SeedInventory(t, env.DB, shop.ID, "BRK-001", "Brake Pad", 10, 20, 35)
	job := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "Brake Customer")

	// 领用4件
	w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts", map[string]interface{}{
		"inventory_id": inv.ID,
		"quantity":     4,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	part := resp["data"].(map[string]interface{})
	partID := part["id"].(string)

	if part["status"] != "PENDING" {
		t.Errorf("Expected status PENDING, got %v", part["status"])
	}
	// 库存快照
	if part["name"] != "Brake Pad" || part["selling_price"].(float64) != 35 {
		t.Errorf("Expected snapshot name/price from inventory, got %v / %v", part["name"], part["selling_price"])
	}
	if q := inventoryQuantity(t, env, inv.ID); q != 6 {
		t.Errorf("Expected inventory quantity 6 after attach, got %d", q)
	}

	// OUT/JOB_PART调整记录
	var adj entity.StockAdjustment
	if err := env.DB.First(&adj, "inventory_id = ? AND reason = ?", inv.ID, "JOB_PART").Error; err != nil {
		t.Fatalf("Expected JOB_PART adjustment: %v", err)
	}
	if adj.Type != "OUT" || adj.Quantity != 4 || adj.Reference != job.ID {
		t.Errorf("Unexpected adjustment: type=%s qty=%d ref=%s", adj.Type, adj.Quantity, adj.Reference)
	}

	// 汇总 = 35 * 4
	parts, _, _, final := jobTotals(t, env, job.ID)
	if parts != 140 || final != 140 {
		t.Errorf("Expected totals 140/140, got %v/%v", parts, final)
	}

	// 安装
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts/"+partID+"/install", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	installed := resp["data"].(map[string]interface{})
	if installed["status"] != "INSTALLED" || installed["installed_at"] == nil {
		t.Errorf("Expected INSTALLED with timestamp, got %v / %v", installed["status"], installed["installed_at"])
	}
	// 安装无库存副作用
	if q := inventoryQuantity(t, env, inv.ID); q != 6 {
		t.Errorf("Install must not touch inventory, got %d", q)
	}

	// 重复安装
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts/"+partID+"/install", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for double install, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_PART_STATE" {
		t.Errorf("Expected INVALID_PART_STATE, got %v", errObj["code"])
	}

	// 退回
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts/"+partID+"/return", map[string]string{
		"reason": "wrong part",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if q := inventoryQuantity(t, env, inv.ID); q != 10 {
		t.Errorf("Expected inventory restored to 10 after return, got %d", q)
	}
	var returnAdj entity.StockAdjustment
	if err := env.DB.First(&returnAdj, "inventory_id = ? AND reason = ?", inv.ID, "RETURN").Error; err != nil {
		t.Fatalf("Expected RETURN adjustment: %v", err)
	}
	if returnAdj.Type != "IN" || returnAdj.Quantity != 4 {
		t.Errorf("Unexpected return adjustment: type=%s qty=%d", returnAdj.Type, returnAdj.Quantity)
	}

	// 退回后不计入汇总
	parts, _, _, final = jobTotals(t, env, job.ID)
	if parts != 0 || final != 0 {
		t.Errorf("Expected totals 0 after return, got %v/%v", parts, final)
	}

	// 退回是终态
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts/"+partID+"/return", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for double return, got %d", w.Code)
	}

	// 退回的配件保留，列表排除
	w = testutil.DoRequest(env.Router, "GET", "/api/jobs/"+job.ID+"/parts", nil, token)
	resp = testutil.ParseResponse(w)
	list := resp["data"].([]interface{})
	if len(list) != 0 {
		t.Errorf("Expected returned part excluded from list, got %d items", len(list))
	}
	var count int64
	env.DB.Model(&entity.Part{}).Where("job_card_id = ?", job.ID).Count(&count)
	if count != 1 {
		t.Errorf("Returned part row must survive for audit, count=%d", count)
	}
}

func TestPartInsufficientStock(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-pt2", "Owner", "pt2@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-pt2", "Stock Shop")
	inv := testutil.SeedInventory(t, env.DB, shop.ID, "FLT-001", "Oil Filter", 3, 5, 9)
	job := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "Filter Customer")

	w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts", map[string]interface{}{
		"inventory_id": inv.ID,
		"quantity":     5,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != "INSUFFICIENT_STOCK" {
		t.Errorf("Expected INSUFFICIENT_STOCK, got %v", errObj["code"])
	}

	// 失败请求不留任何痕迹
	if q := inventoryQuantity(t, env, inv.ID); q != 3 {
		t.Errorf("Expected inventory unchanged at 3, got %d", q)
	}
	var partCount, adjCount int64
	env.DB.Model(&entity.Part{}).Where("job_card_id = ?", job.ID).Count(&partCount)
	env.DB.Model(&entity.StockAdjustment{}).Where("inventory_id = ?", inv.ID).Count(&adjCount)
	if partCount != 0 || adjCount != 0 {
		t.Errorf("Expected no part/adjustment rows, got %d/%d", partCount, adjCount)
	}
}

func TestPartRemoveRestockRules(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-pt3", "Owner", "pt3@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-pt3", "Remove Shop")
	inv := testutil.SeedInventory(t, env.DB, shop.ID, "SPK-001", "Spark Plug", 10, 4, 8)
	job := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "Plug Customer")

	attach := func(qty int) string {
		w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts", map[string]interface{}{
			"inventory_id": inv.ID,
			"quantity":     qty,
		}, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		resp := testutil.ParseResponse(w)
		return resp["data"].(map[string]interface{})["id"].(string)
	}

	// PENDING删除回库
	pendingID := attach(3)
	if q := inventoryQuantity(t, env, inv.ID); q != 7 {
		t.Fatalf("Expected 7 after attach, got %d", q)
	}
	w := testutil.DoRequest(env.Router, "DELETE", "/api/jobs/"+job.ID+"/parts/"+pendingID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if q := inventoryQuantity(t, env, inv.ID); q != 10 {
		t.Errorf("Expected restock to 10 after removing PENDING part, got %d", q)
	}
	var removalAdj entity.StockAdjustment
	if err := env.DB.First(&removalAdj, "inventory_id = ? AND reason = ?", inv.ID, "REMOVAL").Error; err != nil {
		t.Fatalf("Expected REMOVAL adjustment: %v", err)
	}

	// INSTALLED删除不回库
	installedID := attach(2)
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts/"+installedID+"/install", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	w = testutil.DoRequest(env.Router, "DELETE", "/api/jobs/"+job.ID+"/parts/"+installedID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if q := inventoryQuantity(t, env, inv.ID); q != 8 {
		t.Errorf("Removing INSTALLED part must not restock, expected 8, got %d", q)
	}

	// 删除后汇总归零
	parts, _, _, _ := jobTotals(t, env, job.ID)
	if parts != 0 {
		t.Errorf("Expected zero parts total after removals, got %v", parts)
	}
}

func TestManualPartAndQuantityRule(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-pt4", "Owner", "pt4@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-pt4", "Manual Shop")
	inv := testutil.SeedInventory(t, env.DB, shop.ID, "BLT-001", "Belt", 5, 10, 18)
	job := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "Belt Customer")

	// 无库存关联的配件
	w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts", map[string]interface{}{
		"name":          "Special Order Gasket",
		"quantity":      2,
		"selling_price": 25.0,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	manual := resp["data"].(map[string]interface{})
	manualID := manual["id"].(string)
	if manual["inventory_id"] != nil {
		t.Errorf("Expected nil inventory_id, got %v", manual["inventory_id"])
	}
	if q := inventoryQuantity(t, env, inv.ID); q != 5 {
		t.Errorf("Manual part must not touch inventory, got %d", q)
	}

	// 无关联配件可改数量
	w = testutil.DoRequest(env.Router, "PUT", "/api/jobs/"+job.ID+"/parts/"+manualID, map[string]interface{}{
		"quantity": 3,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	parts, _, _, _ := jobTotals(t, env, job.ID)
	if parts != 75 {
		t.Errorf("Expected totals 75 after quantity update, got %v", parts)
	}

	// 库存关联配件不可改数量
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts", map[string]interface{}{
		"inventory_id": inv.ID,
		"quantity":     1,
	}, token)
	resp = testutil.ParseResponse(w)
	linkedID := resp["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, "PUT", "/api/jobs/"+job.ID+"/parts/"+linkedID, map[string]interface{}{
		"quantity": 4,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for linked quantity edit, got %d: %s", w.Code, w.Body.String())
	}

	// 缺名称的无关联配件
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts", map[string]interface{}{
		"quantity": 1,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for nameless manual part, got %d", w.Code)
	}
}

func TestJobCostsAndFinalCost(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-pt5", "Owner", "pt5@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-pt5", "Cost Shop")
	inv := testutil.SeedInventory(t, env.DB, shop.ID, "PAD-001", "Pad", 10, 15, 30)
	job := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "Cost Customer")

	w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/parts", map[string]interface{}{
		"inventory_id": inv.ID,
		"quantity":     2,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// 工时费
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/costs", map[string]interface{}{
		"type":   "LABOR",
		"hours":  2.0,
		"rate":   50.0,
		"amount": 100.0,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	costID := resp["data"].(map[string]interface{})["id"].(string)

	// 其他费用
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/costs", map[string]interface{}{
		"type":   "OTHER",
		"amount": 40.0,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	parts, labor, other, final := jobTotals(t, env, job.ID)
	if parts != 60 || labor != 100 || other != 40 || final != 200 {
		t.Errorf("Expected totals 60/100/40/200, got %v/%v/%v/%v", parts, labor, other, final)
	}

	// 非法类型
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/costs", map[string]interface{}{
		"type":   "PARTS",
		"amount": 10.0,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid cost type, got %d", w.Code)
	}

	// 更新费用
	w = testutil.DoRequest(env.Router, "PUT", "/api/jobs/"+job.ID+"/costs/"+costID, map[string]interface{}{
		"type":   "LABOR",
		"amount": 150.0,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	_, labor, _, final = jobTotals(t, env, job.ID)
	if labor != 150 || final != 250 {
		t.Errorf("Expected labor 150 final 250, got %v/%v", labor, final)
	}

	// 删除费用
	w = testutil.DoRequest(env.Router, "DELETE", "/api/jobs/"+job.ID+"/costs/"+costID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	_, labor, other, final = jobTotals(t, env, job.ID)
	if labor != 0 || other != 40 || final != 100 {
		t.Errorf("Expected 0/40/100 after delete, got %v/%v/%v", labor, other, final)
	}
}
