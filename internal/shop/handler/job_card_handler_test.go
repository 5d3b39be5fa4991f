package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/testutil"
)

func createJob(t *testing.T, env *testutil.TestEnv, token, customer string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/api/jobs", map[string]interface{}{
		"customer_name": customer,
		"vehicle_make":  "Toyota",
		"vehicle_model": "Corolla",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestJobCardNumbering(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-jc1", "Owner", "jc1@test.com")
	testutil.SeedShop(t, env.DB, "user-jc1", "Shop A")

	yymm := time.Now().Format("0601")

	job1 := createJob(t, env, token, "Customer One")
	expected1 := fmt.Sprintf("JOB-%s-0001", yymm)
	if job1["job_number"] != expected1 {
		t.Errorf("Expected job number %s, got %v", expected1, job1["job_number"])
	}

	job2 := createJob(t, env, token, "Customer Two")
	expected2 := fmt.Sprintf("JOB-%s-0002", yymm)
	if job2["job_number"] != expected2 {
		t.Errorf("Expected job number %s, got %v", expected2, job2["job_number"])
	}

	// 另一家门店独立计数
	token2 := testutil.GenerateTestToken("user-jc2", "Owner", "jc2@test.com")
	testutil.SeedShop(t, env.DB, "user-jc2", "Shop B")
	jobOther := createJob(t, env, token2, "Other Customer")
	if jobOther["job_number"] != expected1 {
		t.Errorf("Expected independent numbering %s, got %v", expected1, jobOther["job_number"])
	}
}

func TestJobCardCRUD(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-jc3", "Owner", "jc3@test.com")
	testutil.SeedShop(t, env.DB, "user-jc3", "Shop C")

	job := createJob(t, env, token, "CRUD Customer")
	jobID := job["id"].(string)
	if job["status"] != "PENDING" {
		t.Errorf("Expected status PENDING, got %v", job["status"])
	}

	// 更新
	w := testutil.DoRequest(env.Router, "PUT", "/api/jobs/"+jobID, map[string]interface{}{
		"customer_name": "Renamed Customer",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["customer_name"] != "Renamed Customer" {
		t.Errorf("Expected renamed customer, got %v", data["customer_name"])
	}
	if data["vehicle_make"] != "Toyota" {
		t.Errorf("Partial update should keep vehicle_make, got %v", data["vehicle_make"])
	}

	// 详情
	w = testutil.DoRequest(env.Router, "GET", "/api/jobs/"+jobID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 删除
	w = testutil.DoRequest(env.Router, "DELETE", "/api/jobs/"+jobID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, "GET", "/api/jobs/"+jobID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestJobCardCrossTenantIsolation(t *testing.T) {
	env := testutil.SetupEnv(t)
	tokenA := testutil.GenerateTestToken("user-ten-a", "A", "a@test.com")
	tokenB := testutil.GenerateTestToken("user-ten-b", "B", "b@test.com")
	testutil.SeedShop(t, env.DB, "user-ten-a", "Shop A")
	testutil.SeedShop(t, env.DB, "user-ten-b", "Shop B")

	job := createJob(t, env, tokenA, "Tenant A Customer")
	jobID := job["id"].(string)

	// B门店访问A门店的工单
	w := testutil.DoRequest(env.Router, "GET", "/api/jobs/"+jobID, nil, tokenB)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 cross-tenant, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, "DELETE", "/api/jobs/"+jobID, nil, tokenB)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 cross-tenant delete, got %d", w.Code)
	}

	// A门店不受影响
	w = testutil.DoRequest(env.Router, "GET", "/api/jobs/"+jobID, nil, tokenA)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for owner, got %d", w.Code)
	}
}

func TestJobCardStatusHistory(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-jc4", "Owner", "jc4@test.com")
	testutil.SeedShop(t, env.DB, "user-jc4", "Shop D")

	job := createJob(t, env, token, "History Customer")
	jobID := job["id"].(string)

	// 非法状态
	w := testutil.DoRequest(env.Router, "PATCH", "/api/jobs/"+jobID+"/status", map[string]string{
		"status": "BOGUS",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid status, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "PATCH", "/api/jobs/"+jobID+"/status", map[string]string{
		"status": "IN_PROGRESS",
		"notes":  "work started",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "PATCH", "/api/jobs/"+jobID+"/status", map[string]string{
		"status": "COMPLETED",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["completed_at"] == nil {
		t.Error("Expected completed_at to be set")
	}

	// 详情含状态历史：created + 2次流转
	w = testutil.DoRequest(env.Router, "GET", "/api/jobs/"+jobID, nil, token)
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	history := data["status_history"].([]interface{})
	if len(history) != 3 {
		t.Fatalf("Expected 3 history entries, got %d", len(history))
	}
	last := history[len(history)-1].(map[string]interface{})
	if last["to_status"] != "COMPLETED" {
		t.Errorf("Expected last history to_status COMPLETED, got %v", last["to_status"])
	}
}

func TestJobCardNotes(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-jc5", "Owner", "jc5@test.com")
	testutil.SeedShop(t, env.DB, "user-jc5", "Shop E")

	job := createJob(t, env, token, "Notes Customer")
	jobID := job["id"].(string)

	w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+jobID+"/notes", map[string]string{
		"content": "Customer approved extra work",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/jobs/"+jobID, nil, token)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	notes := data["notes"].([]interface{})
	if len(notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(notes))
	}
	note := notes[0].(map[string]interface{})
	if !strings.Contains(note["content"].(string), "approved") {
		t.Errorf("Unexpected note content: %v", note["content"])
	}
}
