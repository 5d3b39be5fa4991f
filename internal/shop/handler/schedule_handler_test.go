package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/bitfantasy/gearbox/internal/shop/testutil"
)

func TestScheduleConflict(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-sc1", "Owner", "sc1@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-sc1", "Schedule Shop")
	mechanic := testutil.SeedMechanic(t, env.DB, shop.ID, "Alice")
	job1 := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "First")
	job2 := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0002", "Second")
	job3 := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0003", "Third")

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	// 派工
	w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job1.ID+"/schedule", map[string]interface{}{
		"mechanic_id":     mechanic.ID,
		"scheduled_date":  date,
		"scheduled_time":  "09:00",
		"estimated_hours": 2.0,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != "IN_PROGRESS" {
		t.Errorf("Expected IN_PROGRESS after scheduling, got %v", data["status"])
	}

	// 同技师同日同时段冲突
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job2.ID+"/schedule", map[string]interface{}{
		"mechanic_id":    mechanic.ID,
		"scheduled_date": date,
		"scheduled_time": "09:00",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 conflict, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != "SCHEDULE_CONFLICT" {
		t.Errorf("Expected SCHEDULE_CONFLICT, got %v", errObj["code"])
	}

	// 不同时段不冲突
	w = testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job2.ID+"/schedule", map[string]interface{}{
		"mechanic_id":    mechanic.ID,
		"scheduled_date": date,
		"scheduled_time": "11:00",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for free slot, got %d: %s", w.Code, w.Body.String())
	}

	// 改期到占用时段
	w = testutil.DoRequest(env.Router, "PUT", "/api/jobs/"+job2.ID+"/schedule", map[string]interface{}{
		"scheduled_time": "09:00",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 conflict on reschedule, got %d: %s", w.Code, w.Body.String())
	}

	// 自己占用的时段不算冲突
	w = testutil.DoRequest(env.Router, "PUT", "/api/jobs/"+job1.ID+"/schedule", map[string]interface{}{
		"estimated_hours": 3.0,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 updating own slot, got %d: %s", w.Code, w.Body.String())
	}

	// 未排班的工单不能改排班
	w = testutil.DoRequest(env.Router, "PUT", "/api/jobs/"+job3.ID+"/schedule", map[string]interface{}{
		"scheduled_time": "14:00",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unscheduled job, got %d", w.Code)
	}
}

func TestScheduleOverview(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-sc2", "Owner", "sc2@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-sc2", "Overview Shop")
	mechanic := testutil.SeedMechanic(t, env.DB, shop.ID, "Bob")
	scheduled := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "Scheduled")
	testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0002", "Waiting")

	date := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+scheduled.ID+"/schedule", map[string]interface{}{
		"mechanic_id":    mechanic.ID,
		"scheduled_date": date,
		"scheduled_time": "10:00",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/schedule?date="+date, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if n := len(data["scheduled"].([]interface{})); n != 1 {
		t.Errorf("Expected 1 scheduled job, got %d", n)
	}
	if n := len(data["unscheduled"].([]interface{})); n != 1 {
		t.Errorf("Expected 1 unscheduled job, got %d", n)
	}

	// 技师在排工单
	w = testutil.DoRequest(env.Router, "GET", "/api/mechanics/"+mechanic.ID+"/jobs", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	if n := len(resp["data"].([]interface{})); n != 1 {
		t.Errorf("Expected 1 assigned job, got %d", n)
	}

	// 非法日期
	w = testutil.DoRequest(env.Router, "GET", "/api/schedule?date=bogus", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for bad date, got %d", w.Code)
	}
}

func TestScheduleInactiveMechanic(t *testing.T) {
	env := testutil.SetupEnv(t)
	token := testutil.GenerateTestToken("user-sc3", "Owner", "sc3@test.com")
	shop := testutil.SeedShop(t, env.DB, "user-sc3", "Inactive Shop")
	mechanic := testutil.SeedMechanic(t, env.DB, shop.ID, "Carol")
	job := testutil.SeedJobCard(t, env.DB, shop.ID, "JOB-2609-0001", "Customer")

	env.DB.Model(mechanic).Update("is_active", false)

	w := testutil.DoRequest(env.Router, "POST", "/api/jobs/"+job.ID+"/schedule", map[string]interface{}{
		"mechanic_id":    mechanic.ID,
		"scheduled_date": time.Now().Format("2006-01-02"),
		"scheduled_time": "09:00",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for inactive mechanic, got %d: %s", w.Code, w.Body.String())
	}
}
