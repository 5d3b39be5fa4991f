package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/bitfantasy/gearbox/internal/middleware"
	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"github.com/bitfantasy/gearbox/internal/shop/handler"
	"github.com/bitfantasy/gearbox/internal/shop/repository"
	"github.com/bitfantasy/gearbox/internal/shop/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSchema = "test_gearbox"
	JWTSecret  = "gearbox-jwt-secret-key-2024"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Services *service.Services
}

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadEnv loads .env from the project root
func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// SetupTestDB creates a test database connection using a dedicated test schema.
// Each test gets an isolated schema that is cleaned up after the test.
// Skips the test when postgres is not reachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "gearbox")
	password := getEnv("DB_PASSWORD", "gearbox")
	dbname := getEnv("DB_NAME", "gearbox")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	// First: create schema using a temporary connection
	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	if err := setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName)).Error; err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// Second: open connection with search_path in DSN so ALL pooled connections use test schema
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Shop{},
		&entity.JobCard{},
		&entity.JobStatusHistory{},
		&entity.JobNote{},
		&entity.Part{},
		&entity.JobCost{},
		&entity.Inventory{},
		&entity.StockAdjustment{},
		&entity.InventorySettings{},
		&entity.Mechanic{},
		&entity.Supplier{},
		&entity.PartOrder{},
		&entity.PartOrderItem{},
		&entity.Estimate{},
		&entity.EstimateItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupEnv wires the full stack (repos, services, handlers, routes)
// against an isolated test schema.
func SetupEnv(t *testing.T) *TestEnv {
	t.Helper()

	db := SetupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, nil)
	handlers := handler.NewHandlers(services, zap.NewNop())

	handler.RegisterRoutes(r, handlers,
		middleware.JWTAuth(JWTSecret),
		middleware.ShopAuth(services.Shop),
	)

	return &TestEnv{DB: db, Router: r, Services: services}
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, name, email string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"iss":   "gearbox-test",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response envelope
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedShop creates a shop bound to the given external user ID
func SeedShop(t *testing.T, db *gorm.DB, userID, name string) *entity.Shop {
	t.Helper()
	shop := &entity.Shop{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
		Email:  userID + "@test.com",
	}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("Failed to seed shop: %v", err)
	}
	return shop
}

// SeedInventory creates an inventory item for a shop
func SeedInventory(t *testing.T, db *gorm.DB, shopID, partNumber, name string, quantity int, costPrice, sellingPrice float64) *entity.Inventory {
	t.Helper()
	item := &entity.Inventory{
		ID:           uuid.New().String(),
		ShopID:       shopID,
		PartNumber:   partNumber,
		Name:         name,
		Quantity:     quantity,
		MinQuantity:  2,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("Failed to seed inventory: %v", err)
	}
	return item
}

// SeedJobCard creates a job card for a shop
func SeedJobCard(t *testing.T, db *gorm.DB, shopID, jobNumber, customer string) *entity.JobCard {
	t.Helper()
	job := &entity.JobCard{
		ID:           uuid.New().String(),
		ShopID:       shopID,
		JobNumber:    jobNumber,
		CustomerName: customer,
		Status:       entity.JobStatusPending,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Failed to seed job card: %v", err)
	}
	return job
}

// SeedMechanic creates a mechanic for a shop
func SeedMechanic(t *testing.T, db *gorm.DB, shopID, name string) *entity.Mechanic {
	t.Helper()
	mechanic := &entity.Mechanic{
		ID:       uuid.New().String(),
		ShopID:   shopID,
		Name:     name,
		IsActive: true,
	}
	if err := db.Create(mechanic).Error; err != nil {
		t.Fatalf("Failed to seed mechanic: %v", err)
	}
	return mechanic
}

// SeedSupplier creates a supplier for a shop
func SeedSupplier(t *testing.T, db *gorm.DB, shopID, name string) *entity.Supplier {
	t.Helper()
	supplier := &entity.Supplier{
		ID:     uuid.New().String(),
		ShopID: shopID,
		Name:   name,
	}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("Failed to seed supplier: %v", err)
	}
	return supplier
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
