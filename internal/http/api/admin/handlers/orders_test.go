package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"gorm.io/gorm"
)

func setupAdminDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.AutoMigrate(
		&models.Admin{},
		&models.Member{},
		&models.MenuItem{},
		&models.StockItem{},
		&models.Order{},
		&models.Sale{},
		&models.Reservation{},
		&models.Voucher{},
		&models.RedeemedVoucher{},
		&models.PointBalance{},
		&models.Setting{},
	); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

func TestCompleteOrderRecordsSale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "adminorders")
	handler := NewOrderHandler(db)

	order := models.Order{OrderNumber: "ord-1", Items: []byte(`[]`), ItemCount: 2, Total: 45000, Status: models.OrderStatusPending}
	if errCreate := db.Create(&order).Error; errCreate != nil {
		t.Fatalf("create order: %v", errCreate)
	}

	router := gin.New()
	router.POST("/v0/admin/orders/:id/status", handler.UpdateStatus)

	body := `{"status":"completed","payment_method":"qris"}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v0/admin/orders/%d/status", order.ID), strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Order
	if errFind := db.First(&updated, order.ID).Error; errFind != nil {
		t.Fatalf("reload order: %v", errFind)
	}
	if updated.Status != models.OrderStatusCompleted {
		t.Fatalf("expected completed, got %q", updated.Status)
	}

	var sale models.Sale
	if errFind := db.Where("order_id = ?", order.ID).First(&sale).Error; errFind != nil {
		t.Fatalf("find sale: %v", errFind)
	}
	if sale.Total != 45000 || sale.PaymentMethod != "qris" {
		t.Fatalf("unexpected sale: %+v", sale)
	}

	// A settled order cannot be settled again.
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v0/admin/orders/%d/status", order.ID), strings.NewReader(body))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for settled order, got %d", w.Code)
	}
	var saleCount int64
	db.Model(&models.Sale{}).Count(&saleCount)
	if saleCount != 1 {
		t.Fatalf("expected one sale, got %d", saleCount)
	}
}

func TestCancelOrderRecordsNoSale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "admincancel")
	handler := NewOrderHandler(db)

	order := models.Order{OrderNumber: "ord-2", Items: []byte(`[]`), ItemCount: 1, Total: 15000, Status: models.OrderStatusPending}
	if errCreate := db.Create(&order).Error; errCreate != nil {
		t.Fatalf("create order: %v", errCreate)
	}

	router := gin.New()
	router.POST("/v0/admin/orders/:id/status", handler.UpdateStatus)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v0/admin/orders/%d/status", order.ID), strings.NewReader(`{"status":"cancelled"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var saleCount int64
	db.Model(&models.Sale{}).Count(&saleCount)
	if saleCount != 0 {
		t.Fatalf("expected no sale for cancelled order, got %d", saleCount)
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "adminbadstatus")
	handler := NewOrderHandler(db)

	order := models.Order{OrderNumber: "ord-3", Items: []byte(`[]`), ItemCount: 1, Total: 9000, Status: models.OrderStatusPending}
	if errCreate := db.Create(&order).Error; errCreate != nil {
		t.Fatalf("create order: %v", errCreate)
	}

	router := gin.New()
	router.POST("/v0/admin/orders/:id/status", handler.UpdateStatus)

	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown status", fmt.Sprintf("/v0/admin/orders/%d/status", order.ID), `{"status":"shipped"}`, http.StatusBadRequest},
		{"completed without payment", fmt.Sprintf("/v0/admin/orders/%d/status", order.ID), `{"status":"completed"}`, http.StatusBadRequest},
		{"unknown order", "/v0/admin/orders/9999/status", `{"status":"cancelled"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, w.Code)
		}
	}
}

func TestSalesSummaryGroupsByMethod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "salessummary")
	handler := NewSaleHandler(db)

	day := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		{SoldAt: day, Total: 20000, PaymentMethod: "cash"},
		{SoldAt: day.Add(time.Hour), Total: 30000, PaymentMethod: "qris"},
		{SoldAt: day.Add(2 * time.Hour), Total: 10000, PaymentMethod: "qris"},
		{SoldAt: day.AddDate(0, 0, 5), Total: 99000, PaymentMethod: "card"},
	}
	for i := range sales {
		if errCreate := db.Create(&sales[i]).Error; errCreate != nil {
			t.Fatalf("create sale: %v", errCreate)
		}
	}

	router := gin.New()
	router.GET("/v0/admin/sales/summary", handler.Summary)

	req := httptest.NewRequest(http.MethodGet, "/v0/admin/sales/summary?from=2026-08-30&to=2026-08-30", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Count    int64   `json:"count"`
		Total    float64 `json:"total"`
		ByMethod []struct {
			PaymentMethod string  `json:"payment_method"`
			Count         int64   `json:"count"`
			Total         float64 `json:"total"`
		} `json:"by_method"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Count != 3 || resp.Total != 60000 {
		t.Fatalf("expected 3 sales totalling 60000, got %d / %f", resp.Count, resp.Total)
	}
	if len(resp.ByMethod) != 2 {
		t.Fatalf("expected 2 payment methods, got %d", len(resp.ByMethod))
	}
	if resp.ByMethod[1].PaymentMethod != "qris" || resp.ByMethod[1].Total != 40000 {
		t.Fatalf("unexpected qris row: %+v", resp.ByMethod[1])
	}
}
