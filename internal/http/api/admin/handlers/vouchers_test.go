package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/models"
)

func TestVoucherCreateValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "voucherscreate")
	handler := NewVoucherHandler(db)

	router := gin.New()
	router.POST("/v0/admin/vouchers", handler.Create)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"title":"Kopi Gratis","required_points":50,"expiry_days":30}`, http.StatusOK},
		{"missing title", `{"required_points":50,"expiry_days":30}`, http.StatusBadRequest},
		{"zero cost", `{"title":"Gratis","required_points":0,"expiry_days":30}`, http.StatusBadRequest},
		{"negative expiry", `{"title":"Gratis","required_points":10,"expiry_days":-1}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/v0/admin/vouchers", strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestVoucherDeleteDeactivates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "vouchersdelete")
	handler := NewVoucherHandler(db)

	voucher := models.Voucher{Title: "Diskon", RequiredPoints: 25, ExpiryDays: 14, Active: true}
	if errCreate := db.Create(&voucher).Error; errCreate != nil {
		t.Fatalf("create voucher: %v", errCreate)
	}

	router := gin.New()
	router.DELETE("/v0/admin/vouchers/:id", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/v0/admin/vouchers/%d", voucher.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var reloaded models.Voucher
	if errFind := db.First(&reloaded, voucher.ID).Error; errFind != nil {
		t.Fatalf("expected voucher row to remain: %v", errFind)
	}
	if reloaded.Active {
		t.Fatal("expected voucher deactivated")
	}

	req = httptest.NewRequest(http.MethodDelete, "/v0/admin/vouchers/9999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown voucher, got %d", w.Code)
	}
}

func TestRedeemedListFiltersByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "redeemedlist")
	handler := NewVoucherHandler(db)

	member := models.Member{MemberCode: "code-1", Name: "Sari", Email: "sari@example.com", Password: "hash", Active: true}
	if errCreate := db.Create(&member).Error; errCreate != nil {
		t.Fatalf("create member: %v", errCreate)
	}
	rows := []models.RedeemedVoucher{
		{MemberID: member.ID, MemberName: "Sari", VoucherTitle: "A", Status: models.VoucherStatusActive},
		{MemberID: member.ID, MemberName: "Sari", VoucherTitle: "B", Status: models.VoucherStatusUsed},
	}
	for i := range rows {
		if errCreate := db.Create(&rows[i]).Error; errCreate != nil {
			t.Fatalf("create redeemed voucher: %v", errCreate)
		}
	}

	router := gin.New()
	router.GET("/v0/admin/vouchers/redeemed", handler.Redeemed)

	req := httptest.NewRequest(http.MethodGet, "/v0/admin/vouchers/redeemed?status=used", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Total    int64 `json:"total"`
		Redeemed []struct {
			VoucherTitle string `json:"VoucherTitle"`
		} `json:"redeemed_vouchers"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 used voucher, got %d", resp.Total)
	}
}
