package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/loyalty"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"gorm.io/gorm"
)

func seedMember(t *testing.T, db *gorm.DB, points int64) models.Member {
	t.Helper()
	member := models.Member{
		MemberCode: "code-1",
		Name:       "Sari",
		Email:      "sari@example.com",
		Password:   "hash",
		Active:     true,
	}
	if errCreate := db.Create(&member).Error; errCreate != nil {
		t.Fatalf("create member: %v", errCreate)
	}
	if points > 0 {
		balance := models.PointBalance{MemberID: member.ID, Points: points}
		if errCreate := db.Create(&balance).Error; errCreate != nil {
			t.Fatalf("create balance: %v", errCreate)
		}
	}
	return member
}

// withMember injects the auth middleware outputs for the test member.
func withMember(member models.Member) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("memberID", member.ID)
		c.Set("memberName", member.Name)
		c.Next()
	}
}

func TestPointsReturnsBalanceAndTier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupFrontDB(t, "points")
	member := seedMember(t, db, 150)
	handler := NewLoyaltyHandler(loyalty.NewLedger(db, nil))

	router := gin.New()
	router.GET("/v0/front/loyalty/points", withMember(member), handler.Points)

	req := httptest.NewRequest(http.MethodGet, "/v0/front/loyalty/points", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Points int64 `json:"points"`
		Tier   struct {
			Name string `json:"name"`
		} `json:"tier"`
		Progress float64 `json:"progress_to_next_tier"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Points != 150 {
		t.Fatalf("expected 150 points, got %d", resp.Points)
	}
	if resp.Tier.Name != "Silver" {
		t.Fatalf("expected Silver tier, got %q", resp.Tier.Name)
	}
	if resp.Progress <= 0 || resp.Progress >= 100 {
		t.Fatalf("expected progress in (0,100), got %f", resp.Progress)
	}
}

func TestRedeemEndpointStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupFrontDB(t, "redeem")
	member := seedMember(t, db, 40)
	handler := NewLoyaltyHandler(loyalty.NewLedger(db, nil))

	voucher := models.Voucher{Title: "Diskon 10%", RequiredPoints: 25, ExpiryDays: 14, Active: true}
	if errCreate := db.Create(&voucher).Error; errCreate != nil {
		t.Fatalf("create voucher: %v", errCreate)
	}

	router := gin.New()
	router.POST("/v0/front/loyalty/vouchers/:id/redeem", withMember(member), handler.Redeem)

	redeem := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v0/front/loyalty/vouchers/%s/redeem", id), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := redeem("abc"); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id: expected 400, got %d", w.Code)
	}
	if w := redeem("9999"); w.Code != http.StatusNotFound {
		t.Fatalf("unknown voucher: expected 404, got %d", w.Code)
	}
	if w := redeem(fmt.Sprint(voucher.ID)); w.Code != http.StatusOK {
		t.Fatalf("redeem: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	// 15 points remain, below the 25 point cost.
	if w := redeem(fmt.Sprint(voucher.ID)); w.Code != http.StatusBadRequest {
		t.Fatalf("insufficient: expected 400, got %d", w.Code)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupFrontDB(t, "history")
	member := seedMember(t, db, 0)
	ledger := loyalty.NewLedger(db, nil)
	handler := NewLoyaltyHandler(ledger)

	for i, points := range []int64{2, 4, 6} {
		if errAccrue := ledger.Accrue(context.Background(), member.ID, points, fmt.Sprintf("Order %d item", i+1)); errAccrue != nil {
			t.Fatalf("accrue: %v", errAccrue)
		}
	}

	router := gin.New()
	router.GET("/v0/front/loyalty/history", withMember(member), handler.History)

	req := httptest.NewRequest(http.MethodGet, "/v0/front/loyalty/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		History []struct {
			Delta int64 `json:"delta"`
		} `json:"history"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if len(resp.History) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(resp.History))
	}
	if resp.History[0].Delta != 6 || resp.History[2].Delta != 2 {
		t.Fatalf("expected newest first [6,4,2], got [%d,...,%d]", resp.History[0].Delta, resp.History[2].Delta)
	}
}

func TestAvailableVouchersHidesInactive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupFrontDB(t, "catalog")
	handler := NewLoyaltyHandler(loyalty.NewLedger(db, nil))

	active := models.Voucher{Title: "Aktif", RequiredPoints: 10, ExpiryDays: 7, Active: true}
	inactive := models.Voucher{Title: "Nonaktif", RequiredPoints: 10, ExpiryDays: 7, Active: false}
	if errCreate := db.Create(&active).Error; errCreate != nil {
		t.Fatalf("create voucher: %v", errCreate)
	}
	if errCreate := db.Create(&inactive).Error; errCreate != nil {
		t.Fatalf("create voucher: %v", errCreate)
	}

	router := gin.New()
	router.GET("/v0/front/loyalty/vouchers", handler.AvailableVouchers)

	req := httptest.NewRequest(http.MethodGet, "/v0/front/loyalty/vouchers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Vouchers []struct {
			Title string `json:"title"`
		} `json:"vouchers"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if len(resp.Vouchers) != 1 || resp.Vouchers[0].Title != "Aktif" {
		t.Fatalf("expected only the active voucher, got %+v", resp.Vouchers)
	}
}
