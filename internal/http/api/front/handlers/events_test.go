package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/loyalty"
	"github.com/kedaikita/kedaikita-server/internal/models"
)

func TestEventRegisterCreditsPoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupFrontDB(t, "events")
	member := seedMember(t, db, 0)
	ledger := loyalty.NewLedger(db, nil)
	handler := NewEventHandler(db, ledger)

	event := models.Event{Name: "Latte Art 101", StartsAt: time.Now().UTC().Add(48 * time.Hour), Capacity: 10, Active: true}
	if errCreate := db.Create(&event).Error; errCreate != nil {
		t.Fatalf("create event: %v", errCreate)
	}

	router := gin.New()
	router.POST("/v0/front/events/:id/register", withMember(member), handler.Register)

	register := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v0/front/events/%d/register", event.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := register(); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	balance, errBalance := ledger.Balance(context.Background(), member.ID)
	if errBalance != nil {
		t.Fatalf("balance: %v", errBalance)
	}
	if balance != loyalty.PointsPerEventRegistration {
		t.Fatalf("expected %d points, got %d", loyalty.PointsPerEventRegistration, balance)
	}

	history, _ := ledger.History(context.Background(), member.ID)
	if len(history) != 1 || history[0].Reason != "Daftar event: Latte Art 101" {
		t.Fatalf("unexpected history: %+v", history)
	}

	// A second submit does not double-credit.
	if w := register(); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate registration, got %d", w.Code)
	}
	balance, _ = ledger.Balance(context.Background(), member.ID)
	if balance != loyalty.PointsPerEventRegistration {
		t.Fatalf("expected balance unchanged, got %d", balance)
	}
}

func TestEventRegisterEnforcesCapacity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupFrontDB(t, "eventcap")
	member := seedMember(t, db, 0)
	other := models.Member{MemberCode: "code-2", Name: "Andi", Email: "andi@example.com", Password: "hash", Active: true}
	if errCreate := db.Create(&other).Error; errCreate != nil {
		t.Fatalf("create member: %v", errCreate)
	}
	handler := NewEventHandler(db, loyalty.NewLedger(db, nil))

	event := models.Event{Name: "Cupping", StartsAt: time.Now().UTC().Add(24 * time.Hour), Capacity: 1, Active: true}
	if errCreate := db.Create(&event).Error; errCreate != nil {
		t.Fatalf("create event: %v", errCreate)
	}
	taken := models.EventRegistration{EventID: event.ID, MemberID: other.ID}
	if errCreate := db.Create(&taken).Error; errCreate != nil {
		t.Fatalf("create registration: %v", errCreate)
	}

	router := gin.New()
	router.POST("/v0/front/events/:id/register", withMember(member), handler.Register)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v0/front/events/%d/register", event.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for full event, got %d", w.Code)
	}
}

func TestEventRegisterUnknownEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupFrontDB(t, "eventmissing")
	member := seedMember(t, db, 0)
	handler := NewEventHandler(db, loyalty.NewLedger(db, nil))

	router := gin.New()
	router.POST("/v0/front/events/:id/register", withMember(member), handler.Register)

	req := httptest.NewRequest(http.MethodPost, "/v0/front/events/9999/register", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
