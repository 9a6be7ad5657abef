package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/config"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/security"
	"gorm.io/gorm"
)

func seedAdmin(t *testing.T, db *gorm.DB, totpSecret string) models.Admin {
	t.Helper()
	hash, errHash := security.HashPassword("admin123!")
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	admin := models.Admin{
		Username:   "owner",
		Password:   hash,
		Role:       models.AdminRoleOwner,
		Active:     true,
		TOTPSecret: totpSecret,
	}
	if errCreate := db.Create(&admin).Error; errCreate != nil {
		t.Fatalf("create admin: %v", errCreate)
	}
	return admin
}

func adminTestJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", AdminExpiry: 3600000000000}
}

func TestAdminLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "adminlogin")
	seedAdmin(t, db, "")
	handler := NewAuthHandler(db, adminTestJWT())

	router := gin.New()
	router.POST("/v0/admin/login", handler.Login)

	req := httptest.NewRequest(http.MethodPost, "/v0/admin/login", strings.NewReader(`{"username":"owner","password":"admin123!"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	claims, errParse := security.ParseAdminToken("test-secret", resp.Token)
	if errParse != nil {
		t.Fatalf("parse token: %v", errParse)
	}
	if claims.Username != "owner" {
		t.Fatalf("expected owner claims, got %q", claims.Username)
	}

	req = httptest.NewRequest(http.MethodPost, "/v0/admin/login", strings.NewReader(`{"username":"owner","password":"salah"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}
}

func TestAdminLoginRequiresTOTPWhenEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "admintotp")
	seedAdmin(t, db, "JBSWY3DPEHPK3PXP")
	handler := NewAuthHandler(db, adminTestJWT())

	router := gin.New()
	router.POST("/v0/admin/login", handler.Login)

	req := httptest.NewRequest(http.MethodPost, "/v0/admin/login", strings.NewReader(`{"username":"owner","password":"admin123!"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without totp code, got %d", w.Code)
	}
	var resp struct {
		TOTPRequired bool `json:"totp_required"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if !resp.TOTPRequired {
		t.Fatal("expected totp_required flag")
	}

	req = httptest.NewRequest(http.MethodPost, "/v0/admin/login", strings.NewReader(`{"username":"owner","password":"admin123!","totp_code":"000000"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong totp code, got %d", w.Code)
	}
}

func TestAdminChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAdminDB(t, "adminpw")
	admin := seedAdmin(t, db, "")
	handler := NewAuthHandler(db, adminTestJWT())

	router := gin.New()
	router.PUT("/v0/admin/password", func(c *gin.Context) {
		c.Set("adminID", admin.ID)
		c.Next()
	}, handler.ChangePassword)

	req := httptest.NewRequest(http.MethodPut, "/v0/admin/password", strings.NewReader(`{"old_password":"admin123!","new_password":"barubanget9"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var reloaded models.Admin
	if errFind := db.First(&reloaded, admin.ID).Error; errFind != nil {
		t.Fatalf("reload admin: %v", errFind)
	}
	if !security.CheckPassword(reloaded.Password, "barubanget9") {
		t.Fatal("expected new password to verify")
	}
	if security.CheckPassword(reloaded.Password, "admin123!") {
		t.Fatal("expected old password to stop verifying")
	}
}
