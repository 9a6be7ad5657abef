package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/settings"
	"gorm.io/gorm"
)

// SettingsHandler manages the store profile.
type SettingsHandler struct {
	db *gorm.DB
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetProfile returns the current store profile.
func (h *SettingsHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, settings.Profile())
}

// UpdateProfile saves the store profile and refreshes the snapshot.
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	var body settings.StoreProfile
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name"})
		return
	}
	if strings.TrimSpace(body.Currency) == "" {
		body.Currency = "IDR"
	}

	if errSave := settings.SaveProfile(c.Request.Context(), h.db, body); errSave != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, settings.Profile())
}
