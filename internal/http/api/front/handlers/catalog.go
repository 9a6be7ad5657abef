package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"gorm.io/gorm"
)

// CatalogHandler serves the public menu and promotion listings.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// menuItemDTO defines the public menu item payload.
type menuItemDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Menu lists available menu items, optionally filtered by category.
func (h *CatalogHandler) Menu(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Where("available = ?", true).
		Order("category ASC, name ASC")
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	if errFind := query.Find(&items).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query menu failed"})
		return
	}

	out := make([]menuItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, menuItemDTO{
			ID:          item.ID,
			Name:        item.Name,
			Category:    item.Category,
			Price:       item.Price,
			Description: item.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"menu": out})
}

// Promotions lists promotions that are active and within their window.
func (h *CatalogHandler) Promotions(c *gin.Context) {
	now := time.Now().UTC()
	var rows []models.Promotion
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("id DESC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query promotions failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, p := range rows {
		out = append(out, gin.H{
			"id":           p.ID,
			"title":        p.Title,
			"description":  p.Description,
			"discount_pct": p.DiscountPct,
			"discount_amt": p.DiscountAmt,
			"starts_at":    p.StartsAt,
			"ends_at":      p.EndsAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"promotions": out})
}
