package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/util"
	"gorm.io/gorm"
)

// PromotionHandler handles admin operations for promotions.
type PromotionHandler struct {
	db *gorm.DB
}

// NewPromotionHandler constructs a PromotionHandler.
func NewPromotionHandler(db *gorm.DB) *PromotionHandler {
	return &PromotionHandler{db: db}
}

// promotionRequest defines the payload for creating or updating a promotion.
type promotionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DiscountPct *float64 `json:"discount_pct"`
	DiscountAmt *float64 `json:"discount_amt"`
	StartsAt    string   `json:"starts_at"` // RFC 3339, empty clears.
	EndsAt      string   `json:"ends_at"`   // RFC 3339, empty clears.
	Active      *bool    `json:"active"`
}

// parseWindow parses the optional campaign window fields.
func (b promotionRequest) parseWindow() (startsAt, endsAt *time.Time, err error) {
	if raw := strings.TrimSpace(b.StartsAt); raw != "" {
		parsed, errParse := time.Parse(time.RFC3339, raw)
		if errParse != nil {
			return nil, nil, errParse
		}
		utc := parsed.UTC()
		startsAt = &utc
	}
	if raw := strings.TrimSpace(b.EndsAt); raw != "" {
		parsed, errParse := time.Parse(time.RFC3339, raw)
		if errParse != nil {
			return nil, nil, errParse
		}
		utc := parsed.UTC()
		endsAt = &utc
	}
	return startsAt, endsAt, nil
}

// List returns promotions, newest first.
func (h *PromotionHandler) List(c *gin.Context) {
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	var rows []models.Promotion
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotions": rows})
}

// Create adds a promotion.
func (h *PromotionHandler) Create(c *gin.Context) {
	var body promotionRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title"})
		return
	}
	startsAt, endsAt, errWindow := body.parseWindow()
	if errWindow != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign window"})
		return
	}

	promo := models.Promotion{
		Title:       title,
		Description: strings.TrimSpace(body.Description),
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Active:      true,
	}
	if body.DiscountPct != nil {
		promo.DiscountPct = *body.DiscountPct
	}
	if body.DiscountAmt != nil {
		promo.DiscountAmt = *body.DiscountAmt
	}
	if body.Active != nil {
		promo.Active = *body.Active
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&promo).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"promotion": promo})
}

// Update modifies a promotion.
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body promotionRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var promo models.Promotion
	if errFind := h.db.WithContext(c.Request.Context()).First(&promo, id).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "promotion not found"})
		return
	}
	startsAt, endsAt, errWindow := body.parseWindow()
	if errWindow != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign window"})
		return
	}

	updates := map[string]any{}
	if title := strings.TrimSpace(body.Title); title != "" {
		updates["title"] = title
	}
	if body.Description != "" {
		updates["description"] = strings.TrimSpace(body.Description)
	}
	if body.DiscountPct != nil {
		updates["discount_pct"] = *body.DiscountPct
	}
	if body.DiscountAmt != nil {
		updates["discount_amt"] = *body.DiscountAmt
	}
	if startsAt != nil {
		updates["starts_at"] = startsAt
	}
	if endsAt != nil {
		updates["ends_at"] = endsAt
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&promo).Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotion": promo})
}

// Delete removes a promotion.
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.Promotion{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "promotion not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
