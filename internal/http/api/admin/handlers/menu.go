package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	dbutil "github.com/kedaikita/kedaikita-server/internal/db"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/util"
	"gorm.io/gorm"
)

// MenuHandler handles admin operations for menu items.
type MenuHandler struct {
	db *gorm.DB
}

// NewMenuHandler constructs a MenuHandler.
func NewMenuHandler(db *gorm.DB) *MenuHandler {
	return &MenuHandler{db: db}
}

// menuItemRequest defines the payload for creating or updating a menu item.
type menuItemRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Available   *bool    `json:"available"`
}

// List returns menu items with optional name search and pagination.
func (h *MenuHandler) List(c *gin.Context) {
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	query := h.db.WithContext(c.Request.Context()).Model(&models.MenuItem{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+search+"%")
		query = query.Where(dbutil.CaseInsensitiveLikeExpr(h.db, "name"), pattern)
	}

	var total int64
	if errCount := query.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var rows []models.MenuItem
	if errFind := query.Order("category ASC, name ASC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": rows})
}

// Create adds a new menu item.
func (h *MenuHandler) Create(c *gin.Context) {
	var body menuItemRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name"})
		return
	}
	if body.Price == nil || *body.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}

	item := models.MenuItem{
		Name:        name,
		Category:    strings.TrimSpace(body.Category),
		Price:       *body.Price,
		Description: strings.TrimSpace(body.Description),
		Available:   true,
	}
	if body.Available != nil {
		item.Available = *body.Available
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&item).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Update modifies an existing menu item.
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body menuItemRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var item models.MenuItem
	if errFind := h.db.WithContext(c.Request.Context()).First(&item, id).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(body.Name); name != "" {
		updates["name"] = name
	}
	if category := strings.TrimSpace(body.Category); category != "" {
		updates["category"] = category
	}
	if body.Price != nil {
		if *body.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}
		updates["price"] = *body.Price
	}
	if body.Description != "" {
		updates["description"] = strings.TrimSpace(body.Description)
	}
	if body.Available != nil {
		updates["available"] = *body.Available
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&item).Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Delete removes a menu item.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
