package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/util"
	"gorm.io/gorm"
)

// StockHandler handles admin operations for stock items.
type StockHandler struct {
	db *gorm.DB
}

// NewStockHandler constructs a StockHandler.
func NewStockHandler(db *gorm.DB) *StockHandler {
	return &StockHandler{db: db}
}

// stockItemRequest defines the payload for creating or updating stock.
type stockItemRequest struct {
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`
	Quantity *float64 `json:"quantity"`
	MinLevel *float64 `json:"min_level"`
}

// List returns stock items; low=true filters to items at or below MinLevel.
func (h *StockHandler) List(c *gin.Context) {
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	query := h.db.WithContext(c.Request.Context()).Model(&models.StockItem{})
	if c.Query("low") == "true" {
		query = query.Where("quantity <= min_level")
	}

	var rows []models.StockItem
	if errFind := query.Order("name ASC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// Create adds a stock item.
func (h *StockHandler) Create(c *gin.Context) {
	var body stockItemRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(body.Name)
	unit := strings.TrimSpace(body.Unit)
	if name == "" || unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name or unit"})
		return
	}

	item := models.StockItem{Name: name, Unit: unit}
	if body.Quantity != nil {
		if *body.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
			return
		}
		item.Quantity = *body.Quantity
	}
	if body.MinLevel != nil {
		item.MinLevel = *body.MinLevel
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&item).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Update modifies a stock item.
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body stockItemRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var item models.StockItem
	if errFind := h.db.WithContext(c.Request.Context()).First(&item, id).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock item not found"})
		return
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(body.Name); name != "" {
		updates["name"] = name
	}
	if unit := strings.TrimSpace(body.Unit); unit != "" {
		updates["unit"] = unit
	}
	if body.Quantity != nil {
		if *body.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
			return
		}
		updates["quantity"] = *body.Quantity
	}
	if body.MinLevel != nil {
		updates["min_level"] = *body.MinLevel
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

// Delete removes a stock item.
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.StockItem{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
