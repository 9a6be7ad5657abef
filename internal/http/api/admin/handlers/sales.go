package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/util"
	"gorm.io/gorm"
)

// SaleHandler serves the sales report endpoints.
type SaleHandler struct {
	db *gorm.DB
}

// NewSaleHandler constructs a SaleHandler.
func NewSaleHandler(db *gorm.DB) *SaleHandler {
	return &SaleHandler{db: db}
}

// parseDateRange reads optional from/to query params (YYYY-MM-DD) and
// returns the matching half-open UTC window.
func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	const layout = "2006-01-02"
	if raw := c.Query("from"); raw != "" {
		parsed, errParse := time.ParseInLocation(layout, raw, time.UTC)
		if errParse != nil {
			return from, to, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, errParse := time.ParseInLocation(layout, raw, time.UTC)
		if errParse != nil {
			return from, to, false
		}
		// Include the whole end day.
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}

// List returns sales in the requested window, newest first.
func (h *SaleHandler) List(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return
	}
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	query := h.db.WithContext(c.Request.Context()).Model(&models.Sale{})
	if !from.IsZero() {
		query = query.Where("sold_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("sold_at < ?", to)
	}

	var total int64
	if errCount := query.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var rows []models.Sale
	if errFind := query.Order("sold_at DESC, id DESC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "sales": rows})
}

// saleSummaryRow is the aggregate result of the summary query.
type saleSummaryRow struct {
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// Summary returns count and revenue for the requested window, broken
// down by payment method.
func (h *SaleHandler) Summary(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return
	}

	query := h.db.WithContext(c.Request.Context()).Model(&models.Sale{})
	if !from.IsZero() {
		query = query.Where("sold_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("sold_at < ?", to)
	}

	var overall saleSummaryRow
	if errScan := query.Session(&gorm.Session{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Scan(&overall).Error; errScan != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	type methodRow struct {
		PaymentMethod string  `json:"payment_method"`
		Count         int64   `json:"count"`
		Total         float64 `json:"total"`
	}
	var byMethod []methodRow
	if errScan := query.Session(&gorm.Session{}).
		Select("payment_method, COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Group("payment_method").
		Order("payment_method ASC").
		Scan(&byMethod).Error; errScan != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     overall.Count,
		"total":     overall.Total,
		"by_method": byMethod,
	})
}
