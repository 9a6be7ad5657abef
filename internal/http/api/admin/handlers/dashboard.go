package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"gorm.io/gorm"
)

// DashboardHandler serves the back-office overview numbers.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Overview returns today's headline numbers plus the low-stock list.
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now().UTC()
	dayStart := now.Truncate(24 * time.Hour)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var pendingOrders int64
	if errCount := h.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&pendingOrders).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	type revenueRow struct {
		Count int64
		Total float64
	}
	var todaySales revenueRow
	if errScan := h.db.WithContext(ctx).Model(&models.Sale{}).
		Where("sold_at >= ? AND sold_at < ?", dayStart, dayEnd).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Scan(&todaySales).Error; errScan != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	var memberCount int64
	if errCount := h.db.WithContext(ctx).Model(&models.Member{}).
		Where("active = ?", true).
		Count(&memberCount).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	var upcomingReservations int64
	if errCount := h.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("status = ? AND reserved_at >= ?", models.ReservationStatusBooked, now).
		Count(&upcomingReservations).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	var lowStock []models.StockItem
	if errFind := h.db.WithContext(ctx).
		Where("quantity <= min_level").
		Order("name ASC").
		Find(&lowStock).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pending_orders":        pendingOrders,
		"today_sales_count":     todaySales.Count,
		"today_sales_total":     todaySales.Total,
		"active_members":        memberCount,
		"upcoming_reservations": upcomingReservations,
		"low_stock":             lowStock,
	})
}
