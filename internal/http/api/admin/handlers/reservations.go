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

// ReservationHandler handles reservation management for staff.
type ReservationHandler struct {
	db *gorm.DB
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(db *gorm.DB) *ReservationHandler {
	return &ReservationHandler{db: db}
}

// List returns reservations ordered by reserved time. Defaults to the
// upcoming ones; pass status to filter, or date (YYYY-MM-DD) for a day.
func (h *ReservationHandler) List(c *gin.Context) {
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	query := h.db.WithContext(c.Request.Context()).Model(&models.Reservation{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		day, errParse := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if errParse != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		query = query.Where("reserved_at >= ? AND reserved_at < ?", day, day.AddDate(0, 0, 1))
	}

	var total int64
	if errCount := query.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var rows []models.Reservation
	if errFind := query.Order("reserved_at ASC, id ASC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "reservations": rows})
}

// updateReservationRequest defines the reservation transition payload.
type updateReservationRequest struct {
	Status  string `json:"status"`
	TableNo string `json:"table_no"` // Optional, set when seating.
}

// UpdateStatus transitions a reservation and optionally assigns a table.
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateReservationRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	status := strings.TrimSpace(body.Status)
	if status != models.ReservationStatusSeated && status != models.ReservationStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be seated or cancelled"})
		return
	}

	var reservation models.Reservation
	if errFind := h.db.WithContext(c.Request.Context()).First(&reservation, id).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if reservation.Status != models.ReservationStatusBooked {
		c.JSON(http.StatusConflict, gin.H{"error": "reservation already settled"})
		return
	}

	updates := map[string]any{"status": status}
	if tableNo := strings.TrimSpace(body.TableNo); tableNo != "" {
		updates["table_no"] = tableNo
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&reservation).Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}
