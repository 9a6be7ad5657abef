package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"gorm.io/gorm"
)

// ReservationHandler handles storefront table bookings.
type ReservationHandler struct {
	db *gorm.DB
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(db *gorm.DB) *ReservationHandler {
	return &ReservationHandler{db: db}
}

// createReservationRequest defines the request body for a booking.
type createReservationRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	PartySize  int    `json:"party_size"`
	ReservedAt string `json:"reserved_at"` // RFC 3339.
}

// Create books a table for the member.
func (h *ReservationHandler) Create(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body createReservationRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = getMemberName(c)
	}
	if body.PartySize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "party_size must be at least 1"})
		return
	}
	reservedAt, errParse := time.Parse(time.RFC3339, strings.TrimSpace(body.ReservedAt))
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reserved_at"})
		return
	}
	if reservedAt.Before(time.Now().UTC()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reserved_at is in the past"})
		return
	}

	reservation := models.Reservation{
		Name:       name,
		Phone:      strings.TrimSpace(body.Phone),
		PartySize:  body.PartySize,
		ReservedAt: reservedAt.UTC(),
		MemberID:   &memberID,
		Status:     models.ReservationStatusBooked,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&reservation).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create reservation failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          reservation.ID,
		"name":        reservation.Name,
		"party_size":  reservation.PartySize,
		"reserved_at": reservation.ReservedAt,
		"status":      reservation.Status,
	})
}

// List returns the member's own reservations, soonest first.
func (h *ReservationHandler) List(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var rows []models.Reservation
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("member_id = ?", memberID).
		Order("reserved_at ASC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query reservations failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":          row.ID,
			"name":        row.Name,
			"party_size":  row.PartySize,
			"reserved_at": row.ReservedAt,
			"table_no":    row.TableNo,
			"status":      row.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out})
}
