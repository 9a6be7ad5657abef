package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/loyalty"
	"github.com/kedaikita/kedaikita-server/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventHandler serves event listings and registrations.
type EventHandler struct {
	db     *gorm.DB
	ledger *loyalty.Ledger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(db *gorm.DB, ledger *loyalty.Ledger) *EventHandler {
	return &EventHandler{db: db, ledger: ledger}
}

// List returns upcoming active events with registration counts.
func (h *EventHandler) List(c *gin.Context) {
	var rows []models.Event
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("starts_at ASC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query events failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, event := range rows {
		var registered int64
		if errCount := h.db.WithContext(c.Request.Context()).
			Model(&models.EventRegistration{}).
			Where("event_id = ?", event.ID).
			Count(&registered).Error; errCount != nil {
			registered = 0
		}
		out = append(out, gin.H{
			"id":          event.ID,
			"name":        event.Name,
			"description": event.Description,
			"starts_at":   event.StartsAt,
			"capacity":    event.Capacity,
			"registered":  registered,
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

// Register signs the member up for an event and credits loyalty points.
func (h *EventHandler) Register(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	eventID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil || eventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var event models.Event
	errFind := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND active = ?", eventID, true).
		First(&event).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query event failed"})
		return
	}

	var already int64
	if errCount := h.db.WithContext(c.Request.Context()).
		Model(&models.EventRegistration{}).
		Where("event_id = ? AND member_id = ?", event.ID, memberID).
		Count(&already).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query registrations failed"})
		return
	}
	if already > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "already registered"})
		return
	}

	if event.Capacity > 0 {
		var count int64
		if errCount := h.db.WithContext(c.Request.Context()).
			Model(&models.EventRegistration{}).
			Where("event_id = ?", event.ID).
			Count(&count).Error; errCount != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query registrations failed"})
			return
		}
		if count >= int64(event.Capacity) {
			c.JSON(http.StatusConflict, gin.H{"error": "event is full"})
			return
		}
	}

	registration := models.EventRegistration{EventID: event.ID, MemberID: memberID}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&registration).Error; errCreate != nil {
		// The unique index catches a concurrent duplicate submit.
		c.JSON(http.StatusConflict, gin.H{"error": "already registered"})
		return
	}

	earned := int64(loyalty.PointsPerEventRegistration)
	reason := fmt.Sprintf("Daftar event: %s", event.Name)
	pointsCredited := true
	if errAccrue := h.ledger.Accrue(c.Request.Context(), memberID, earned, reason); errAccrue != nil {
		pointsCredited = false
		log.WithFields(log.Fields{
			"member_id": memberID,
			"event_id":  event.ID,
			"points":    earned,
		}).WithError(errAccrue).Error("point accrual failed after event registration")
	}

	c.JSON(http.StatusCreated, gin.H{
		"event_id":        event.ID,
		"points_earned":   earned,
		"points_credited": pointsCredited,
	})
}
