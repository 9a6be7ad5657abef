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

// EventHandler handles admin operations for events.
type EventHandler struct {
	db *gorm.DB
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{db: db}
}

// eventRequest defines the payload for creating or updating an event.
type eventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartsAt    string `json:"starts_at"` // RFC 3339.
	Capacity    *int   `json:"capacity"`
	Active      *bool  `json:"active"`
}

// List returns events, soonest first.
func (h *EventHandler) List(c *gin.Context) {
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	var rows []models.Event
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("starts_at ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": rows})
}

// Create adds an event.
func (h *EventHandler) Create(c *gin.Context) {
	var body eventRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing name"})
		return
	}
	startsAt, errParse := time.Parse(time.RFC3339, strings.TrimSpace(body.StartsAt))
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid starts_at"})
		return
	}

	event := models.Event{
		Name:        name,
		Description: strings.TrimSpace(body.Description),
		StartsAt:    startsAt.UTC(),
		Active:      true,
	}
	if body.Capacity != nil {
		if *body.Capacity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must not be negative"})
			return
		}
		event.Capacity = *body.Capacity
	}
	if body.Active != nil {
		event.Active = *body.Active
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&event).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// Update modifies an event.
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body eventRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var event models.Event
	if errFind := h.db.WithContext(c.Request.Context()).First(&event, id).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(body.Name); name != "" {
		updates["name"] = name
	}
	if body.Description != "" {
		updates["description"] = strings.TrimSpace(body.Description)
	}
	if raw := strings.TrimSpace(body.StartsAt); raw != "" {
		startsAt, errParse := time.Parse(time.RFC3339, raw)
		if errParse != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid starts_at"})
			return
		}
		updates["starts_at"] = startsAt.UTC()
	}
	if body.Capacity != nil {
		if *body.Capacity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must not be negative"})
			return
		}
		updates["capacity"] = *body.Capacity
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&event).Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// Delete removes an event.
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Delete(&models.Event{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Registrations lists who signed up for an event.
func (h *EventHandler) Registrations(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var rows []models.EventRegistration
	if errFind := h.db.WithContext(c.Request.Context()).
		Preload("Member").
		Where("event_id = ?", id).
		Order("created_at ASC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		entry := gin.H{
			"member_id":     row.MemberID,
			"registered_at": row.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if row.Member != nil {
			entry["member_name"] = row.Member.Name
			entry["member_email"] = row.Member.Email
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"registrations": out})
}
