package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	dbutil "github.com/kedaikita/kedaikita-server/internal/db"
	"github.com/kedaikita/kedaikita-server/internal/loyalty"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/util"
	"gorm.io/gorm"
)

// MemberHandler handles admin views over member accounts.
type MemberHandler struct {
	db *gorm.DB
}

// NewMemberHandler constructs a MemberHandler.
func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{db: db}
}

// memberDTO defines the member list payload.
type memberDTO struct {
	ID         uint64 `json:"id"`
	MemberCode string `json:"member_code"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Active     bool   `json:"active"`
	JoinedAt   string `json:"joined_at"`
}

// List returns members with optional name/email search.
func (h *MemberHandler) List(c *gin.Context) {
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	query := h.db.WithContext(c.Request.Context()).Model(&models.Member{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+search+"%")
		nameExpr := dbutil.CaseInsensitiveLikeExpr(h.db, "name")
		emailExpr := dbutil.CaseInsensitiveLikeExpr(h.db, "email")
		query = query.Where(nameExpr+" OR "+emailExpr, pattern, pattern)
	}

	var total int64
	if errCount := query.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var rows []models.Member
	if errFind := query.Order("joined_at DESC, id DESC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	out := make([]memberDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberDTO{
			ID:         row.ID,
			MemberCode: row.MemberCode,
			Name:       row.Name,
			Email:      row.Email,
			Phone:      row.Phone,
			Active:     row.Active,
			JoinedAt:   row.JoinedAt.UTC().Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "members": out})
}

// Get returns one member with their balance and tier.
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var member models.Member
	if errFind := h.db.WithContext(c.Request.Context()).First(&member, id).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}

	var balance models.PointBalance
	points := int64(0)
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("member_id = ?", member.ID).
		First(&balance).Error; errFind == nil {
		points = balance.Points
	}
	tier, progress := loyalty.TierOf(points)

	c.JSON(http.StatusOK, gin.H{
		"id":          member.ID,
		"member_code": member.MemberCode,
		"name":        member.Name,
		"email":       member.Email,
		"phone":       member.Phone,
		"active":      member.Active,
		"joined_at":   member.JoinedAt.UTC().Format("2006-01-02"),
		"points":      points,
		"tier":        tier.Name,
		"progress_to_next_tier": progress,
	})
}

// ToggleActive flips a member's active flag.
func (h *MemberHandler) ToggleActive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var member models.Member
	if errFind := h.db.WithContext(c.Request.Context()).First(&member, id).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&member).
		Update("active", !member.Active).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": member.ID, "active": !member.Active})
}
