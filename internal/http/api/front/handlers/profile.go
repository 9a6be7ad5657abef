package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/loyalty"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProfileHandler serves the member profile endpoints.
type ProfileHandler struct {
	db     *gorm.DB
	ledger *loyalty.Ledger
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(db *gorm.DB, ledger *loyalty.Ledger) *ProfileHandler {
	return &ProfileHandler{db: db, ledger: ledger}
}

// Get returns the member profile with balance and tier.
func (h *ProfileHandler) Get(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var member models.Member
	if errFind := h.db.WithContext(c.Request.Context()).First(&member, memberID).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query member failed"})
		return
	}

	balance, errBalance := h.ledger.Balance(c.Request.Context(), memberID)
	if errBalance != nil {
		log.WithField("member_id", memberID).WithError(errBalance).Warn("balance read failed, showing zero")
		balance = 0
	}
	tier, progress := loyalty.TierOf(balance)

	c.JSON(http.StatusOK, gin.H{
		"id":          member.ID,
		"member_code": member.MemberCode,
		"name":        member.Name,
		"email":       member.Email,
		"phone":       member.Phone,
		"joined_at":   member.JoinedAt.UTC().Format("2006-01-02"),
		"points":      balance,
		"tier": gin.H{
			"name":     tier.Name,
			"benefits": tier.Benefits,
		},
		"progress_to_next_tier": progress,
	})
}

// changePasswordRequest defines the request body for a password change.
type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword updates the member's password after verifying the old one.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body changePasswordRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	newPassword := strings.TrimSpace(body.NewPassword)
	if len(newPassword) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}

	var member models.Member
	if errFind := h.db.WithContext(c.Request.Context()).First(&member, memberID).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query member failed"})
		return
	}
	if !security.CheckPassword(member.Password, strings.TrimSpace(body.OldPassword)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	}

	hash, errHash := security.HashPassword(newPassword)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash password failed"})
		return
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&member).
		Update("password", hash).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update password failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
