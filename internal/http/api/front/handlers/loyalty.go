package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/loyalty"
	log "github.com/sirupsen/logrus"
)

// LoyaltyHandler exposes the member-facing loyalty endpoints over the Ledger.
type LoyaltyHandler struct {
	ledger *loyalty.Ledger
}

// NewLoyaltyHandler constructs a LoyaltyHandler.
func NewLoyaltyHandler(ledger *loyalty.Ledger) *LoyaltyHandler {
	return &LoyaltyHandler{ledger: ledger}
}

// Points returns the member's balance, tier and progress toward the next
// tier. A failed balance read degrades to zero for display; the failure is
// logged, not surfaced.
func (h *LoyaltyHandler) Points(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	balance, errBalance := h.ledger.Balance(c.Request.Context(), memberID)
	if errBalance != nil {
		log.WithField("member_id", memberID).WithError(errBalance).Warn("balance read failed, showing zero")
		balance = 0
	}
	tier, progress := loyalty.TierOf(balance)
	c.JSON(http.StatusOK, gin.H{
		"points": balance,
		"tier": gin.H{
			"name":     tier.Name,
			"benefits": tier.Benefits,
		},
		"progress_to_next_tier": progress,
	})
}

// History returns the member's point history, newest first. Read failures
// degrade to an empty list.
func (h *LoyaltyHandler) History(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rows, errFind := h.ledger.History(c.Request.Context(), memberID)
	if errFind != nil {
		log.WithField("member_id", memberID).WithError(errFind).Warn("history read failed, showing empty")
		rows = nil
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"delta":      row.Delta,
			"reason":     row.Reason,
			"created_at": row.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

// RedeemedVouchers returns the member's redeemed vouchers, newest expiry
// first. Read failures degrade to an empty list.
func (h *LoyaltyHandler) RedeemedVouchers(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rows, errFind := h.ledger.RedeemedVouchers(c.Request.Context(), memberID)
	if errFind != nil {
		log.WithField("member_id", memberID).WithError(errFind).Warn("redeemed vouchers read failed, showing empty")
		rows = nil
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"voucher_title": row.VoucherTitle,
			"expiry_date":   row.ExpiryDate.UTC().Format("2006-01-02"),
			"status":        row.Status,
			"redeemed_at":   row.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"redeemed_vouchers": out})
}

// AvailableVouchers returns the active voucher catalog.
func (h *LoyaltyHandler) AvailableVouchers(c *gin.Context) {
	rows, errFind := h.ledger.AvailableVouchers(c.Request.Context())
	if errFind != nil {
		log.WithError(errFind).Warn("voucher catalog read failed, showing empty")
		rows = nil
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":              row.ID,
			"title":           row.Title,
			"required_points": row.RequiredPoints,
			"expiry_days":     row.ExpiryDays,
		})
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": out})
}

// Redeem exchanges the member's points for a voucher.
func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	voucherID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil || voucherID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid voucher id"})
		return
	}

	errRedeem := h.ledger.Redeem(c.Request.Context(), memberID, getMemberName(c), voucherID)
	switch {
	case errRedeem == nil:
		c.JSON(http.StatusOK, gin.H{"redeemed": true})
	case errors.Is(errRedeem, loyalty.ErrInsufficientPoints):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient points"})
	case errors.Is(errRedeem, loyalty.ErrVoucherNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "voucher not found"})
	case errors.Is(errRedeem, loyalty.ErrRedeemInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "redemption in progress, try again"})
	default:
		// Details are in the log; the client gets a generic message.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed, try again"})
	}
}
