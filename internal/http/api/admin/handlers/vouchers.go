package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/util"
	"gorm.io/gorm"
)

// VoucherHandler manages the voucher catalog and redeemed vouchers.
type VoucherHandler struct {
	db *gorm.DB
}

// NewVoucherHandler constructs a VoucherHandler.
func NewVoucherHandler(db *gorm.DB) *VoucherHandler {
	return &VoucherHandler{db: db}
}

// List returns the full voucher catalog, inactive entries included.
func (h *VoucherHandler) List(c *gin.Context) {
	var rows []models.Voucher
	if errFind := h.db.WithContext(c.Request.Context()).Order("id ASC").Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": rows})
}

// voucherRequest defines the voucher create and update payload.
type voucherRequest struct {
	Title          string `json:"title"`
	RequiredPoints *int64 `json:"required_points"`
	ExpiryDays     *int   `json:"expiry_days"`
	Active         *bool  `json:"active"`
}

// Create adds a voucher to the catalog.
func (h *VoucherHandler) Create(c *gin.Context) {
	var body voucherRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	title := strings.TrimSpace(body.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title"})
		return
	}
	if body.RequiredPoints == nil || *body.RequiredPoints <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "required_points must be positive"})
		return
	}
	if body.ExpiryDays == nil || *body.ExpiryDays <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_days must be positive"})
		return
	}

	voucher := models.Voucher{
		Title:          title,
		RequiredPoints: *body.RequiredPoints,
		ExpiryDays:     *body.ExpiryDays,
		Active:         true,
	}
	if body.Active != nil {
		voucher.Active = *body.Active
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&voucher).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, voucher)
}

// Update applies a partial update to a voucher.
func (h *VoucherHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body voucherRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var voucher models.Voucher
	if errFind := h.db.WithContext(c.Request.Context()).First(&voucher, id).Error; errFind != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "voucher not found"})
		return
	}

	updates := map[string]any{}
	if title := strings.TrimSpace(body.Title); title != "" {
		updates["title"] = title
	}
	if body.RequiredPoints != nil {
		if *body.RequiredPoints <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "required_points must be positive"})
			return
		}
		updates["required_points"] = *body.RequiredPoints
	}
	if body.ExpiryDays != nil {
		if *body.ExpiryDays <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_days must be positive"})
			return
		}
		updates["expiry_days"] = *body.ExpiryDays
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, voucher)
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&voucher).Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, voucher)
}

// Delete deactivates a voucher. Redeemed instances keep their snapshot, so
// a hard delete would only orphan history; catalog rows are soft-disabled.
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Voucher{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "voucher not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "active": false})
}

// Redeemed lists redeemed vouchers across all members, newest first,
// optionally filtered by status.
func (h *VoucherHandler) Redeemed(c *gin.Context) {
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	query := h.db.WithContext(c.Request.Context()).Model(&models.RedeemedVoucher{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if errCount := query.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var rows []models.RedeemedVoucher
	if errFind := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "redeemed_vouchers": rows})
}
