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

// OrderHandler handles admin views and status transitions over orders.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

// List returns orders, newest first, optionally filtered by status.
func (h *OrderHandler) List(c *gin.Context) {
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	query := h.db.WithContext(c.Request.Context()).Model(&models.Order{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if errCount := query.Count(&total).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var rows []models.Order
	if errFind := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "orders": rows})
}

// updateOrderStatusRequest defines the status transition payload.
type updateOrderStatusRequest struct {
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"` // Required when completing.
}

// UpdateStatus transitions an order. Completing an order also writes the
// sale record in the same transaction.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateOrderStatusRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	status := strings.TrimSpace(body.Status)
	if status != models.OrderStatusCompleted && status != models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be completed or cancelled"})
		return
	}
	paymentMethod := strings.TrimSpace(body.PaymentMethod)
	if status == models.OrderStatusCompleted && paymentMethod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing payment_method"})
		return
	}

	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if errFind := tx.First(&order, id).Error; errFind != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return errFind
		}
		if order.Status != models.OrderStatusPending {
			c.JSON(http.StatusConflict, gin.H{"error": "order already settled"})
			return gorm.ErrInvalidData
		}

		if errUpdate := tx.Model(&order).Update("status", status).Error; errUpdate != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return errUpdate
		}
		if status == models.OrderStatusCompleted {
			sale := models.Sale{
				OrderID:       &order.ID,
				SoldAt:        time.Now().UTC(),
				Total:         order.Total,
				PaymentMethod: paymentMethod,
			}
			if errCreate := tx.Create(&sale).Error; errCreate != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "record sale failed"})
				return errCreate
			}
		}
		return nil
	})
	if errTx != nil {
		// Response already written inside the transaction.
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}
