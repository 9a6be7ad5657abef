package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kedaikita/kedaikita-server/internal/loyalty"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/util"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderHandler handles storefront order placement and history.
type OrderHandler struct {
	db     *gorm.DB
	ledger *loyalty.Ledger
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(db *gorm.DB, ledger *loyalty.Ledger) *OrderHandler {
	return &OrderHandler{db: db, ledger: ledger}
}

// createOrderRequest defines the request body for placing an order.
type createOrderRequest struct {
	Items []struct {
		MenuItemID uint64 `json:"menu_item_id"`
		Quantity   int    `json:"quantity"`
	} `json:"items"`
}

// Create places an order from the cart and credits loyalty points.
func (h *OrderHandler) Create(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body createOrderRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(body.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order has no items"})
		return
	}

	lines := make([]models.OrderItem, 0, len(body.Items))
	itemCount := 0
	total := 0.0
	for _, line := range body.Items {
		if line.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}
		var item models.MenuItem
		errFind := h.db.WithContext(c.Request.Context()).
			Where("id = ? AND available = ?", line.MenuItemID, true).
			First(&item).Error
		if errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("menu item %d not available", line.MenuItemID)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query menu failed"})
			return
		}
		lines = append(lines, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   line.Quantity,
		})
		itemCount += line.Quantity
		total += item.Price * float64(line.Quantity)
	}

	snapshot, errEncode := json.Marshal(lines)
	if errEncode != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode items failed"})
		return
	}

	order := models.Order{
		OrderNumber:  uuid.NewString(),
		MemberID:     &memberID,
		CustomerName: getMemberName(c),
		Items:        datatypes.JSON(snapshot),
		ItemCount:    itemCount,
		Total:        total,
		Status:       models.OrderStatusPending,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&order).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create order failed"})
		return
	}

	// Points are credited after the order commits: the order is the primary
	// commercial record, so a failed accrual is reconciled from the log
	// instead of rolling the order back.
	earned := int64(itemCount) * loyalty.PointsPerOrderItem
	reason := fmt.Sprintf("Order %d item", itemCount)
	pointsCredited := true
	if errAccrue := h.ledger.Accrue(c.Request.Context(), memberID, earned, reason); errAccrue != nil {
		pointsCredited = false
		log.WithFields(log.Fields{
			"member_id": memberID,
			"order_id":  order.ID,
			"points":    earned,
		}).WithError(errAccrue).Error("point accrual failed after order placement")
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":              order.ID,
		"order_number":    order.OrderNumber,
		"item_count":      order.ItemCount,
		"total":           order.Total,
		"status":          order.Status,
		"points_earned":   earned,
		"points_credited": pointsCredited,
	})
}

// orderDTO defines the order list payload.
type orderDTO struct {
	ID          uint64             `json:"id"`
	OrderNumber string             `json:"order_number"`
	Items       []models.OrderItem `json:"items"`
	ItemCount   int                `json:"item_count"`
	Total       float64            `json:"total"`
	Status      string             `json:"status"`
	CreatedAt   string             `json:"created_at"`
}

// List returns the member's own orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	memberID := getMemberID(c)
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	offset, limit := util.ParsePagination(c.Query("page"), c.Query("page_size"))

	var rows []models.Order
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query orders failed"})
		return
	}

	out := make([]orderDTO, 0, len(rows))
	for _, row := range rows {
		var items []models.OrderItem
		if errDecode := json.Unmarshal(row.Items, &items); errDecode != nil {
			items = nil
		}
		out = append(out, orderDTO{
			ID:          row.ID,
			OrderNumber: row.OrderNumber,
			Items:       items,
			ItemCount:   row.ItemCount,
			Total:       row.Total,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}
