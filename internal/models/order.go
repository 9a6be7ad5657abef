package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order status values.
const (
	// OrderStatusPending marks an order that has not been served yet.
	OrderStatusPending = "pending"
	// OrderStatusCompleted marks a served order.
	OrderStatusCompleted = "completed"
	// OrderStatusCancelled marks a cancelled order.
	OrderStatusCancelled = "cancelled"
)

// Order is one storefront or counter order. The ordered items are stored as
// a JSON snapshot so later menu edits do not rewrite order history.
type Order struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	OrderNumber  string  `gorm:"type:text;not null;uniqueIndex"` // Public order reference.
	MemberID     *uint64 `gorm:"index"`                          // Ordering member, nil for walk-ins.
	Member       *Member `gorm:"foreignKey:MemberID"`            // Member record.
	CustomerName string  `gorm:"type:text"`                      // Name snapshot for the receipt.

	Items     datatypes.JSON `gorm:"not null"`           // Item snapshot: name, unit price, qty.
	ItemCount int            `gorm:"not null;default:0"` // Total item quantity across lines.
	Total     float64        `gorm:"not null;default:0"` // Order total.

	Status string `gorm:"type:text;not null;default:'pending'"` // pending, completed or cancelled.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Placement timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// OrderItem is one line inside the Order.Items JSON snapshot.
type OrderItem struct {
	MenuItemID uint64  `json:"menu_item_id"` // Source menu item.
	Name       string  `json:"name"`         // Name at order time.
	UnitPrice  float64 `json:"unit_price"`   // Price at order time.
	Quantity   int     `json:"quantity"`     // Ordered quantity.
}
