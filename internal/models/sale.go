package models

import "time"

// Sale is a settled payment record kept for the daily sales report.
type Sale struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	OrderID       *uint64   `gorm:"index"`               // Source order, nil for manual entries.
	Order         *Order    `gorm:"foreignKey:OrderID"`  // Order record.
	SoldAt        time.Time `gorm:"not null;index"`      // Settlement time.
	Total         float64   `gorm:"not null"`            // Amount received.
	PaymentMethod string    `gorm:"type:text;not null"`  // cash, card or qris.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
