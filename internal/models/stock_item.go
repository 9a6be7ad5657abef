package models

import "time"

// StockItem tracks one ingredient or supply in the storeroom.
type StockItem struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name     string  `gorm:"type:text;not null"` // Ingredient name.
	Unit     string  `gorm:"type:text;not null"` // Counting unit (kg, pcs, liter).
	Quantity float64 `gorm:"not null;default:0"` // Current quantity on hand.
	MinLevel float64 `gorm:"not null;default:0"` // Reorder threshold for the low-stock report.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
