package models

import "time"

// MenuItem is one sellable item on the café menu.
type MenuItem struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name        string  `gorm:"type:text;not null"` // Display name.
	Category    string  `gorm:"type:text;not null;index"` // coffee, non-coffee, food, snack.
	Price       float64 `gorm:"not null"`           // Unit price.
	Description string  `gorm:"type:text"`          // Optional description.

	Available bool `gorm:"not null;default:true"` // Whether the item can be ordered.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
