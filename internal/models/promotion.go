package models

import "time"

// Promotion is an admin-managed discount campaign shown on the storefront.
type Promotion struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title       string  `gorm:"type:text;not null"` // Campaign title.
	Description string  `gorm:"type:text"`          // Campaign description.
	DiscountPct float64 `gorm:"not null;default:0"` // Percentage discount, 0 when amount-based.
	DiscountAmt float64 `gorm:"not null;default:0"` // Flat discount amount, 0 when percentage-based.

	StartsAt *time.Time // Optional campaign start.
	EndsAt   *time.Time // Optional campaign end.

	Active bool `gorm:"not null;default:true"` // Whether the promotion is shown.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
