package models

import "time"

// Customer is a walk-in customer book entry, separate from Member accounts.
type Customer struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name  string `gorm:"type:text;not null"` // Customer name.
	Phone string `gorm:"type:text"`          // Contact phone.
	Email string `gorm:"type:text"`          // Contact email.
	Notes string `gorm:"type:text"`          // Free-form notes.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
