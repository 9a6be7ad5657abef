package models

import (
	"time"

	"gorm.io/datatypes"
)

// Admin role values.
const (
	// AdminRoleOwner can manage every resource including other admins.
	AdminRoleOwner = "owner"
	// AdminRoleStaff covers day-to-day counter operations.
	AdminRoleStaff = "staff"
)

// Admin represents a back-office account stored in the database.
type Admin struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Password string `gorm:"type:text;not null"`             // Hashed password.

	Active bool `gorm:"not null;default:true"` // Whether the admin can sign in.

	Role        string         `gorm:"type:text;not null;default:'staff'"` // owner or staff.
	Permissions datatypes.JSON `gorm:"not null;default:'[]'"`              // Permission keys in JSON.

	TOTPSecret string `gorm:"type:text"` // TOTP secret for MFA, empty when disabled.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
