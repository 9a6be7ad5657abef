package models

import "time"

// Member is a registered loyalty program member.
type Member struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	MemberCode string `gorm:"type:text;not null;uniqueIndex"` // Public member identifier.
	Name       string `gorm:"type:text;not null"`             // Display name.
	Email      string `gorm:"type:text;not null;uniqueIndex"` // Login email, unique.
	Password   string `gorm:"type:text;not null" json:"-"`    // Bcrypt hash.
	Phone      string `gorm:"type:text"`                      // Contact phone.
	Active     bool   `gorm:"not null;default:true"`          // Inactive members cannot log in.

	JoinedAt  time.Time `gorm:"not null;autoCreateTime"` // Registration time.
	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
