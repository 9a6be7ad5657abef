package models

import "time"

// PointBalance is the single current-balance row per member. The table and
// point column keep their original names so existing databases migrate
// without a rename.
type PointBalance struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	MemberID uint64 `gorm:"not null;uniqueIndex"` // Owning member, one row per member.
	Member   Member `gorm:"foreignKey:MemberID"`  // Member record.
	Points   int64  `gorm:"column:poin;not null"` // Current balance, never negative.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName keeps the legacy table name.
func (PointBalance) TableName() string { return "loyalty" }

// PointHistory is one append-only entry in a member's point history.
type PointHistory struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	MemberID uint64 `gorm:"not null;index"`      // Owning member.
	Member   Member `gorm:"foreignKey:MemberID"` // Member record.
	Delta    int64  `gorm:"not null"`            // Signed point change.
	Reason   string `gorm:"type:text;not null"`  // Human-readable reason.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index"` // Entry time.
}

// TableName keeps the legacy table name.
func (PointHistory) TableName() string { return "loyalty_history" }
