package models

import "time"

// Event is a café event members can register for.
type Event struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name        string    `gorm:"type:text;not null"` // Event name.
	Description string    `gorm:"type:text"`          // Event description.
	StartsAt    time.Time `gorm:"not null"`           // Scheduled start.
	Capacity    int       `gorm:"not null;default:0"` // Max registrations, 0 means unlimited.

	Active bool `gorm:"not null;default:true"` // Whether registration is open.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// EventRegistration records one member signing up for one event.
type EventRegistration struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	EventID  uint64 `gorm:"not null;index;uniqueIndex:idx_event_member"` // Registered event.
	MemberID uint64 `gorm:"not null;index;uniqueIndex:idx_event_member"` // Registering member.

	Event  *Event  `gorm:"foreignKey:EventID"`  // Event record.
	Member *Member `gorm:"foreignKey:MemberID"` // Member record.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Registration timestamp.
}
