package models

import "time"

// Reservation status values.
const (
	// ReservationStatusBooked marks a confirmed upcoming reservation.
	ReservationStatusBooked = "booked"
	// ReservationStatusSeated marks a reservation whose party arrived.
	ReservationStatusSeated = "seated"
	// ReservationStatusCancelled marks a cancelled reservation.
	ReservationStatusCancelled = "cancelled"
)

// Reservation is one table booking.
type Reservation struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name       string    `gorm:"type:text;not null"` // Booking name.
	Phone      string    `gorm:"type:text"`          // Contact phone.
	PartySize  int       `gorm:"not null;default:1"` // Number of guests.
	ReservedAt time.Time `gorm:"not null;index"`     // Reserved date and time.
	TableNo    string    `gorm:"type:text"`          // Assigned table, set by staff.

	MemberID *uint64 `gorm:"index"`               // Booking member, nil for phone bookings.
	Member   *Member `gorm:"foreignKey:MemberID"` // Member record.

	Status string `gorm:"type:text;not null;default:'booked'"` // booked, seated or cancelled.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
