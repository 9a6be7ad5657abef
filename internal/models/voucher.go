package models

import "time"

// Redeemed voucher status values.
const (
	// VoucherStatusActive marks a redeemed voucher that can still be used.
	VoucherStatusActive = "active"
	// VoucherStatusUsed marks a redeemed voucher consumed at the counter.
	VoucherStatusUsed = "used"
	// VoucherStatusExpired marks a redeemed voucher past its expiry date.
	VoucherStatusExpired = "expired"
)

// Voucher is a catalog entry members can exchange points for.
type Voucher struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title          string `gorm:"type:text;not null"`    // Voucher title shown to members.
	RequiredPoints int64  `gorm:"not null"`              // Point cost, positive.
	ExpiryDays     int    `gorm:"not null"`              // Validity in days after redemption.
	Active         bool   `gorm:"not null;default:true"` // Inactive vouchers are hidden and unredeemable.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName keeps the legacy table name.
func (Voucher) TableName() string { return "vouchers" }

// RedeemedVoucher is a voucher instance owned by a member. Title and member
// name are snapshotted at redemption time so later catalog edits do not
// rewrite history.
type RedeemedVoucher struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	MemberID     uint64    `gorm:"not null;index"`      // Owning member.
	Member       Member    `gorm:"foreignKey:MemberID"` // Member record.
	MemberName   string    `gorm:"type:text;not null"`  // Member name at redemption time.
	VoucherTitle string    `gorm:"type:text;not null"`  // Voucher title at redemption time.
	ExpiryDate   time.Time `gorm:"not null;index"`      // Last valid day, UTC midnight.

	Status string `gorm:"type:text;not null;default:'active'"` // active, used or expired.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Redemption time.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName keeps the legacy table name.
func (RedeemedVoucher) TableName() string { return "redeemed_voucher" }
