package loyalty

import "errors"

// Ledger errors surfaced to callers.
var (
	// ErrInsufficientPoints indicates the member balance does not cover the
	// voucher cost. No write happens when this is returned.
	ErrInsufficientPoints = errors.New("loyalty: insufficient points")
	// ErrVoucherNotFound indicates the voucher does not exist or is inactive.
	ErrVoucherNotFound = errors.New("loyalty: voucher not found")
	// ErrInvalidPoints indicates a non-positive accrual amount.
	ErrInvalidPoints = errors.New("loyalty: points must be positive")
	// ErrRedeemInFlight indicates another redemption for the same member is
	// still running. The caller should retry after it settles.
	ErrRedeemInFlight = errors.New("loyalty: redemption already in flight")
)
