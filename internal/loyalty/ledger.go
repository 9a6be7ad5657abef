// Package loyalty implements the point ledger: balance projection,
// append-only point history, tier classification and voucher redemption.
package loyalty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Points awarded by the storefront flows.
const (
	// PointsPerOrderItem is credited per item on a placed order.
	PointsPerOrderItem = 2
	// PointsPerEventRegistration is credited for registering to an event.
	PointsPerEventRegistration = 5
)

// Ledger mediates every loyalty read and write. Handlers never touch the
// loyalty tables directly.
type Ledger struct {
	db     *gorm.DB
	locker memberLocker
}

// NewLedger constructs a Ledger. A nil redis client falls back to an
// in-process lock, which is sufficient for a single API instance.
func NewLedger(db *gorm.DB, rdb *redis.Client) *Ledger {
	var locker memberLocker
	if rdb != nil {
		locker = newRedisLocker(rdb)
	} else {
		locker = newLocalLocker()
	}
	return &Ledger{db: db, locker: locker}
}

// Balance returns the member's current point balance. A missing balance row
// means zero, not an error; store failures are returned so the caller decides
// whether to degrade the display or fail the action.
func (l *Ledger) Balance(ctx context.Context, memberID uint64) (int64, error) {
	var row models.PointBalance
	errFind := l.db.WithContext(ctx).Where("member_id = ?", memberID).First(&row).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("loyalty: query balance: %w", errFind)
	}
	return row.Points, nil
}

// History returns the member's point history entries, newest first.
func (l *Ledger) History(ctx context.Context, memberID uint64) ([]models.PointHistory, error) {
	var rows []models.PointHistory
	errFind := l.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("loyalty: query history: %w", errFind)
	}
	return rows, nil
}

// RedeemedVouchers returns the member's redeemed vouchers, newest expiry first.
func (l *Ledger) RedeemedVouchers(ctx context.Context, memberID uint64) ([]models.RedeemedVoucher, error) {
	var rows []models.RedeemedVoucher
	errFind := l.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("expiry_date DESC, id DESC").
		Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("loyalty: query redeemed vouchers: %w", errFind)
	}
	return rows, nil
}

// AvailableVouchers returns the active voucher catalog in catalog order.
func (l *Ledger) AvailableVouchers(ctx context.Context) ([]models.Voucher, error) {
	var rows []models.Voucher
	errFind := l.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("loyalty: query vouchers: %w", errFind)
	}
	return rows, nil
}

// Accrue credits points to a member and appends a history entry.
//
// The balance upsert commits first; the history append runs after it and is
// deliberately tolerated on failure. The balance is the primary effect, so a
// failed append degrades observability but does not fail the parent action
// (order placement or event registration). The failure is logged with enough
// context for manual reconciliation.
func (l *Ledger) Accrue(ctx context.Context, memberID uint64, points int64, reason string) error {
	if points <= 0 {
		return ErrInvalidPoints
	}

	errTx := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PointBalance{}).
			Where("member_id = ?", memberID).
			UpdateColumn("poin", gorm.Expr("poin + ?", points))
		if res.Error != nil {
			return fmt.Errorf("update balance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			row := models.PointBalance{MemberID: memberID, Points: points}
			if errCreate := tx.Create(&row).Error; errCreate != nil {
				return fmt.Errorf("create balance: %w", errCreate)
			}
		}
		return nil
	})
	if errTx != nil {
		return fmt.Errorf("loyalty: accrue: %w", errTx)
	}

	entry := models.PointHistory{MemberID: memberID, Delta: points, Reason: reason}
	if errAppend := l.db.WithContext(ctx).Create(&entry).Error; errAppend != nil {
		log.WithFields(log.Fields{
			"member_id": memberID,
			"operation": "accrue",
			"step":      "history",
			"delta":     points,
		}).WithError(errAppend).Error("point history append failed after balance commit")
	}
	return nil
}

// Redeem exchanges points for a voucher instance.
//
// The voucher lookup, guarded debit, redeemed-voucher insert and history
// insert run in one transaction, so a failure at any step rolls back the
// whole redemption and no partial state is committed. The debit condition
// (poin >= cost) makes a concurrent double redeem fail even if it slipped
// past the per-member lock.
func (l *Ledger) Redeem(ctx context.Context, memberID uint64, memberName string, voucherID uint64) error {
	release, errLock := l.locker.Acquire(ctx, memberID)
	if errLock != nil {
		return errLock
	}
	defer release()

	errTx := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var voucher models.Voucher
		errFind := tx.Where("id = ? AND active = ?", voucherID, true).First(&voucher).Error
		if errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return ErrVoucherNotFound
			}
			return fmt.Errorf("query voucher: %w", errFind)
		}

		res := tx.Model(&models.PointBalance{}).
			Where("member_id = ? AND poin >= ?", memberID, voucher.RequiredPoints).
			UpdateColumn("poin", gorm.Expr("poin - ?", voucher.RequiredPoints))
		if res.Error != nil {
			return fmt.Errorf("debit balance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Covers both a missing balance row and an insufficient one.
			return ErrInsufficientPoints
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		redeemed := models.RedeemedVoucher{
			MemberID:     memberID,
			MemberName:   memberName,
			VoucherTitle: voucher.Title,
			ExpiryDate:   today.AddDate(0, 0, voucher.ExpiryDays),
			Status:       models.VoucherStatusActive,
		}
		if errCreate := tx.Create(&redeemed).Error; errCreate != nil {
			return fmt.Errorf("create redeemed voucher: %w", errCreate)
		}

		entry := models.PointHistory{
			MemberID: memberID,
			Delta:    -voucher.RequiredPoints,
			Reason:   fmt.Sprintf("Tukar voucher: %s", voucher.Title),
		}
		if errCreate := tx.Create(&entry).Error; errCreate != nil {
			return fmt.Errorf("create history entry: %w", errCreate)
		}
		return nil
	})
	if errTx != nil {
		if errors.Is(errTx, ErrInsufficientPoints) || errors.Is(errTx, ErrVoucherNotFound) {
			return errTx
		}
		log.WithFields(log.Fields{
			"member_id":  memberID,
			"operation":  "redeem",
			"voucher_id": voucherID,
		}).WithError(errTx).Error("voucher redemption rolled back")
		return fmt.Errorf("loyalty: redeem: %w", errTx)
	}
	return nil
}
