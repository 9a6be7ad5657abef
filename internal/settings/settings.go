// Package settings keeps an in-memory snapshot of the store profile rows in
// the settings table. The snapshot is refreshed at startup and whenever an
// admin saves the profile, so storefront requests never hit the table.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/kedaikita/kedaikita-server/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Setting keys used by the store profile.
const (
	// KeyStoreProfile holds the StoreProfile JSON document.
	KeyStoreProfile = "store_profile"
)

// StoreProfile is the public café profile shown on the storefront.
type StoreProfile struct {
	Name         string `json:"name"`
	Tagline      string `json:"tagline"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	OpeningHours string `json:"opening_hours"`
	Currency     string `json:"currency"`
}

// snapshot holds the parsed settings values.
type snapshot struct {
	values map[string]json.RawMessage
}

var globalSnapshot atomic.Value // stores snapshot

func init() {
	globalSnapshot.Store(snapshot{values: map[string]json.RawMessage{}})
}

// Refresh reloads all settings rows and replaces the in-memory snapshot.
func Refresh(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("settings: nil db")
	}

	var rows []models.Setting
	if errFind := db.WithContext(ctx).
		Select("key", "value").
		Order("key ASC").
		Find(&rows).Error; errFind != nil {
		return errFind
	}

	values := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			continue
		}
		copied := make([]byte, len(row.Value))
		copy(copied, row.Value)
		values[key] = copied
	}
	globalSnapshot.Store(snapshot{values: values})
	return nil
}

// Value returns a copy of the raw value for a key.
func Value(key string) (json.RawMessage, bool) {
	snap, _ := globalSnapshot.Load().(snapshot)
	val, ok := snap.values[strings.TrimSpace(key)]
	if !ok {
		return nil, false
	}
	copied := make([]byte, len(val))
	copy(copied, val)
	return copied, true
}

// Profile returns the store profile from the snapshot, with defaults for an
// unconfigured store.
func Profile() StoreProfile {
	profile := StoreProfile{Name: "Kedai Kita", Currency: "IDR"}
	raw, ok := Value(KeyStoreProfile)
	if !ok {
		return profile
	}
	if errDecode := json.Unmarshal(raw, &profile); errDecode != nil {
		return StoreProfile{Name: "Kedai Kita", Currency: "IDR"}
	}
	return profile
}

// SaveProfile upserts the store profile row and refreshes the snapshot.
func SaveProfile(ctx context.Context, db *gorm.DB, profile StoreProfile) error {
	if db == nil {
		return errors.New("settings: nil db")
	}
	encoded, errEncode := json.Marshal(profile)
	if errEncode != nil {
		return errEncode
	}

	var row models.Setting
	errFind := db.WithContext(ctx).Where("key = ?", KeyStoreProfile).First(&row).Error
	switch {
	case errFind == nil:
		if errUpdate := db.WithContext(ctx).Model(&row).Update("value", datatypes.JSON(encoded)).Error; errUpdate != nil {
			return errUpdate
		}
	case errors.Is(errFind, gorm.ErrRecordNotFound):
		row = models.Setting{Key: KeyStoreProfile, Value: datatypes.JSON(encoded)}
		if errCreate := db.WithContext(ctx).Create(&row).Error; errCreate != nil {
			return errCreate
		}
	default:
		return errFind
	}
	return Refresh(ctx, db)
}
