package settings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/kedaikita/kedaikita-server/internal/models"
	"gorm.io/gorm"
)

func setupSettingsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:settings_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.AutoMigrate(&models.Setting{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return db
}

func TestProfileDefaultsWhenUnset(t *testing.T) {
	db := setupSettingsDB(t)
	if errRefresh := Refresh(context.Background(), db); errRefresh != nil {
		t.Fatalf("refresh: %v", errRefresh)
	}

	profile := Profile()
	if profile.Name != "Kedai Kita" || profile.Currency != "IDR" {
		t.Fatalf("unexpected defaults: %+v", profile)
	}
}

func TestSaveProfileRoundTrip(t *testing.T) {
	db := setupSettingsDB(t)

	want := StoreProfile{
		Name:         "Kedai Kita Menteng",
		Tagline:      "Kopi enak tiap hari",
		Address:      "Jl. Menteng Raya 1",
		Phone:        "021-555",
		OpeningHours: "08:00-22:00",
		Currency:     "IDR",
	}
	if errSave := SaveProfile(context.Background(), db, want); errSave != nil {
		t.Fatalf("save: %v", errSave)
	}

	got := Profile()
	if got != want {
		t.Fatalf("profile mismatch: got %+v want %+v", got, want)
	}

	// Saving again updates the same row.
	want.Tagline = "Buka setiap hari"
	if errSave := SaveProfile(context.Background(), db, want); errSave != nil {
		t.Fatalf("second save: %v", errSave)
	}
	var count int64
	db.Model(&models.Setting{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one settings row, got %d", count)
	}
	if Profile().Tagline != "Buka setiap hari" {
		t.Fatalf("expected refreshed tagline, got %q", Profile().Tagline)
	}
}
