package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/kedaikita/kedaikita-server/internal/models"
)

func TestMigrateSeedsDefaultAdminOnce(t *testing.T) {
	dsn := fmt.Sprintf("file:migrate_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := Open(dsn)
	if errOpen != nil {
		t.Fatalf("open: %v", errOpen)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	var admin models.Admin
	if errFind := conn.Where("username = ?", "admin").First(&admin).Error; errFind != nil {
		t.Fatalf("find seeded admin: %v", errFind)
	}
	if admin.Role != models.AdminRoleOwner {
		t.Fatalf("expected owner role, got %q", admin.Role)
	}

	// Migrating again must not duplicate the seed.
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("second migrate: %v", errMigrate)
	}
	var count int64
	if errCount := conn.Model(&models.Admin{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count admins: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected 1 admin, got %d", count)
	}
}

func TestLegacyTableNames(t *testing.T) {
	dsn := fmt.Sprintf("file:tables_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := Open(dsn)
	if errOpen != nil {
		t.Fatalf("open: %v", errOpen)
	}
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	for _, table := range []string{"loyalty", "loyalty_history", "redeemed_voucher", "vouchers"} {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("expected table %q", table)
		}
	}
	if !conn.Migrator().HasColumn(&models.PointBalance{}, "poin") {
		t.Fatal("expected legacy poin column")
	}
}

func TestDialectHelpers(t *testing.T) {
	dsn := fmt.Sprintf("file:dialect_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := Open(dsn)
	if errOpen != nil {
		t.Fatalf("open: %v", errOpen)
	}

	if !IsSQLite(conn) {
		t.Fatalf("expected sqlite dialect, got %q", DialectName(conn))
	}
	if expr := CaseInsensitiveLikeExpr(conn, "name"); expr != "LOWER(name) LIKE ?" {
		t.Fatalf("unexpected like expr %q", expr)
	}
	if pattern := NormalizeLikePattern(conn, "%Kopi%"); pattern != "%kopi%" {
		t.Fatalf("unexpected pattern %q", pattern)
	}
}
