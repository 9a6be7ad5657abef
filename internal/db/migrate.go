package db

import (
	"fmt"
	"time"

	"github.com/kedaikita/kedaikita-server/internal/models"
	"github.com/kedaikita/kedaikita-server/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema and seeds the default admin account.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}

	errMigrate := conn.AutoMigrate(
		&models.Admin{},
		&models.Member{},
		&models.Customer{},
		&models.MenuItem{},
		&models.StockItem{},
		&models.Promotion{},
		&models.Event{},
		&models.EventRegistration{},
		&models.Order{},
		&models.Sale{},
		&models.Reservation{},
		&models.PointBalance{},
		&models.PointHistory{},
		&models.Voucher{},
		&models.RedeemedVoucher{},
		&models.Setting{},
	)
	if errMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errMigrate)
	}

	return seedDefaultAdmin(conn)
}

// seedDefaultAdmin creates the bootstrap owner account when the admin table
// is empty. The password must be changed after first login.
func seedDefaultAdmin(conn *gorm.DB) error {
	var count int64
	if errCount := conn.Model(&models.Admin{}).Count(&count).Error; errCount != nil {
		return fmt.Errorf("db: count admins: %w", errCount)
	}
	if count > 0 {
		return nil
	}

	hash, errHash := security.HashPassword("admin123")
	if errHash != nil {
		return fmt.Errorf("db: hash default password: %w", errHash)
	}
	now := time.Now().UTC()
	admin := models.Admin{
		Username:  "admin",
		Password:  hash,
		Active:    true,
		Role:      models.AdminRoleOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		return fmt.Errorf("db: seed admin: %w", errCreate)
	}
	log.Warn("seeded default admin account; change its password")
	return nil
}
