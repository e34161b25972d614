package db

import (
	"fmt"

	"github.com/agencydesk/agencydesk/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all application tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.User{},
		&models.Agency{},
		&models.Contact{},
		&models.DailyUsage{},
	)
}
