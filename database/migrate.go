package database

import (
	"fmt"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date for all models.
func Migrate(db *gorm.DB) error {
	// UUID primary keys are generated in Postgres.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Transaction{},
		&models.CoinTransaction{},
		&models.Notification{},
		&models.RedemptionCoupon{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	logger.Info("Database migration completed")
	return nil
}
