package postgres

import (
	"fmt"
	"log"

	"github.com/LavaJover/cruise-commission-service/internal/config"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/migrate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func MustInitDB(cfg *config.CommissionConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.CommissionDB.Dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	if cfg.CommissionDB.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			log.Fatalf("failed to auto-migrate: %v\n", err)
		}
		return db
	}

	if err := migrate.RunMigrations(db, cfg.CommissionDB.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v\n", err)
	}
	return db
}

// AutoMigrate creates the tables from the gorm models and then the
// constraints gorm tags cannot express.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return EnsureConstraints(db)
}
