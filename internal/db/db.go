package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crime-detection/internal/config"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

// shiftsNoOverlap backs the application-level overlap check so two
// concurrent creates for the same user cannot both commit.
const shiftsNoOverlap = `
DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'shifts_no_overlap') THEN
        ALTER TABLE shifts ADD CONSTRAINT shifts_no_overlap
            EXCLUDE USING gist (user_id WITH =, tstzrange(start_time, end_time) WITH &&);
    END IF;
END
$$;`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Shift{},
		&models.Notification{},
	); err != nil {
		return nil, fmt.Errorf("migrating: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Warn("btree_gist unavailable, shift overlap relies on application check", zap.Error(err))
		return db, nil
	}
	if err := db.Exec(shiftsNoOverlap).Error; err != nil {
		log.Warn("failed to add shifts_no_overlap constraint", zap.Error(err))
	}

	return db, nil
}
