package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/mesa-scheduler/internal/config"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
	"github.com/BruksfildServices01/mesa-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errs.Wrap(err, "connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.Wrap(err, "get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.Environment{},
		&models.Table{},
		&models.Shift{},
		&models.Customer{},
		&models.Reservation{},
		&models.AuditLog{},
	); err != nil {
		return nil, errs.Wrap(err, "migrate")
	}

	res := db.Exec(`
        UPDATE restaurants
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone.DefaultTimezone)
	if res.Error != nil {
		logger.Warn().Err(res.Error).Msg("failed to backfill restaurant timezones")
	} else if res.RowsAffected > 0 {
		logger.Info().Int64("rows", res.RowsAffected).Msg("restaurant timezones backfilled")
	}

	return db, nil
}
