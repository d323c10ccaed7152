package db

import (
	"fmt"  // Error wrapping
	"time" // Slow query threshold

	"car_rental/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus as the GORM log sink
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert clauses
	"gorm.io/gorm/logger"        // GORM logger adapter
)

// Config returns the GORM settings shared by every connection
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true, // Surface unique violations as gorm.ErrDuplicatedKey
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Log queries slower than this
			LogLevel:                  logger.Warn,            // Only warnings and errors
			IgnoreRecordNotFoundError: true,                   // Not-found is a normal outcome
		}),
	}
}

// Open connects to MySQL using dsn
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

// Migrate creates tables, missing foreign keys, constraints, columns and indexes,
// then makes sure the reference roles exist
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Role{}, &domain.User{}, &domain.Car{}, &domain.RentalRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	roles := domain.SeedRoles()
	// Existing rows are left untouched so reruns are safe
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	logrus.WithField("roles", len(roles)).Info("Migration completed.")
	return nil
}
