// Package database opens the GORM connection and migrates the schema.
package database

import (
	"fmt"

	"teslo/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database selected by driver. SQLite is pinned to a
// single connection so in-memory databases stay shared.
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	// Driver errors stay untranslated so the constraint detail survives.
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.ProductImage{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
