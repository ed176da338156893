package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cropcast.app/internal/config"
)

// Open connects to the configured database driver
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DatabaseDriverSQLite:
		dialector = sqlite.Open(cfg.GetDSN())
	case config.DatabaseDriverPostgres:
		dialector = postgres.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migrate creates or updates the tables for every model
func Migrate(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

// Models lists every gorm model owned by this package
func Models() []interface{} {
	return []interface{}{
		&UserModel{},
		&SessionModel{},
		&PlantModel{},
	}
}
