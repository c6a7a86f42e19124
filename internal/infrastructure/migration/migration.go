// Package migration applies the database schema with goose for MySQL and gorm
// AutoMigrate for SQLite.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// DefaultScriptsDir is where Create writes new scripts, relative to the repo root.
const DefaultScriptsDir = "./internal/infrastructure/migration/scripts"

// NewStrategy selects the strategy for a database driver.
func NewStrategy(driver string, log logger.Interface) (Strategy, error) {
	switch driver {
	case "mysql":
		return NewGooseStrategy("mysql", DefaultScriptsDir, log), nil
	case "sqlite":
		return NewGormAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate selects the strategy for driver and applies it.
func Migrate(db *gorm.DB, driver string, log logger.Interface) error {
	strategy, err := NewStrategy(driver, log)
	if err != nil {
		return err
	}

	log.Infow("starting database migration", "strategy", strategy.GetName())
	if err := strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", strategy.GetName(), err)
	}
	return nil
}
