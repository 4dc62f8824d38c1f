package database

import (
	"fmt"
	"strings"

	"github.com/casbin/gorm-adapter/v3"
	"github.com/urmu/storefront/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// SQLitePrefix selects the sqlite driver, e.g. sqlite://storefront.db
const SQLitePrefix = "sqlite://"

// Open creates a new database connection. DSNs starting with SQLitePrefix
// open a local sqlite file; anything else is handed to postgres.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "storefront_",
		},
	}

	if path, ok := strings.CutPrefix(dsn, SQLitePrefix); ok {
		db, err := gorm.Open(sqlite.Open(path), config)
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates the checkout ledger and the casbin policy tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBCheckoutAttempt{}); err != nil {
		return fmt.Errorf("failed to migrate checkout ledger table: %w", err)
	}

	// the adapter creates its rule table on construction
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}
