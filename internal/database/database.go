package database

import (
	"fmt"
	"time"

	"ledger/internal/logger"
	"ledger/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Manager handles database operations
type Manager struct {
	db *gorm.DB
}

// NewManager creates a new database manager
func NewManager(config *Config) (*Manager, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.DSN(),
		PreferSimpleProtocol: true, // Required for pooled connection proxies; harmless for direct connections
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db}, nil
}

// AutoMigrate creates or updates the ledger schema.
func (m *Manager) AutoMigrate() error {
	logger.Get().Info("Synchronizing database schema...")

	if err := m.db.AutoMigrate(
		&models.Category{},
		&models.Purchase{},
		&models.PayPeriod{},
	); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	logger.Get().Info("Database schema is up to date")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
