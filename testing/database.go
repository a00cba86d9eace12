// Package testing provides test utilities and database setup for the tournament directory
package testing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tannermartz/breakline/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB represents an isolated in-memory test database
type TestDB struct {
	DB *gorm.DB
}

// SetupTestDB creates a fresh in-memory sqlite database and runs migrations.
// Each call gets its own database so tests never see each other's rows.
func SetupTestDB() (*TestDB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	// A single connection keeps the shared in-memory database alive
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Player{},
		&models.Venue{},
		&models.Tournament{},
		&models.SearchAlert{},
		&models.AlertMatch{},
		&models.Favorite{},
		&models.PlayerSession{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return &TestDB{DB: db}, nil
}

// Close releases the test database
func (t *TestDB) Close() error {
	sqlDB, err := t.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// TestWithDB runs fn against a fresh test database and cleans up afterwards
func TestWithDB(fn func(testDB *TestDB) error) error {
	testDB, err := SetupTestDB()
	if err != nil {
		return err
	}
	defer testDB.Close()

	return fn(testDB)
}
