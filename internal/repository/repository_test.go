package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nimmmsh/digiCare/internal/database"
	"github.com/Nimmmsh/digiCare/internal/seed"
)

// setupTestDB opens an in-memory SQLite database, migrates the schema, and
// installs the demo dataset. Seeded user IDs follow insert order: admin=1,
// dr_smith=2, dr_jones=3, john_doe=4, jane_wilson=5, bob_brown=6.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// An in-memory SQLite database exists per connection; a second
	// connection would see an empty schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := seed.Seed(db); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}

	return db
}
