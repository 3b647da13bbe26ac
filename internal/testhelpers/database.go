package testhelpers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
)

// SetupTestDatabase opens an in-memory sqlite database with the full
// schema migrated. Each call gets a fresh database.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Link{},
		&models.Widget{},
		&models.Badge{},
		&models.ProfileBadge{},
		&models.Visit{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// SeedProfile inserts a user and profile for tests and returns the
// profile.
func SeedProfile(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()

	user := models.User{Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	profile := models.Profile{UserID: user.ID, Username: username, DisplayName: username}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return &profile
}
