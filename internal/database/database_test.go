package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkgrove/linkgrove-v2/backend/config"
	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
	"github.com/linkgrove/linkgrove-v2/backend/internal/testhelpers"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "linkgrove",
		DBPassword: "hunter2",
		DBName:     "linkgrove",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=linkgrove password=hunter2 dbname=linkgrove sslmode=require",
		DSN(cfg))
}

func TestAutoMigrateCreatesSchema(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	for _, table := range []string{"users", "profiles", "links", "widgets", "badges", "profile_badges", "visits"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}

	user := models.User{
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(&user).Error)
	assert.NotZero(t, user.ID)
}
