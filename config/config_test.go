package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "linkgrove_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SITE_URL", "https://linkgrove.test")
	t.Setenv("SANDBOX_CONNECT_SRC", "https://api.example.com")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "linkgrove_test", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "https://linkgrove.test", cfg.SiteURL)
	assert.Equal(t, "https://api.example.com", cfg.SandboxConnectSrc)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"JWT_SECRET", "SITE_URL", "SANDBOX_CONNECT_SRC",
		"RATE_LIMIT_PER_MINUTE", "CORS_ALLOW_ORIGINS",
	} {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "linkgrove", cfg.DBName)
	assert.Equal(t, "http://localhost:8080", cfg.SiteURL)
	assert.Empty(t, cfg.SandboxConnectSrc)
	assert.Zero(t, cfg.RateLimitPerMinute)
}

func TestLoadConfigRejectsRelativeSiteURL(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SITE_URL", "/just/a/path")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestCORSOriginsParsed(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SITE_URL", "https://linkgrove.test")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test, https://b.test ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowOrigins)
}

func TestWordListModerator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocked.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nbadword\n  Spam  \n\n"), 0o600))

	m, err := LoadWordListModerator(path)
	require.NoError(t, err)

	assert.True(t, m.Allowed("a perfectly fine bio"))
	assert.False(t, m.Allowed("this contains BadWord inside"))
	assert.False(t, m.Allowed("SPAM"))
}

func TestWordListModeratorEmptyPathAllowsAll(t *testing.T) {
	m, err := LoadWordListModerator("")
	require.NoError(t, err)
	assert.True(t, m.Allowed("anything at all"))
}
