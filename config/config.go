package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Public site configuration
	SiteURL          string
	CheckoutBaseURL  string
	ShareLogoPath    string
	CORSAllowOrigins []string

	// SandboxConnectSrc narrows where sandboxed scripts may issue
	// requests. Empty leaves egress unrestricted.
	SandboxConnectSrc string

	// ModerationWordsFile points at the blocked-word list. Empty
	// disables moderation.
	ModerationWordsFile string

	// RateLimitPerMinute caps requests per visitor on the public
	// surface. Zero disables rate limiting.
	RateLimitPerMinute int
}

// LoadConfig creates a new Config instance with values from environment
// variables or secrets, depending on the environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case Development, Test, CI:
		// A local .env is a convenience, never a requirement.
		_ = godotenv.Load()
		loadEnvConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	loadAppConfig(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig loads configuration from environment variables with
// development-friendly defaults.
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = getEnv("DB_PASSWORD", "postgres")
	cfg.DBName = getEnv("DB_NAME", "linkgrove")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = 0
	cfg.JWTSecret = getEnv("JWT_SECRET", "dev-secret-do-not-use")
}

// loadProdConfig loads configuration for production using Docker
// secrets for sensitive values and environment variables for the rest.
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "require")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0
	cfg.JWTSecret = readSecret("jwt_secret")
}

// loadAppConfig loads the public-site settings. These are plain
// environment variables in every environment.
func loadAppConfig(cfg *Config) {
	cfg.SiteURL = getEnv("SITE_URL", "http://localhost:8080")
	cfg.CheckoutBaseURL = os.Getenv("CHECKOUT_BASE_URL")
	cfg.ShareLogoPath = os.Getenv("SHARE_LOGO_PATH")
	cfg.SandboxConnectSrc = os.Getenv("SANDBOX_CONNECT_SRC")
	cfg.ModerationWordsFile = os.Getenv("MODERATION_WORDS_FILE")

	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
			}
		}
	}

	if limit := os.Getenv("RATE_LIMIT_PER_MINUTE"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.RateLimitPerMinute = n
		}
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
