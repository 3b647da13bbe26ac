package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateConfig checks that the loaded configuration is complete
// enough to start. Development gets defaults for almost everything, so
// the hard requirements only bite in production.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "server port is required")
	}
	if cfg.DBHost == "" {
		errors = append(errors, "database host is required")
	}
	if cfg.DBUser == "" {
		errors = append(errors, "database user is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "database name is required")
	}
	if cfg.RedisHost == "" {
		errors = append(errors, "redis host is required")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "jwt secret is required")
	}

	if u, err := url.Parse(cfg.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("site URL %q is not an absolute URL", cfg.SiteURL))
	}

	if IsProduction() {
		if cfg.JWTSecret == "dev-secret-do-not-use" {
			errors = append(errors, "jwt_secret secret is required in production")
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}
