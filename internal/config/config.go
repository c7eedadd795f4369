package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"

	"github.com/mybabyhq/site-server-go/internal/util"
)

const (
	DefaultAdminUsername = "admin"

	// Development-only fallback used when neither ADMIN_PASSWORD_HASH nor
	// ADMIN_PASSWORD is configured. Refused in production by Validate.
	DevFallbackPassword = "admin123"
)

type Config struct {
	Port              int    `env:"PORT" envDefault:"8080"`
	DatabaseURL       string `env:"DATABASE_URL"`
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	AppEnv            string `env:"APP_ENV" envDefault:"development"`
	UploadDir         string `env:"UPLOAD_DIR" envDefault:"uploads"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UseMemoryStorage reports whether the in-memory storage backend is selected.
// An empty DATABASE_URL selects it; Validate refuses that in production.
func (c *Config) UseMemoryStorage() bool {
	return c.DatabaseURL == ""
}

func (c *Config) Validate() error {
	if c.AdminPasswordHash != "" && !util.IsPasswordHash(c.AdminPasswordHash) {
		return fmt.Errorf("ADMIN_PASSWORD_HASH must be in <hex>.<hex> form (generate with: go run scripts/hash-password.go <password>)")
	}

	if c.IsProduction() {
		if c.AdminPasswordHash == "" && c.AdminPassword == "" {
			return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set in production")
		}
		if c.AdminPasswordHash == "" {
			log.Warn().Msg("ADMIN_PASSWORD is set as plaintext in production: prefer ADMIN_PASSWORD_HASH")
		}
		if c.UseMemoryStorage() {
			return fmt.Errorf("DATABASE_URL must be set in production; in-memory storage loses all state on restart")
		}
	} else if c.AdminPasswordHash == "" && c.AdminPassword == "" {
		log.Warn().Msg("no ADMIN_PASSWORD or ADMIN_PASSWORD_HASH set: using default credentials (admin/admin123)")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
