package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Session  SessionConfig
	Auth     AuthConfig
}

// DatabaseConfig contains store-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// SessionConfig controls the persisted resume token.
type SessionConfig struct {
	Secret string        // HMAC secret for resume tokens
	File   string        // token file path; empty disables resume
	TTL    time.Duration // resume token lifetime
}

// AuthConfig contains password-hashing settings.
type AuthConfig struct {
	BcryptCost int
}

// Load loads configuration from a .env file (if present) and environment
// variables. SESSION_SECRET is required.
func Load() (*Config, error) {
	cfg := load()
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for SESSION_SECRET in
// development. WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg := load()
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load() *Config {
	// A missing .env just means plain environment variables.
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "taskshare.db"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			File:   getEnv("SESSION_FILE", ".taskshare.session"),
			TTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 72)) * time.Hour,
		},
		Auth: AuthConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
	}
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// String returns a printable form of the config (secrets are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, SessionFile: %s, TTL: %s, Secret: *** (masked) ***}",
		c.Database.Path, c.Session.File, c.Session.TTL)
}
