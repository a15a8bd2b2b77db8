package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// It is constructed once at startup and injected into components; there is
// no package-level settings singleton.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr      string // listen address, e.g. ":8080"
	APIPrefix string // path prefix for versioned routes, e.g. "/api/v1"
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	DSN string // SQLite DSN, e.g. "file:todo.db?_foreign_keys=on"
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret      string        // JWT signing secret
	AccessTokenTTL time.Duration // lifetime of issued access tokens
	BcryptCost     int           // bcrypt work factor for password hashing
}

// Load loads configuration from environment variables with sensible defaults.
// Outside production a .env file in the working directory is honored.
// JWT_SECRET is mandatory.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		// Missing .env is fine; env vars may be set directly.
		_ = godotenv.Load()
	}

	ttlMinutes, err := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	bcryptCost, err := getEnvInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:      getEnv("SERVER_ADDR", ":8080"),
			APIPrefix: getEnv("API_PREFIX", "/api/v1"),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_DSN", "file:todo.db?_foreign_keys=on&_busy_timeout=5000"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			AccessTokenTTL: time.Duration(ttlMinutes) * time.Minute,
			BcryptCost:     bcryptCost,
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required to issue tokens")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, DB: %s, Auth: *** (masked) ***}", c.Server.Addr, c.Database.DSN)
}
