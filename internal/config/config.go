package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported values for DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds database connection settings.
// Driver selects PostgreSQL (production) or SQLite (local development).
type DatabaseConfig struct {
	Driver             string `env:"DB_DRIVER" envDefault:"postgres"`
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" envDefault:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath         string `env:"DB_SQLITE_PATH" envDefault:"marketplace.db"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" envDefault:"300"`
	SlowQueryMs        int    `env:"DB_SLOW_QUERY_MS" envDefault:"200"`
}

// SlowQueryThreshold returns the duration above which queries are logged as slow.
func (c DatabaseConfig) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryMs) * time.Millisecond
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string `env:"APP_HOST" envDefault:"localhost:8080"`
	Port        string `env:"PORT" envDefault:"8080"`
	Timezone    string `env:"APP_TIMEZONE" envDefault:"UTC"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	Database    DatabaseConfig
}

// Location resolves Timezone, falling back to UTC for unknown zones.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return &cfg, nil
}
