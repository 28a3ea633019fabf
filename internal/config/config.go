// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the service.
type Config struct {
	Addr              string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout       time.Duration `envconfig:"READ_TIMEOUT" default:"5s"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"5s"`
	WriteTimeout      time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout       time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// Source selection: DATABASE_URL wins, then the CSV pair, else memory.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	ChartCSV    string `envconfig:"CHART_CSV"`
	JournalCSV  string `envconfig:"JOURNAL_CSV"`
	DevSeed     bool   `envconfig:"DEV_SEED" default:"true"`
	Currency    string `envconfig:"CURRENCY" default:"USD"`

	JWTSecret   string `envconfig:"JWT_HS256_SECRET"`
	JWTIssuer   string `envconfig:"JWT_ISSUER"`
	JWTAudience string `envconfig:"JWT_AUDIENCE"`

	ExportRatePerMinute int `envconfig:"EXPORT_RATE_PER_MINUTE" default:"30"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if (cfg.ChartCSV == "") != (cfg.JournalCSV == "") {
		return nil, errors.New("CHART_CSV and JOURNAL_CSV must be set together")
	}
	if cfg.ExportRatePerMinute < 0 {
		return nil, errors.New("EXPORT_RATE_PER_MINUTE must not be negative")
	}
	return &cfg, nil
}

// Backend names the ledger source the configuration selects.
func (c *Config) Backend() string {
	switch {
	case strings.TrimSpace(c.DatabaseURL) != "":
		return "postgres"
	case c.ChartCSV != "":
		return "csv"
	default:
		return "memory"
	}
}

// Level maps LOG_LEVEL to a slog level; unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
