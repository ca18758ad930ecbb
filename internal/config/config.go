package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	Port     string `env:"PORT" default:"8080"`
	GinMode  string `env:"GIN_MODE" default:"debug"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`
	// text or json
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	TemplatesGlob string `env:"TEMPLATES_GLOB" default:"templates/*"`
	ContentFile   string `env:"CONTENT_FILE"`
	DatabasePath  string `env:"DATABASE_PATH" default:"portfolio.db"`

	ClockTimezone string        `env:"CLOCK_TIMEZONE" default:"Asia/Kolkata"`
	ClockLabel    string        `env:"CLOCK_LABEL" default:"Delhi"`
	ClockInterval time.Duration `env:"CLOCK_INTERVAL" default:"1s"`

	ViewStaleAfter   time.Duration `env:"VIEW_STALE_AFTER" default:"2m"`
	VisitorRetention time.Duration `env:"VISITOR_RETENTION" default:"8760h"` // 12 months

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.ClockInterval <= 0 {
		return fmt.Errorf("CLOCK_INTERVAL must be positive, got %s", cfg.ClockInterval)
	}
	if cfg.ViewStaleAfter <= 0 {
		return fmt.Errorf("VIEW_STALE_AFTER must be positive, got %s", cfg.ViewStaleAfter)
	}
	if cfg.VisitorRetention <= 0 {
		return fmt.Errorf("VISITOR_RETENTION must be positive, got %s", cfg.VisitorRetention)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	// An unknown CLOCK_TIMEZONE is deliberately not rejected: the clock
	// reports formatting errors per tick and the page keeps rendering.
	return nil
}
