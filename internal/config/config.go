package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

const devSecret = "dev-secret-change-in-production"

var (
	ErrProductionSecret = errors.New("JWT_SECRET must be set in production environment")
	ErrUnknownDriver    = errors.New("DATABASE_DRIVER must be one of mysql, postgres, memory")
	ErrBcryptCost       = errors.New("BCRYPT_COST out of range")
	ErrTokenTTL         = errors.New("TOKEN_TTL must be positive")
	ErrRateLimitBurst   = errors.New("AUTH_RATE_LIMIT_BURST must be at least 1 when AUTH_RATE_LIMIT_RPS is set")
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"mysql"`
	DatabaseDSN    string `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/studysphere?parseTime=true"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AuthRateLimitRPS   float64  `env:"AUTH_RATE_LIMIT_RPS" envDefault:"5"`
	AuthRateLimitBurst int      `env:"AUTH_RATE_LIMIT_BURST" envDefault:"10"`
}

// Load reads the configuration from the process environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used to start the server.
func (c Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == devSecret {
		return ErrProductionSecret
	}
	switch c.DatabaseDriver {
	case "mysql", "postgres", "memory":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DatabaseDriver)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %d", ErrBcryptCost, c.BcryptCost)
	}
	if c.TokenTTL <= 0 {
		return ErrTokenTTL
	}
	if c.AuthRateLimitRPS > 0 && c.AuthRateLimitBurst < 1 {
		return fmt.Errorf("%w: %d", ErrRateLimitBurst, c.AuthRateLimitBurst)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
