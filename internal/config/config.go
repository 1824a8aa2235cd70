// Package config loads application configuration from the environment,
// an optional .env file and an optional config.yml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Sweep modes for expired events.
const (
	SweepDelete  = "delete"
	SweepArchive = "archive"
)

const defaultJWTSecret = "dev-secret-change-me"

// Config holds application configuration values.
type Config struct {
	Port   string `mapstructure:"PORT"`
	Env    string `mapstructure:"APP_ENV"`
	LogLvl string `mapstructure:"LOG_LEVEL"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	DBMaxConns int32  `mapstructure:"DB_MAX_CONNS"`

	RedisURL  string `mapstructure:"REDIS_URL"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	StatsTTL             time.Duration `mapstructure:"STATS_TTL"`
	StatsMentorshipPairs int           `mapstructure:"STATS_MENTORSHIP_PAIRS"`
	StatsActiveProjects  int           `mapstructure:"STATS_ACTIVE_PROJECTS"`
	SweepMode            string        `mapstructure:"SWEEP_MODE"`

	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampler  float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

var keys = map[string]any{
	"PORT":                   "8080",
	"APP_ENV":                "development",
	"LOG_LEVEL":              "info",
	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "postgres",
	"DB_PASSWORD":            "postgres",
	"DB_NAME":                "community",
	"DB_SSLMODE":             "disable",
	"DB_MAX_CONNS":           20,
	"REDIS_URL":              "",
	"JWT_SECRET":             defaultJWTSecret,
	"STATS_TTL":              "1h",
	"STATS_MENTORSHIP_PAIRS": 0,
	"STATS_ACTIVE_PROJECTS":  0,
	"SWEEP_MODE":             SweepDelete,
	"TRACING_ENABLED":        false,
	"TRACING_EXPORTER":       "stdout",
	"OTLP_ENDPOINT":          "localhost:4318",
	"TRACING_SAMPLER_RATIO":  1.0,
}

// Load reads configuration. Values from the process environment win over
// .env, which wins over config.yml, which wins over the defaults.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	for k, def := range keys {
		v.SetDefault(k, def)
		// Unmarshal only sees env values for keys viper knows about.
		_ = v.BindEnv(k)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.SweepMode = strings.ToLower(strings.TrimSpace(cfg.SweepMode))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV names a production environment.
func (c *Config) IsProduction() bool {
	e := strings.ToLower(c.Env)
	return e == "production" || e == "prod"
}

// Validate checks required values and production safety rules.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.StatsTTL <= 0 {
		return errors.New("STATS_TTL must be positive")
	}
	if c.StatsMentorshipPairs < 0 || c.StatsActiveProjects < 0 {
		return errors.New("stats placeholders must not be negative")
	}
	if c.SweepMode != SweepDelete && c.SweepMode != SweepArchive {
		return fmt.Errorf("SWEEP_MODE must be %q or %q, got %q", SweepDelete, SweepArchive, c.SweepMode)
	}
	if c.DBMaxConns <= 0 {
		return errors.New("DB_MAX_CONNS must be positive")
	}

	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret || len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be changed and at least 32 characters in production")
		}
		if c.DBPassword == "postgres" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" {
			slog.Warn("DB_SSLMODE is 'disable' in production")
		}
	}
	return nil
}

// DSN builds a libpq-compatible connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// LogLevel parses LOG_LEVEL, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLvl)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
