package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.StatsTTL)
	assert.Equal(t, SweepDelete, cfg.SweepMode)
	assert.Equal(t, int32(20), cfg.DBMaxConns)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("STATS_TTL", "15m")
	t.Setenv("SWEEP_MODE", "ARCHIVE")
	t.Setenv("STATS_MENTORSHIP_PAIRS", "12")
	t.Setenv("DB_NAME", "community_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.StatsTTL)
	assert.Equal(t, SweepArchive, cfg.SweepMode)
	assert.Equal(t, 12, cfg.StatsMentorshipPairs)
	assert.Contains(t, cfg.DSN(), "dbname=community_test")
}

func TestLoad_RejectsUnknownSweepMode(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SWEEP_MODE", "shred")

	_, err := Load()
	assert.ErrorContains(t, err, "SWEEP_MODE")
}

func TestValidate_Production(t *testing.T) {
	base := Config{
		Port:       "8080",
		Env:        "production",
		JWTSecret:  defaultJWTSecret,
		DBPassword: "postgres",
		DBSSLMode:  "require",
		DBMaxConns: 10,
		StatsTTL:   time.Hour,
		SweepMode:  SweepDelete,
	}

	t.Run("default secret rejected", func(t *testing.T) {
		cfg := base
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("weak db password rejected", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})

	t.Run("hardened config accepted", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
		cfg.DBPassword = "s3cure-and-long"
		assert.NoError(t, cfg.Validate())
	})
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLvl: "debug"}).LogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLvl: "WARN"}).LogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLvl: "loud"}).LogLevel())
}
