package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, 1.0, cfg.TickSeconds)
	assert.Equal(t, 60.0, cfg.TimeScale)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORLD_ID", "village")
	t.Setenv("TICK_SECONDS", "0.5")
	t.Setenv("TIME_SCALE", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "village", cfg.WorldID)
	assert.Equal(t, 0.5, cfg.TickSeconds)
	assert.Equal(t, 120.0, cfg.TimeScale)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TICK_SECONDS", "not-a-number")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TICK_SECONDS", "-1")
	_, err = Load()
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}
