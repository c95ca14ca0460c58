package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration for the simulation daemon and
// tooling, loaded from environment variables.
type Config struct {
	Environment string
	LogLevel    slog.Level

	RedisURL string
	DataDir  string

	// WorldID selects which world definition in DataDir to simulate.
	WorldID string

	// SessionID resumes an existing session when set; empty starts a
	// new one.
	SessionID string

	// TickSeconds is the wall-clock tick interval; TimeScale maps one
	// wall-clock second to this many simulated seconds.
	TickSeconds float64
	TimeScale   float64
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		WorldID:     getEnv("WORLD_ID", ""),
		SessionID:   getEnv("SESSION_ID", ""),
	}

	var err error
	cfg.TickSeconds, err = getEnvFloat("TICK_SECONDS", 1.0)
	if err != nil {
		return nil, err
	}
	cfg.TimeScale, err = getEnvFloat("TIME_SCALE", 60.0)
	if err != nil {
		return nil, err
	}
	if cfg.TickSeconds <= 0 {
		return nil, fmt.Errorf("TICK_SECONDS must be positive, got %v", cfg.TickSeconds)
	}
	if cfg.TimeScale <= 0 {
		return nil, fmt.Errorf("TIME_SCALE must be positive, got %v", cfg.TimeScale)
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
