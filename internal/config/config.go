package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	Port            string
	BatchSize       int
	UploadBodyLimit string
	Location        *time.Location
	AutoMigrate     bool
	// SessionIdleTTL is how long an uploaded import may wait for execution
	// before it is cancelled.
	SessionIdleTTL  time.Duration
}

// Load reads the environment, filling it first from a .env file when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Port:            getEnv("PORT", "8080"),
		BatchSize:       parseIntEnv("IMPORT_BATCH_SIZE", 50),
		UploadBodyLimit: getEnv("UPLOAD_BODY_LIMIT", "10M"),
		AutoMigrate:     parseBoolEnv("AUTO_MIGRATE", false),
		SessionIdleTTL:  parseDurationEnv("SESSION_IDLE_TTL", 30*time.Minute),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}

	loc, err := time.LoadLocation(getEnv("IMPORT_TIMEZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("load IMPORT_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseBoolEnv(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
