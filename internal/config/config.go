package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dukerupert/familyflow/internal/service"
)

// Config holds the application configuration.
type Config struct {
	LogLevel   string
	LogFormat  string
	LedgerPath string
	Service    service.Config
}

// Load reads a .env file if present, then the FAMILYFLOW_* environment
// variables. Unset variables keep their defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:   getEnv("FAMILYFLOW_LOG_LEVEL", "info"),
		LogFormat:  getEnv("FAMILYFLOW_LOG_FORMAT", "text"),
		LedgerPath: getEnv("FAMILYFLOW_LEDGER_PATH", "familyflow.db"),
		Service:    service.DefaultConfig(),
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("FAMILYFLOW_LOG_FORMAT: must be text or json, got %q", cfg.LogFormat)
	}

	var err error
	if cfg.Service.MinDelay, err = durationEnv("FAMILYFLOW_MIN_DELAY", cfg.Service.MinDelay); err != nil {
		return nil, err
	}
	if cfg.Service.MaxDelay, err = durationEnv("FAMILYFLOW_MAX_DELAY", cfg.Service.MaxDelay); err != nil {
		return nil, err
	}
	if v := os.Getenv("FAMILYFLOW_FAILURE_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("FAMILYFLOW_FAILURE_RATE: %w", err)
		}
		cfg.Service.FailureRate = rate
	}

	if err := cfg.Service.Validate(); err != nil {
		return nil, fmt.Errorf("service config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
