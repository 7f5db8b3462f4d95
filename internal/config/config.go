package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string `validate:"required"`
	DBPath             string `validate:"required"`
	LogLevel           string `validate:"oneof=DEBUG INFO WARN ERROR"`
	DefaultSessionSize int    `validate:"min=1,max=100"`
	MaxSessionSize     int    `validate:"min=1,max=500"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	cfg := Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:acecards.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		DefaultSessionSize: envIntOr("DEFAULT_SESSION_SIZE", 15),
		MaxSessionSize:     envIntOr("MAX_SESSION_SIZE", 100),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.DefaultSessionSize > cfg.MaxSessionSize {
		return Config{}, fmt.Errorf("DEFAULT_SESSION_SIZE (%d) exceeds MAX_SESSION_SIZE (%d)",
			cfg.DefaultSessionSize, cfg.MaxSessionSize)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
