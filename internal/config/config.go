package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv        string `env:"APP_ENV" default:"development"`
	Host          string `env:"HOST" default:"127.0.0.1"`
	Port          string `env:"PORT" default:"8501"`
	SessionSecret string `env:"SESSION_SECRET"`
	RedisURL      string `env:"REDIS_URL"`
	LogLevel      string `env:"LOG_LEVEL" default:"info"`
	LogFormat     string `env:"LOG_FORMAT" default:"text"`

	MaxTextLength           int `env:"MAX_TEXT_LENGTH" default:"5000"`
	HistoryLimit            int `env:"HISTORY_LIMIT" default:"500"`
	MaxWebSocketConnections int `env:"MAX_WEBSOCKET_CONNECTIONS" default:"1000"`

	HistoryTTL    time.Duration `env:"HISTORY_TTL" default:"24h"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" default:"168h"` // 7 days
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
	if cfg.AppEnv == "production" && cfg.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	if cfg.MaxTextLength <= 0 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be positive, got %d", cfg.MaxTextLength)
	}
	if cfg.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
	}
	if cfg.HistoryTTL <= 0 {
		return fmt.Errorf("HISTORY_TTL must be positive, got %s", cfg.HistoryTTL)
	}
	return nil
}
