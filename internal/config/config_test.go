package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "8501", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5000, cfg.MaxTextLength)
	assert.Equal(t, 500, cfg.HistoryLimit)
	assert.Equal(t, 1000, cfg.MaxWebSocketConnections)
	assert.Equal(t, 24*time.Hour, cfg.HistoryTTL)
	assert.Equal(t, 168*time.Hour, cfg.SessionMaxAge)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("HISTORY_LIMIT", "100")
	t.Setenv("HISTORY_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, time.Hour, cfg.HistoryTTL)
}

func TestLoad_ProductionRequiresSessionSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, "SESSION_SECRET is required in production", err.Error())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		envVar  string
		value   string
		wantErr string
	}{
		{"zero text length", "MAX_TEXT_LENGTH", "0", "MAX_TEXT_LENGTH must be positive, got 0"},
		{"negative history limit", "HISTORY_LIMIT", "-1", "HISTORY_LIMIT must be positive, got -1"},
		{"zero history TTL", "HISTORY_TTL", "0s", "HISTORY_TTL must be positive, got 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
