package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yerzhan/acecards/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "DEFAULT_SESSION_SIZE", "MAX_SESSION_SIZE"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:acecards.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 15, cfg.DefaultSessionSize)
	assert.Equal(t, 100, cfg.MaxSessionSize)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DEFAULT_SESSION_SIZE", "20")
	t.Setenv("MAX_SESSION_SIZE", "50")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 20, cfg.DefaultSessionSize)
	assert.Equal(t, 50, cfg.MaxSessionSize)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "LOUD")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_SESSION_SIZE", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.DefaultSessionSize)
}

func TestLoad_SessionSizeBounds(t *testing.T) {
	tests := []struct {
		name       string
		defaultStr string
		maxStr     string
		wantErr    bool
	}{
		{
			name:       "zero default rejected",
			defaultStr: "0",
			maxStr:     "100",
			wantErr:    true,
		},
		{
			name:       "default above cap rejected",
			defaultStr: "150",
			maxStr:     "200",
			wantErr:    true,
		},
		{
			name:       "default exceeding max rejected",
			defaultStr: "60",
			maxStr:     "50",
			wantErr:    true,
		},
		{
			name:       "valid pair accepted",
			defaultStr: "10",
			maxStr:     "30",
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DEFAULT_SESSION_SIZE", tt.defaultStr)
			t.Setenv("MAX_SESSION_SIZE", tt.maxStr)

			_, err := config.Load()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
