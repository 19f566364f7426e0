package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "API_PORT", "WATCH_DATA_DIR", "WATCH_DEBOUNCE", "API_BEARER_TOKEN", "DATABASE_URL", "CONDITIONS_FILE", "DATA_DIR"} {
		t.Setenv(k, "")
	}
	t.Setenv("DATA_TIMEZONE", "UTC")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.True(t, cfg.WatchDataDir)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	assert.Empty(t, cfg.BearerToken)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("WATCH_DATA_DIR", "false")
	t.Setenv("WATCH_DEBOUNCE", "2s")
	t.Setenv("API_BEARER_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.WatchDataDir)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
	assert.Equal(t, "secret", cfg.BearerToken)

	t.Setenv("PORT", "7070")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "zero")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("WATCH_DEBOUNCE", "soon")
	_, err = Load()
	assert.Error(t, err)
}
