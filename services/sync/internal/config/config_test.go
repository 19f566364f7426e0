package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "DRY_RUN", "SYNC_TIMEOUT", "CONDITIONS_FILE", "DATA_DIR"} {
		t.Setenv(k, "")
	}
	t.Setenv("DATA_TIMEZONE", "UTC")
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoadDryRunWithoutDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRY_RUN", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", " postgres://localhost/ecdash ")
	t.Setenv("SYNC_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/ecdash", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.DryRun)

	t.Setenv("SYNC_TIMEOUT", "later")
	_, err = Load()
	assert.Error(t, err)
}
