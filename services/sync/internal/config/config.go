package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	shared "github.com/02loveslollipop/polar-ec-dashboard/internal/config"
)

const defaultTimeout = 2 * time.Minute

// Config holds runtime configuration for the snapshot publisher.
type Config struct {
	Data        shared.Data
	DatabaseURL string
	Timeout     time.Duration
	DryRun      bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{Timeout: defaultTimeout}

	data, err := shared.LoadData()
	if err != nil {
		return cfg, err
	}
	cfg.Data = data

	cfg.DryRun = shared.ParseBool(os.Getenv("DRY_RUN"))

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" && !cfg.DryRun {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if v := strings.TrimSpace(os.Getenv("SYNC_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SYNC_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}
