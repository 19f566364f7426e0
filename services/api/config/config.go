package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	shared "github.com/02loveslollipop/polar-ec-dashboard/internal/config"
)

// Config holds environment-driven settings for the dashboard API.
type Config struct {
	Data          shared.Data
	DatabaseURL   string
	Port          int
	BearerToken   string
	WatchDataDir  bool
	WatchDebounce time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:          8080,
		WatchDataDir:  true,
		WatchDebounce: 500 * time.Millisecond,
	}

	data, err := shared.LoadData()
	if err != nil {
		return cfg, err
	}
	cfg.Data = data

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if v := strings.TrimSpace(os.Getenv("WATCH_DATA_DIR")); v != "" {
		cfg.WatchDataDir = shared.ParseBool(v)
	}

	if v := strings.TrimSpace(os.Getenv("WATCH_DEBOUNCE")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("invalid WATCH_DEBOUNCE: %s", v)
		}
		cfg.WatchDebounce = d
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
