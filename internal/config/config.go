// Package config holds settings shared by every service: where the data
// lives and how to interpret it.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
)

const (
	defaultDataDir  = "data"
	defaultTimezone = "Asia/Seoul"
)

// Data describes the source directory and its condition registry.
type Data struct {
	Dir      string
	Registry model.Registry
	Location *time.Location
	Debug    bool
}

// LoadData reads DATA_DIR, CONDITIONS_FILE, DATA_TIMEZONE and LOG_DEBUG.
// The caller loads .env first.
func LoadData() (Data, error) {
	cfg := Data{Dir: defaultDataDir, Registry: model.DefaultRegistry()}

	if v := strings.TrimSpace(os.Getenv("DATA_DIR")); v != "" {
		cfg.Dir = v
	}

	if path := strings.TrimSpace(os.Getenv("CONDITIONS_FILE")); path != "" {
		reg, err := model.LoadRegistry(path)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONDITIONS_FILE: %w", err)
		}
		cfg.Registry = reg
	}

	tz := strings.TrimSpace(os.Getenv("DATA_TIMEZONE"))
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("invalid DATA_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.Debug = ParseBool(os.Getenv("LOG_DEBUG"))
	return cfg, nil
}

// Options converts the settings into load options.
func (d Data) Options() dataset.Options {
	return dataset.Options{Registry: d.Registry, Location: d.Location}
}

// ParseBool reports whether v is "1" or "true" in any case.
func ParseBool(v string) bool {
	v = strings.TrimSpace(v)
	return v == "1" || strings.EqualFold(v, "true")
}
