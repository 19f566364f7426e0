package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEnvironmentKeyword = "환경데이터"
	DefaultGrowthKeyword      = "생육결과"
)

// Registry is the static condition configuration for one dataset directory.
type Registry struct {
	Conditions         []Condition `yaml:"conditions"`
	EnvironmentKeyword string      `yaml:"environment_keyword"`
	GrowthKeyword      string      `yaml:"growth_keyword"`
}

// DefaultRegistry returns the four participating schools.
func DefaultRegistry() Registry {
	return Registry{
		Conditions: []Condition{
			{Name: "송도고", TargetEC: 1.0},
			{Name: "하늘고", TargetEC: 2.0},
			{Name: "아라고", TargetEC: 4.0},
			{Name: "동산고", TargetEC: 8.0},
		},
		EnvironmentKeyword: DefaultEnvironmentKeyword,
		GrowthKeyword:      DefaultGrowthKeyword,
	}
}

// LoadRegistry reads a YAML condition file. Missing keywords fall back to the
// defaults.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, fmt.Errorf("read conditions file: %w", err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return Registry{}, fmt.Errorf("decode conditions file: %w", err)
	}
	if reg.EnvironmentKeyword == "" {
		reg.EnvironmentKeyword = DefaultEnvironmentKeyword
	}
	if reg.GrowthKeyword == "" {
		reg.GrowthKeyword = DefaultGrowthKeyword
	}
	for i := range reg.Conditions {
		reg.Conditions[i].Name = norm.NFC.String(strings.TrimSpace(reg.Conditions[i].Name))
	}
	reg.EnvironmentKeyword = norm.NFC.String(reg.EnvironmentKeyword)
	reg.GrowthKeyword = norm.NFC.String(reg.GrowthKeyword)

	if err := reg.Validate(); err != nil {
		return Registry{}, err
	}
	return reg, nil
}

// Validate checks that names are unique and non-empty and every target EC is positive.
func (r Registry) Validate() error {
	if len(r.Conditions) == 0 {
		return errors.New("at least one condition is required")
	}
	seen := make(map[string]struct{}, len(r.Conditions))
	for _, c := range r.Conditions {
		if c.Name == "" {
			return errors.New("condition name is required")
		}
		if c.TargetEC <= 0 {
			return fmt.Errorf("condition %s: target_ec must be positive", c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate condition %s", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Lookup returns the condition with the given name.
func (r Registry) Lookup(name string) (Condition, bool) {
	name = norm.NFC.String(name)
	for _, c := range r.Conditions {
		if c.Name == name {
			return c, true
		}
	}
	return Condition{}, false
}
