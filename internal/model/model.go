package model

import "time"

// Condition is one experimental arm with a fixed target EC (dS/m).
type Condition struct {
	Name     string  `json:"name" yaml:"name"`
	TargetEC float64 `json:"target_ec" yaml:"target_ec"`
}

// EnvironmentRecord is one timestamped sensor reading. Nil fields mark cells
// that were missing or failed to parse.
type EnvironmentRecord struct {
	Condition   string     `json:"condition"`
	TargetEC    float64    `json:"target_ec"`
	Time        *time.Time `json:"time"`
	Temperature *float64   `json:"temperature"`
	Humidity    *float64   `json:"humidity"`
	PH          *float64   `json:"ph"`
	EC          *float64   `json:"ec"`
}

// GrowthRecord is one plant measurement. Metrics holds every numeric cell of
// the source row keyed by its verbatim column label.
type GrowthRecord struct {
	Condition        string              `json:"condition"`
	TargetEC         float64             `json:"target_ec"`
	FreshWeightGrams *float64            `json:"fresh_weight_g"`
	LeafCount        *int                `json:"leaf_count"`
	ShootLengthMm    *float64            `json:"shoot_length_mm"`
	RootLengthMm     *float64            `json:"root_length_mm,omitempty"`
	Metrics          map[string]*float64 `json:"metrics"`
}
