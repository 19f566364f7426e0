package models

import "time"

// ConditionRow is one experimental arm as stored.
type ConditionRow struct {
	Name     string
	TargetEC float64
}

// ReadingRow is one environment reading ready for insertion. Seq preserves
// the source row order within a condition.
type ReadingRow struct {
	Condition   string
	Seq         int
	TS          *time.Time
	Temperature *float64
	Humidity    *float64
	PH          *float64
	EC          *float64
}

// PlantRow is one growth measurement ready for insertion. Metrics keeps the
// workbook's verbatim column labels.
type PlantRow struct {
	Condition   string
	Seq         int
	FreshWeight *float64
	LeafCount   *int
	ShootLength *float64
	RootLength  *float64
	Metrics     map[string]*float64
}
