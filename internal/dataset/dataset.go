// Package dataset assembles the canonical environment and growth tables from
// a data directory.
package dataset

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/envdata"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/growth"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/locate"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
)

const (
	environmentExt = ".csv"
	growthExt      = ".xlsx"
)

// Options configures a load.
type Options struct {
	Registry model.Registry
	// Location applies to timestamps without an offset. Nil means UTC.
	Location *time.Location
}

// Dataset is the canonical pair of tables. Callers treat it as read-only.
type Dataset struct {
	Conditions      []model.Condition
	Environment     []model.EnvironmentRecord
	Growth          []model.GrowthRecord
	GrowthColumns   map[string][]string
	UnmatchedSheets []string
}

// EnvironmentFor returns the readings of one condition in load order.
func (d *Dataset) EnvironmentFor(condition string) []model.EnvironmentRecord {
	var out []model.EnvironmentRecord
	for _, r := range d.Environment {
		if r.Condition == condition {
			out = append(out, r)
		}
	}
	return out
}

// GrowthFor returns the plants of one condition in load order.
func (d *Dataset) GrowthFor(condition string) []model.GrowthRecord {
	var out []model.GrowthRecord
	for _, r := range d.Growth {
		if r.Condition == condition {
			out = append(out, r)
		}
	}
	return out
}

// Load reads every source file in dir. A fatal problem returns a *LoadError
// and no dataset; recoverable problems come back as warnings.
func Load(dir string, opts Options) (*Dataset, []Warning, error) {
	if err := opts.Registry.Validate(); err != nil {
		return nil, nil, &LoadError{Kind: KindInvalidRegistry, Err: err}
	}

	loc, err := locate.Open(dir)
	if err != nil {
		if errors.Is(err, locate.ErrNoDirectory) {
			return nil, nil, &LoadError{Kind: KindMissingDirectory, Path: dir, Err: err}
		}
		return nil, nil, &LoadError{Kind: KindUnreadableDirectory, Path: dir, Err: err}
	}

	env, envWarnings, err := LoadEnvironment(loc, opts)
	if err != nil {
		return nil, nil, err
	}
	wb, growthWarnings, err := LoadGrowth(loc, opts)
	if err != nil {
		return nil, nil, err
	}

	ds := &Dataset{
		Conditions:      append([]model.Condition(nil), opts.Registry.Conditions...),
		Environment:     env,
		Growth:          wb.Records(),
		GrowthColumns:   make(map[string][]string, len(wb.Tables)),
		UnmatchedSheets: wb.Unmatched,
	}
	for _, t := range wb.Tables {
		if _, ok := ds.GrowthColumns[t.Condition.Name]; !ok {
			ds.GrowthColumns[t.Condition.Name] = t.Columns
		}
	}

	return ds, append(envWarnings, growthWarnings...), nil
}

// LoadEnvironment reads one delimited-text file per condition in registry
// order. Missing files are warnings unless every condition's file is missing.
func LoadEnvironment(loc *locate.Locator, opts Options) ([]model.EnvironmentRecord, []Warning, error) {
	var (
		records  []model.EnvironmentRecord
		warnings []Warning
		found    int
	)

	for _, cond := range opts.Registry.Conditions {
		res := loc.Find(environmentRule(cond, opts.Registry))
		if !res.Found() {
			warnings = append(warnings, Warning{
				Kind:      KindMissingConditionFile,
				Condition: cond.Name,
				Message:   fmt.Sprintf("no environment file for %s", cond.Name),
			})
			continue
		}
		found++
		if res.Ambiguous() {
			warnings = append(warnings, ambiguous(cond.Name, res))
		}

		table, err := envdata.ReadFile(res.Path, cond, opts.Location)
		if err != nil {
			return nil, nil, &LoadError{Kind: KindUnparseableFile, Path: res.Path, Err: err}
		}
		for _, col := range table.MissingColumns {
			warnings = append(warnings, Warning{
				Kind:      KindMissingColumn,
				Condition: cond.Name,
				Path:      res.Path,
				Message:   fmt.Sprintf("column %q not found in %s", col, res.Path),
			})
		}
		records = append(records, table.Records...)
	}

	if found == 0 {
		return nil, nil, &LoadError{
			Kind: KindMissingFatalFile,
			Path: loc.Dir(),
			Err:  errors.New("no environment files found"),
		}
	}
	return records, warnings, nil
}

// LoadGrowth reads the single growth workbook.
func LoadGrowth(loc *locate.Locator, opts Options) (growth.Workbook, []Warning, error) {
	var warnings []Warning

	res := loc.Find(locate.Keywords(growthExt, opts.Registry.GrowthKeyword))
	if !res.Found() {
		return growth.Workbook{}, nil, &LoadError{
			Kind: KindMissingFatalFile,
			Path: loc.Dir(),
			Err:  errors.New("no growth workbook found"),
		}
	}
	if res.Ambiguous() {
		warnings = append(warnings, ambiguous("", res))
	}

	wb, err := growth.ReadFile(res.Path, opts.Registry.Conditions)
	if err != nil {
		return growth.Workbook{}, nil, &LoadError{Kind: KindUnparseableFile, Path: res.Path, Err: err}
	}
	for _, sheet := range wb.Unmatched {
		warnings = append(warnings, Warning{
			Kind:    KindUnmatchedSheet,
			Path:    res.Path,
			Sheet:   sheet,
			Message: fmt.Sprintf("sheet %q matches no configured condition", sheet),
		})
	}
	return wb, warnings, nil
}

// environmentRule matches cond's environment file but not one that belongs to
// a longer condition name containing cond's, so "A" never takes "A1_...".
func environmentRule(cond model.Condition, reg model.Registry) locate.Rule {
	rule := locate.Keywords(environmentExt, cond.Name, reg.EnvironmentKeyword)
	var longer []locate.Rule
	for _, other := range reg.Conditions {
		if len(other.Name) > len(cond.Name) && strings.Contains(other.Name, cond.Name) {
			longer = append(longer, locate.Not(locate.Contains(other.Name)))
		}
	}
	if len(longer) == 0 {
		return rule
	}
	return locate.All(append([]locate.Rule{rule}, longer...)...)
}

func ambiguous(condition string, res locate.Result) Warning {
	return Warning{
		Kind:       KindAmbiguousMatch,
		Condition:  condition,
		Path:       res.Path,
		Candidates: res.Candidates,
		Message:    fmt.Sprintf("%d files match, using %s (candidates: %s)", len(res.Candidates), res.Path, strings.Join(res.Candidates, ", ")),
	}
}
