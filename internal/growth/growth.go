// Package growth reads the plant-growth workbook, one sheet per condition.
package growth

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/locate"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
)

// Metric is a growth measure the dashboard aggregates.
type Metric string

const (
	MetricFreshWeight Metric = "fresh_weight_g"
	MetricLeafCount   Metric = "leaf_count"
	MetricShootLength Metric = "shoot_length_mm"
	MetricRootLength  Metric = "root_length_mm"
)

// metricKeywords is checked in order against the folded column label.
var metricKeywords = []struct {
	metric   Metric
	keywords []string
}{
	{MetricFreshWeight, []string{"생중량", "freshweight"}},
	{MetricLeafCount, []string{"잎수", "leaf"}},
	{MetricShootLength, []string{"지상부", "shoot"}},
	{MetricRootLength, []string{"지하부", "뿌리", "root"}},
}

// Table holds one matched sheet. Columns are the header labels verbatim.
type Table struct {
	Condition model.Condition
	Sheet     string
	Columns   []string
	Records   []model.GrowthRecord
}

// Workbook is the parsed growth spreadsheet.
type Workbook struct {
	Tables    []Table
	Unmatched []string
}

// Records concatenates every table's records in sheet order.
func (w Workbook) Records() []model.GrowthRecord {
	var out []model.GrowthRecord
	for _, t := range w.Tables {
		out = append(out, t.Records...)
	}
	return out
}

// ReadFile opens the workbook at path.
func ReadFile(path string, conditions []model.Condition) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Workbook{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return parse(f, conditions)
}

// Read parses a workbook from r.
func Read(r io.Reader, conditions []model.Condition) (Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Workbook{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return parse(f, conditions)
}

func parse(f *excelize.File, conditions []model.Condition) (Workbook, error) {
	var wb Workbook
	for _, sheet := range f.GetSheetList() {
		cond, ok := MatchSheet(sheet, conditions)
		if !ok {
			wb.Unmatched = append(wb.Unmatched, sheet)
			continue
		}

		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return Workbook{}, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		wb.Tables = append(wb.Tables, parseSheet(sheet, cond, rows))
	}
	return wb, nil
}

// MatchSheet returns the condition whose name the sheet name contains. When
// several names are contained the longest wins, so "A1" is not claimed by "A".
func MatchSheet(sheet string, conditions []model.Condition) (model.Condition, bool) {
	name := locate.Normalize(sheet)
	var (
		best  model.Condition
		found bool
	)
	for _, c := range conditions {
		if !locate.Contains(c.Name).Match(name) {
			continue
		}
		if !found || len(c.Name) > len(best.Name) {
			best, found = c, true
		}
	}
	return best, found
}

func parseSheet(sheet string, cond model.Condition, rows [][]string) Table {
	table := Table{Condition: cond, Sheet: sheet}

	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return table
	}
	table.Columns = rows[start]
	metrics := ResolveMetrics(table.Columns)

	for _, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		rec := model.GrowthRecord{
			Condition: cond.Name,
			TargetEC:  cond.TargetEC,
			Metrics:   make(map[string]*float64, len(table.Columns)),
		}
		for i, label := range table.Columns {
			if strings.TrimSpace(label) == "" {
				continue
			}
			raw := ""
			if i < len(row) {
				raw = row[i]
			}
			rec.Metrics[label] = model.ParseFloat(raw)

			switch metrics[i] {
			case MetricFreshWeight:
				rec.FreshWeightGrams = model.ParseFloat(raw)
			case MetricLeafCount:
				rec.LeafCount = model.ParseCount(raw)
			case MetricShootLength:
				rec.ShootLengthMm = model.ParseFloat(raw)
			case MetricRootLength:
				rec.RootLengthMm = model.ParseFloat(raw)
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table
}

// ResolveMetrics returns, per column index, the metric its label denotes or
// "" when none. Each metric binds to its first matching column only.
func ResolveMetrics(columns []string) []Metric {
	out := make([]Metric, len(columns))
	bound := make(map[Metric]bool, len(metricKeywords))
	for i, label := range columns {
		key := strings.ToLower(strings.Join(strings.Fields(locate.Normalize(label)), ""))
		for _, mk := range metricKeywords {
			if bound[mk.metric] || !containsAny(key, mk.keywords) {
				continue
			}
			out[i] = mk.metric
			bound[mk.metric] = true
			break
		}
	}
	return out
}

// LabelFor returns the verbatim column label bound to m, if any.
func (t Table) LabelFor(m Metric) (string, bool) {
	for i, got := range ResolveMetrics(t.Columns) {
		if got == m {
			return t.Columns[i], true
		}
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
