// Package envdata parses per-condition environment sensor logs.
package envdata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
)

// ErrNoHeader is returned when a file holds no header row.
var ErrNoHeader = errors.New("missing header row")

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
}

// Table is the parsed content of one environment file.
type Table struct {
	Condition      model.Condition
	Records        []model.EnvironmentRecord
	MissingColumns []Column
}

// ReadFile parses the environment file at path for cond.
func ReadFile(path string, cond model.Condition, loc *time.Location) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data), cond, loc)
}

// Parse reads delimited text with a header row. Cells that fail to parse
// become nil on their field; rows are never dropped.
func Parse(r io.Reader, cond model.Condition, loc *time.Location) (Table, error) {
	if loc == nil {
		loc = time.UTC
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}
	data, err = decodeText(data)
	if err != nil {
		return Table{}, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, ErrNoHeader
	}
	if err != nil {
		return Table{}, fmt.Errorf("parse header: %w", err)
	}

	index, missing := ResolveHeader(header)
	table := Table{Condition: cond, MissingColumns: missing}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("parse row: %w", err)
		}

		rec := model.EnvironmentRecord{
			Condition: cond.Name,
			TargetEC:  cond.TargetEC,
		}
		rec.Time = ParseTime(cell(row, index, ColumnTime), loc)
		rec.Temperature = model.ParseFloat(cell(row, index, ColumnTemperature))
		rec.Humidity = model.ParseFloat(cell(row, index, ColumnHumidity))
		rec.PH = model.ParseFloat(cell(row, index, ColumnPH))
		rec.EC = model.ParseFloat(cell(row, index, ColumnEC))
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

// decodeText strips a UTF-8 BOM and falls back to EUC-KR for non UTF-8 input.
func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return data, nil
	}
	out, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode euc-kr: %w", err)
	}
	return out, nil
}

func cell(row []string, index map[Column]int, col Column) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ParseTime tries the known layouts. Values without an offset are read in loc.
func ParseTime(raw string, loc *time.Location) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t
		}
	}
	return nil
}
