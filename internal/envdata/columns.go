package envdata

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Column is a canonical environment column.
type Column string

const (
	ColumnTime        Column = "time"
	ColumnTemperature Column = "temperature"
	ColumnHumidity    Column = "humidity"
	ColumnPH          Column = "ph"
	ColumnEC          Column = "ec"
)

// Columns lists the canonical columns in output order.
var Columns = []Column{ColumnTime, ColumnTemperature, ColumnHumidity, ColumnPH, ColumnEC}

// headerAliases maps accepted header spellings (already passed through
// HeaderKey) to canonical columns.
var headerAliases = map[string]Column{
	"time":      ColumnTime,
	"timestamp": ColumnTime,
	"datetime":  ColumnTime,
	"date":      ColumnTime,
	"측정시간":      ColumnTime,
	"시간":        ColumnTime,
	"일시":        ColumnTime,

	"temperature": ColumnTemperature,
	"temp":        ColumnTemperature,
	"온도":          ColumnTemperature,

	"humidity": ColumnHumidity,
	"humid":    ColumnHumidity,
	"rh":       ColumnHumidity,
	"습도":       ColumnHumidity,

	"ph": ColumnPH,

	"ec":    ColumnEC,
	"전기전도도": ColumnEC,
}

// HeaderKey folds a raw header cell into the form used for alias lookup:
// NFC, trimmed, lower case, no inner spaces, unit suffix in brackets dropped.
func HeaderKey(raw string) string {
	key := norm.NFC.String(raw)
	key = strings.TrimPrefix(key, "\ufeff")
	if i := strings.IndexAny(key, "(["); i > 0 {
		key = key[:i]
	}
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.Join(strings.Fields(key), "")
}

// ResolveHeader maps canonical columns to their index in header. The first
// header cell resolving to a column wins. Missing lists canonical columns
// that no header cell resolved to.
func ResolveHeader(header []string) (index map[Column]int, missing []Column) {
	index = make(map[Column]int, len(Columns))
	for i, cell := range header {
		col, ok := headerAliases[HeaderKey(cell)]
		if !ok {
			continue
		}
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return index, missing
}
