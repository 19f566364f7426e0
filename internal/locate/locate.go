// Package locate resolves logical dataset names to files in a data directory,
// comparing names in Unicode NFC so that files written on macOS (NFD) and on
// other systems (NFC) resolve the same way.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoDirectory is returned when the data directory does not exist.
var ErrNoDirectory = errors.New("data directory does not exist")

// Result is the outcome of a lookup. Path is empty when nothing matched.
// Candidates lists every matching path in enumeration order.
type Result struct {
	Path       string
	Candidates []string
}

// Found reports whether any entry matched.
func (r Result) Found() bool { return r.Path != "" }

// Ambiguous reports whether more than one entry matched.
func (r Result) Ambiguous() bool { return len(r.Candidates) > 1 }

// Locator enumerates a directory once and answers lookups against that listing.
type Locator struct {
	dir   string
	names []string // NFC-normalized, same order as files
	files []string
}

// Open lists dir. A missing directory yields ErrNoDirectory.
func Open(dir string) (*Locator, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDirectory, dir)
		}
		return nil, fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list data directory: %w", err)
	}

	loc := &Locator{dir: dir}
	for _, e := range entries {
		// Dot files include macOS AppleDouble companions ("._name.xlsx").
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		loc.names = append(loc.names, Normalize(e.Name()))
		loc.files = append(loc.files, filepath.Join(dir, e.Name()))
	}
	return loc, nil
}

// Dir returns the directory the locator was opened on.
func (l *Locator) Dir() string { return l.dir }

// Find returns the first entry matching rule, plus all other candidates.
func (l *Locator) Find(rule Rule) Result {
	var res Result
	for i, name := range l.names {
		if !rule.Match(name) {
			continue
		}
		if res.Path == "" {
			res.Path = l.files[i]
		}
		res.Candidates = append(res.Candidates, l.files[i])
	}
	return res
}

// Find is a one-shot helper for a single lookup.
func Find(dir string, rule Rule) (Result, error) {
	loc, err := Open(dir)
	if err != nil {
		return Result{}, err
	}
	return loc.Find(rule), nil
}
