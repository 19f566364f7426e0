package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies load failures and warnings.
type Kind string

const (
	KindInvalidRegistry      Kind = "invalid_registry"
	KindMissingDirectory     Kind = "missing_directory"
	KindUnreadableDirectory  Kind = "unreadable_directory"
	KindMissingFatalFile     Kind = "missing_fatal_file"
	KindUnparseableFile      Kind = "unparseable_file"
	KindMissingConditionFile Kind = "missing_condition_file"
	KindAmbiguousMatch       Kind = "ambiguous_match"
	KindMissingColumn        Kind = "missing_column"
	KindUnmatchedSheet       Kind = "unmatched_sheet"
)

var (
	ErrInvalidRegistry     = errors.New("condition registry is invalid")
	ErrMissingDirectory    = errors.New("data directory not found")
	ErrUnreadableDirectory = errors.New("data directory could not be listed")
	ErrMissingFile         = errors.New("required data file not found")
	ErrUnparseable         = errors.New("data file could not be parsed")
)

// LoadError is the single fatal outcome of a load.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *LoadError) Is(target error) bool {
	switch e.Kind {
	case KindInvalidRegistry:
		return target == ErrInvalidRegistry
	case KindUnreadableDirectory:
		return target == ErrUnreadableDirectory
	case KindMissingDirectory:
		return target == ErrMissingDirectory
	case KindMissingFatalFile:
		return target == ErrMissingFile
	case KindUnparseableFile:
		return target == ErrUnparseable
	}
	return false
}

// Warning is a recoverable issue reported alongside a successful load.
type Warning struct {
	Kind       Kind     `json:"kind"`
	Condition  string   `json:"condition,omitempty"`
	Path       string   `json:"path,omitempty"`
	Sheet      string   `json:"sheet,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Message    string   `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
