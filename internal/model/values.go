package model

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat returns nil for blank, non-numeric, NaN or infinite input.
func ParseFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseCount returns nil unless raw holds a non-negative whole number.
func ParseCount(raw string) *int {
	v := ParseFloat(raw)
	if v == nil || *v < 0 || *v != math.Trunc(*v) || *v > math.MaxInt32 {
		return nil
	}
	n := int(*v)
	return &n
}
