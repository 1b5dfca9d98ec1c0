package domain

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat converts free-form numeric input to a float. It tolerates
// decimal commas and surrounding whitespace and returns nil when the text
// is empty or not a number, so callers can treat "" and garbage alike as
// a missing measurement.
func ParseFloat(raw string) *float64 {
	txt := strings.TrimSpace(raw)
	if txt == "" {
		return nil
	}
	txt = strings.ReplaceAll(txt, ",", ".")
	v, err := strconv.ParseFloat(txt, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Round1 rounds to one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to three decimals.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Float returns a pointer to v. Convenience for building records.
func Float(v float64) *float64 { return &v }

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
