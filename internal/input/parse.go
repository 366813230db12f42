// Package input converts between text fields and numbers the way a form
// front end does: blank or malformed values mean "no input", never zero.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Err* are the errors exported by this package.
var (
	ErrMissing   = errors.New("value missing")
	ErrNotNumber = errors.New("not a finite number")
	ErrCount     = errors.New("wrong number of values")
)

// ParseNumber parses one trimmed decimal value.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissing
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return v, nil
}

// ParseNumbers splits s on commas, semicolons and whitespace and parses
// exactly n values.
func ParseNumbers(s string, n int) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, ErrMissing
	}
	if len(fields) != n {
		return nil, fmt.Errorf("%w: got %d want %d", ErrCount, len(fields), n)
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := ParseNumber(f)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// FormatValue rounds v to decimals places and trims trailing zeros.
// Non-finite values format as "0".
func FormatValue(v float64, decimals int) string {
	factor := math.Pow(10, float64(decimals))
	r := math.Round(v*factor) / factor
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return "0"
	}
	if r == 0 {
		// Avoid "-0".
		return "0"
	}
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	s := strconv.FormatFloat(r, 'f', decimals, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatValues formats each value and joins them with ", ".
func FormatValues(vs []float64, decimals int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatValue(v, decimals)
	}
	return strings.Join(parts, ", ")
}

// WrapAngleDegrees maps an angle into [-180, 180).
func WrapAngleDegrees(v float64) float64 {
	m := math.Mod(v+180, 360)
	if m < 0 {
		m += 360
	}
	return m - 180
}
