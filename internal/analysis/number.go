package analysis

import (
	"math"
	"strconv"
	"strings"
)

// IsEmptyToken reports whether raw is one of the placeholders that stand for
// "no value": blank, "-" or "(Empty)" in any case.
func IsEmptyToken(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || s == "-" || strings.EqualFold(s, "(empty)")
}

// ParseNumber normalizes a raw cell. ok is false for the empty sentinel, which
// covers placeholders and anything that does not read as a number. The first
// decimal comma is read as a point; stray unit or currency characters are
// dropped when the value does not parse as is.
func ParseNumber(raw string) (v float64, ok bool) {
	if IsEmptyToken(raw) {
		return 0, false
	}
	s := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(f)
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatValue renders a cell for display: placeholders become "-".
func FormatValue(raw string) string {
	if IsEmptyToken(raw) {
		return "-"
	}
	return strings.TrimSpace(raw)
}
