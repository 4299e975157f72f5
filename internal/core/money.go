// Package core provides the domain types and pure logic of the tracker:
// tolerant amount parsing, the canonical record shape, and the calendar
// month helpers used by the generator and the summaries.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount converts a stored amount string to a float.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Empty
// input and anything that still fails to parse after normalization yield 0:
// summaries and display code must not break on malformed legacy rows, so
// this function never returns an error.
//
// Thousands separators are not understood: "1.234,56" normalizes to
// "1.234.56" and falls back to 0. Known limitation, kept as-is.
func ParseAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// AmountOf converts a value of unknown shape to a float. The Sheets API
// hands back untyped cells; numeric values pass through directly and
// everything else goes through ParseAmount.
func AmountOf(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return ParseAmount(n)
	}
	return ParseAmount(fmt.Sprint(v))
}

// FormatAmount renders an amount the way the stored tables do, with a dot
// separator and two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
