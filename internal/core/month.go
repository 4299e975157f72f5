package core

import (
	"fmt"
	"strconv"
	"time"
)

// monthNames are the Portuguese month names used for archive tab titles.
var monthNames = [12]string{
	"JANEIRO", "FEVEREIRO", "MARÇO", "ABRIL", "MAIO", "JUNHO",
	"JULHO", "AGOSTO", "SETEMBRO", "OUTUBRO", "NOVEMBRO", "DEZEMBRO",
}

// MonthName returns the uppercase Portuguese name for month 1..12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// MonthKey returns the ledger key for a point in time, e.g. "2024-03".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// ArchiveName returns the monthly archive tab title, e.g. "MARÇO - 2024".
func ArchiveName(year, month int) string {
	return fmt.Sprintf("%s - %d", MonthName(month), year)
}

// ArchiveNameForDate derives the archive tab title from a stored
// "YYYY-MM-DD" date. It returns false when the date cannot be parsed.
func ArchiveNameForDate(date string) (string, bool) {
	year, month, ok := splitYearMonth(date)
	if !ok {
		return "", false
	}
	return ArchiveName(year, month), true
}

// FilterCurrentMonth keeps only the records whose date falls in now's
// calendar month and year. Records with a malformed date are dropped
// silently. Input order is preserved.
func FilterCurrentMonth(records []Record, now time.Time) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		year, month, ok := splitYearMonth(r.Field(5, ""))
		if !ok {
			continue
		}
		if year == now.Year() && month == int(now.Month()) {
			out = append(out, r)
		}
	}
	return out
}

// splitYearMonth reads the year and month prefix of a "YYYY-MM-DD" string.
// Only the two substrings are parsed; the rest of the date is not checked.
func splitYearMonth(date string) (year, month int, ok bool) {
	if len(date) < 7 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(date[0:4])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(date[5:7])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
