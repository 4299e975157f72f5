package core

import (
	"errors"
	"strings"
)

// Canonical column names for record tables, in positional order.
// Every expense and income table uses a prefix of this layout.
const (
	ColID       = "id"
	ColName     = "name"
	ColAmount   = "amount"
	ColCategory = "category"
	ColUser     = "user"
	ColDate     = "date"
	ColTime     = "time"
)

// RecordColumns is the canonical field order shared by all record tables
// and by the monthly archive tabs.
var RecordColumns = []string{ColID, ColName, ColAmount, ColCategory, ColUser, ColDate, ColTime}

// DefaultPlaceholder is what display code shows for a missing field.
const DefaultPlaceholder = "—"

var (
	ErrEmptyName = errors.New("empty name")
	ErrEmptyID   = errors.New("empty id")
)

// Row is a single stored row keyed by column header, the shape the table
// adapters exchange with the backing store.
type Row map[string]string

// Record is an expense or income entry normalized to the canonical shape.
// Incomes leave Category and User empty. Templates are records without
// Date and Time. All fields are kept as stored strings; amounts are parsed
// on demand with ParseAmount so malformed legacy data never breaks callers.
type Record struct {
	ID       string
	Name     string
	Amount   string
	Category string
	User     string
	Date     string
	Time     string
}

// RecordOf normalizes a keyed row into a Record.
func RecordOf(row Row) Record {
	return Record{
		ID:       row[ColID],
		Name:     row[ColName],
		Amount:   row[ColAmount],
		Category: row[ColCategory],
		User:     row[ColUser],
		Date:     row[ColDate],
		Time:     row[ColTime],
	}
}

// RecordFromValues normalizes a plain positional row (canonical order) into
// a Record. Short rows leave the remaining fields empty.
func RecordFromValues(values []string) Record {
	var r Record
	for i, v := range values {
		if i >= len(RecordColumns) {
			break
		}
		r.set(RecordColumns[i], v)
	}
	return r
}

// RecordsOf normalizes a loaded table.
func RecordsOf(rows []Row) []Record {
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = RecordOf(row)
	}
	return out
}

// Field returns the value at the canonical position i, or def when the
// position is out of range or the value is empty.
func (r Record) Field(i int, def string) string {
	if i < 0 || i >= len(RecordColumns) {
		return def
	}
	v := r.Value(RecordColumns[i])
	if v == "" {
		return def
	}
	return v
}

// Display is Field with the em-dash placeholder default.
func (r Record) Display(i int) string {
	return r.Field(i, DefaultPlaceholder)
}

// Value returns the field stored under the canonical column name.
func (r Record) Value(col string) string {
	switch col {
	case ColID:
		return r.ID
	case ColName:
		return r.Name
	case ColAmount:
		return r.Amount
	case ColCategory:
		return r.Category
	case ColUser:
		return r.User
	case ColDate:
		return r.Date
	case ColTime:
		return r.Time
	}
	return ""
}

func (r *Record) set(col, v string) {
	switch col {
	case ColID:
		r.ID = v
	case ColName:
		r.Name = v
	case ColAmount:
		r.Amount = v
	case ColCategory:
		r.Category = v
	case ColUser:
		r.User = v
	case ColDate:
		r.Date = v
	case ColTime:
		r.Time = v
	}
}

// Row converts the record back to the keyed shape the adapters write.
func (r Record) Row() Row {
	return Row{
		ColID:       r.ID,
		ColName:     r.Name,
		ColAmount:   r.Amount,
		ColCategory: r.Category,
		ColUser:     r.User,
		ColDate:     r.Date,
		ColTime:     r.Time,
	}
}

// Values returns the record's seven canonical fields in order, defaulting
// missing fields to the empty string.
func (r Record) Values() []string {
	out := make([]string, len(RecordColumns))
	for i, col := range RecordColumns {
		out[i] = r.Value(col)
	}
	return out
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
