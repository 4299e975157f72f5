package core

import (
	"reflect"
	"testing"
	"time"
)

func TestMonthKey(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC), "2024-03"},
		{time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), "2024-12"},
		{time.Date(999, time.January, 1, 0, 0, 0, 0, time.UTC), "0999-01"},
	}
	for _, tc := range cases {
		if got := MonthKey(tc.in); got != tc.want {
			t.Errorf("MonthKey(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMonthName(t *testing.T) {
	cases := []struct {
		month int
		want  string
	}{
		{1, "JANEIRO"},
		{3, "MARÇO"},
		{12, "DEZEMBRO"},
		{0, ""},
		{13, ""},
	}
	for _, tc := range cases {
		if got := MonthName(tc.month); got != tc.want {
			t.Errorf("MonthName(%d) = %q, want %q", tc.month, got, tc.want)
		}
	}
}

func TestArchiveName(t *testing.T) {
	if got := ArchiveName(2024, 3); got != "MARÇO - 2024" {
		t.Fatalf("ArchiveName(2024, 3) = %q", got)
	}
	if got := ArchiveName(2025, 10); got != "OUTUBRO - 2025" {
		t.Fatalf("ArchiveName(2025, 10) = %q", got)
	}
}

func TestArchiveNameForDate(t *testing.T) {
	cases := []struct {
		date string
		want string
		ok   bool
	}{
		{"2024-03-05", "MARÇO - 2024", true},
		{"2023-12-31", "DEZEMBRO - 2023", true},
		{"bad-date", "", false},
		{"2024-13-01", "", false},
		{"2024-00-01", "", false},
		{"", "", false},
		{"2024-3", "", false},
	}
	for _, tc := range cases {
		got, ok := ArchiveNameForDate(tc.date)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ArchiveNameForDate(%q) = (%q, %v), want (%q, %v)", tc.date, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFilterCurrentMonth(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "a", Name: "Rent", Date: "2024-03-01"},
		{ID: "b", Name: "Old", Date: "2024-02-28"},
		{ID: "c", Name: "Broken", Date: "bad-date"},
		{ID: "d", Name: "Market", Date: "2024-03-20"},
		{ID: "e", Name: "NextYear", Date: "2025-03-10"},
	}
	got := FilterCurrentMonth(records, now)
	want := []string{"a", "d"}
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("kept %v, want %v", ids, want)
	}
}

func TestFilterCurrentMonthEmpty(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got := FilterCurrentMonth(nil, now); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
