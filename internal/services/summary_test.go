package services

import (
	"context"
	"math"
	"testing"
	"time"

	"financas/internal/core"
	"financas/internal/sheets"
	"financas/internal/sheets/memory"
)

func TestSummarize(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	seed := func(table string, recs ...core.Record) {
		for _, rec := range recs {
			if err := store.AppendRow(ctx, table, rec.Row()); err != nil {
				t.Fatalf("seed %s: %v", table, err)
			}
		}
	}
	seed(sheets.TableFixedExpenses,
		core.Record{ID: "f1", Name: "Rent", Amount: "1500.00", Category: "Housing", User: "Alice", Date: "2024-03-01"},
		core.Record{ID: "f2", Name: "Net", Amount: "80,50", Category: "Utilities", User: "Alice", Date: "2024-03-01"},
		core.Record{ID: "f3", Name: "OldRent", Amount: "1400", Category: "Housing", User: "Alice", Date: "2024-02-01"},
	)
	seed(sheets.TablePersonalExpenses,
		core.Record{ID: "p1", Name: "Market", Amount: "120", Category: "Food", User: "Bob", Date: "2024-03-10"},
		core.Record{ID: "p2", Name: "Broken", Amount: "not-a-number", Category: "Food", User: "Bob", Date: "2024-03-11"},
	)
	seed(sheets.TableIncomes,
		core.Record{ID: "i1", Name: "Salary", Amount: "3000", Date: "2024-03-05"},
	)

	s := newTestFinance(store, now)
	sum, err := s.Summarize(ctx, now)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if sum.Year != 2024 || sum.Month != 3 {
		t.Fatalf("summary period = %d-%d", sum.Year, sum.Month)
	}
	approx := func(got, want float64, label string) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", label, got, want)
		}
	}
	approx(sum.Incomes, 3000, "Incomes")
	approx(sum.Fixed, 1580.50, "Fixed")
	// The malformed amount counts as zero.
	approx(sum.Personal, 120, "Personal")
	approx(sum.TotalSpent, 1700.50, "TotalSpent")
	approx(sum.Balance, 1299.50, "Balance")

	wantCats := []NameAmount{
		{Name: "Housing", Amount: 1500},
		{Name: "Utilities", Amount: 80.50},
		{Name: "Food", Amount: 120},
	}
	if len(sum.ByCategory) != len(wantCats) {
		t.Fatalf("ByCategory = %v", sum.ByCategory)
	}
	for i, want := range wantCats {
		if sum.ByCategory[i].Name != want.Name {
			t.Errorf("ByCategory[%d].Name = %q, want %q", i, sum.ByCategory[i].Name, want.Name)
		}
		approx(sum.ByCategory[i].Amount, want.Amount, "ByCategory."+want.Name)
	}

	wantUsers := []NameAmount{
		{Name: "Alice", Amount: 1580.50},
		{Name: "Bob", Amount: 120},
	}
	for i, want := range wantUsers {
		if sum.ByUser[i].Name != want.Name {
			t.Errorf("ByUser[%d].Name = %q, want %q", i, sum.ByUser[i].Name, want.Name)
		}
		approx(sum.ByUser[i].Amount, want.Amount, "ByUser."+want.Name)
	}

	wantDays := []DayAmount{
		{Date: "2024-03-01", Amount: 1580.50},
		{Date: "2024-03-10", Amount: 120},
		{Date: "2024-03-11", Amount: 0},
	}
	if len(sum.ByDay) != len(wantDays) {
		t.Fatalf("ByDay = %v", sum.ByDay)
	}
	for i, want := range wantDays {
		if sum.ByDay[i].Date != want.Date {
			t.Errorf("ByDay[%d].Date = %q, want %q", i, sum.ByDay[i].Date, want.Date)
		}
		approx(sum.ByDay[i].Amount, want.Amount, "ByDay."+want.Date)
	}
}

func TestSummarizeDaySeriesIsDateSorted(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	now := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	// Appended out of order; the series must come back sorted by date.
	seed := []core.Record{
		{ID: "a", Name: "Late", Amount: "30", Date: "2024-03-20"},
		{ID: "b", Name: "Early", Amount: "10", Date: "2024-03-02"},
		{ID: "c", Name: "Mid", Amount: "20", Date: "2024-03-10"},
		{ID: "d", Name: "EarlyAgain", Amount: "5", Date: "2024-03-02"},
	}
	for _, rec := range seed {
		if err := store.AppendRow(ctx, sheets.TablePersonalExpenses, rec.Row()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	s := newTestFinance(store, now)
	sum, err := s.Summarize(ctx, now)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := []DayAmount{
		{Date: "2024-03-02", Amount: 15},
		{Date: "2024-03-10", Amount: 20},
		{Date: "2024-03-20", Amount: 30},
	}
	if len(sum.ByDay) != len(want) {
		t.Fatalf("ByDay = %v", sum.ByDay)
	}
	for i, w := range want {
		if sum.ByDay[i] != w {
			t.Errorf("ByDay[%d] = %+v, want %+v", i, sum.ByDay[i], w)
		}
	}
}

func TestSummarizeBucketsUnlabeledSpending(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	rec := core.Record{ID: "p1", Name: "Cash", Amount: "40", Date: "2024-03-05"}
	if err := store.AppendRow(ctx, sheets.TablePersonalExpenses, rec.Row()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := newTestFinance(store, now)
	sum, err := s.Summarize(ctx, now)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(sum.ByCategory) != 1 || sum.ByCategory[0].Name != UnknownCategory {
		t.Fatalf("ByCategory = %v, want bucket %q", sum.ByCategory, UnknownCategory)
	}
	if len(sum.ByUser) != 1 || sum.ByUser[0].Name != UnknownUser {
		t.Fatalf("ByUser = %v, want bucket %q", sum.ByUser, UnknownUser)
	}
}

func TestSummarizeEmptyMonth(t *testing.T) {
	s := newTestFinance(memory.New(), time.Now())
	sum, err := s.Summarize(context.Background(), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalSpent != 0 || sum.Balance != 0 || len(sum.ByCategory) != 0 || len(sum.ByUser) != 0 {
		t.Fatalf("unexpected summary for empty month: %+v", sum)
	}
}

func TestSummarizeLoadFailure(t *testing.T) {
	inner := memory.New()
	store := &failingStore{
		TableStore: inner,
		failLoad:   map[string]bool{sheets.TableIncomes: true},
	}
	s := newTestFinance(store, time.Now())
	if _, err := s.Summarize(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when a table load fails")
	}
}
