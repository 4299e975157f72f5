package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"financas/internal/core"
	"financas/internal/sheets"

	"golang.org/x/sync/errgroup"
)

// NameAmount is one aggregation bucket of a month summary.
type NameAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// DayAmount is one day of the spending evolution series.
type DayAmount struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Bucket labels for records missing a category or user.
const (
	UnknownCategory = "Outros"
	UnknownUser     = "Não informado"
)

// MonthSummary aggregates the current month's records. Amounts are parsed
// tolerantly; malformed rows count as zero rather than failing the summary.
type MonthSummary struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Incomes    float64 `json:"incomes"`
	Fixed      float64 `json:"fixed_expenses"`
	Personal   float64 `json:"personal_expenses"`
	TotalSpent float64 `json:"total_spent"`
	Balance    float64 `json:"balance"`

	ByCategory []NameAmount `json:"by_category"`
	ByUser     []NameAmount `json:"by_user"`
	ByDay      []DayAmount  `json:"by_day"`
}

// Summarize loads the three record tables concurrently, narrows them to
// now's month, and aggregates totals plus per-category and per-user
// breakdowns of the spending.
func (s *FinanceService) Summarize(ctx context.Context, now time.Time) (MonthSummary, error) {
	var fixed, personal, incomes []core.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.store.LoadTable(gctx, sheets.TableFixedExpenses)
		if err != nil {
			return fmt.Errorf("load fixed expenses: %w", err)
		}
		fixed = core.FilterCurrentMonth(core.RecordsOf(rows), now)
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.LoadTable(gctx, sheets.TablePersonalExpenses)
		if err != nil {
			return fmt.Errorf("load personal expenses: %w", err)
		}
		personal = core.FilterCurrentMonth(core.RecordsOf(rows), now)
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.LoadTable(gctx, sheets.TableIncomes)
		if err != nil {
			return fmt.Errorf("load incomes: %w", err)
		}
		incomes = core.FilterCurrentMonth(core.RecordsOf(rows), now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return MonthSummary{}, err
	}

	sum := MonthSummary{Year: now.Year(), Month: int(now.Month())}
	sum.Incomes = totalOf(incomes)
	sum.Fixed = totalOf(fixed)
	sum.Personal = totalOf(personal)
	sum.TotalSpent = sum.Fixed + sum.Personal
	sum.Balance = sum.Incomes - sum.TotalSpent

	spending := append(append([]core.Record(nil), fixed...), personal...)
	sum.ByCategory = bucketBy(spending, 3, UnknownCategory)
	sum.ByUser = bucketBy(spending, 4, UnknownUser)
	sum.ByDay = bucketByDay(spending)
	return sum, nil
}

func totalOf(records []core.Record) float64 {
	var total float64
	for _, r := range records {
		total += core.ParseAmount(r.Field(2, "0"))
	}
	return total
}

// bucketBy groups spending by the record field at the given canonical
// position, preserving first-seen order. Records missing the field fall
// into the def bucket.
func bucketBy(records []core.Record, field int, def string) []NameAmount {
	totals := map[string]float64{}
	order := make([]string, 0)
	for _, r := range records {
		key := r.Field(field, def)
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += core.ParseAmount(r.Field(2, "0"))
	}
	out := make([]NameAmount, 0, len(order))
	for _, key := range order {
		out = append(out, NameAmount{Name: key, Amount: totals[key]})
	}
	return out
}

// bucketByDay sums spending per record date, sorted by date. ISO dates
// sort correctly as strings.
func bucketByDay(records []core.Record) []DayAmount {
	totals := map[string]float64{}
	for _, r := range records {
		totals[r.Display(5)] += core.ParseAmount(r.Field(2, "0"))
	}
	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)
	out := make([]DayAmount, 0, len(days))
	for _, day := range days {
		out = append(out, DayAmount{Date: day, Amount: totals[day]})
	}
	return out
}
