// Package services holds the business logic of the tracker: the monthly
// recurrence generator, the archive registrar, and the finance service the
// HTTP layer drives.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"financas/internal/core"
	"financas/internal/sheets"

	"github.com/google/uuid"
)

// Generator materializes the saved templates into concrete records once per
// calendar month. The processed_months ledger is the idempotency gate: the
// generator runs on every service start and on a schedule, and must be a
// no-op whenever the current month was already generated.
type Generator struct {
	store     sheets.TableStore
	registrar *Registrar

	newID func() string
}

func NewGenerator(store sheets.TableStore, registrar *Registrar) *Generator {
	return &Generator{
		store:     store,
		registrar: registrar,
		newID:     uuid.NewString,
	}
}

// Run generates the current month's records if the ledger does not know the
// month yet. It returns the number of records created.
//
// The ledger is loaded fresh on every invocation; there is no in-memory
// cache. Two concurrent invocations can still both pass the check before
// either writes the ledger row - that duplicate-generation window is
// accepted for this single-household deployment (the sqlite backend
// additionally rejects the second ledger insert via a unique index).
//
// One failing template never aborts the batch: the template is logged and
// skipped so the rest of the month still materializes.
func (g *Generator) Run(ctx context.Context, now time.Time) (int, error) {
	monthKey := core.MonthKey(now)

	ledger, err := g.store.LoadTable(ctx, sheets.TableProcessedMonths)
	if err != nil {
		// Generating against an unreadable ledger risks duplicating the
		// whole month; skip this invocation and let the next one retry.
		return 0, fmt.Errorf("load ledger: %w", err)
	}
	for _, entry := range ledger {
		if entry[sheets.ColMonth] == monthKey {
			slog.DebugContext(ctx, "Month already generated", "month", monthKey)
			return 0, nil
		}
	}

	slog.InfoContext(ctx, "Generating records for new month", "month", monthKey)

	date := now.Format("2006-01-02")
	clock := now.Format("15:04:05")
	created := 0

	fixed, err := g.store.LoadTable(ctx, sheets.TableFixedTemplates)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load fixed templates, skipping fixed expenses",
			"month", monthKey, "error", err)
	}
	for _, row := range fixed {
		t := core.RecordOf(row)
		if t.Name == "" {
			slog.WarnContext(ctx, "Skipping fixed template without a name", "template_id", t.ID)
			continue
		}
		rec := core.Record{
			ID:       g.newID(),
			Name:     t.Name,
			Amount:   t.Amount,
			Category: t.Category,
			User:     t.User,
			Date:     date,
			Time:     clock,
		}
		if err := g.store.AppendRow(ctx, sheets.TableFixedExpenses, rec.Row()); err != nil {
			slog.ErrorContext(ctx, "Failed to materialize fixed template",
				"template_id", t.ID, "name", t.Name, "error", err)
			continue
		}
		if err := g.registrar.Register(ctx, rec); err != nil {
			// The record exists; the archive is an audit copy.
			slog.ErrorContext(ctx, "Failed to archive generated record",
				"id", rec.ID, "name", rec.Name, "error", err)
		}
		created++
	}

	// Income templates materialize without category/user and are not
	// archived. The asymmetry matches the product's observed behavior.
	incomes, err := g.store.LoadTable(ctx, sheets.TableIncomeTemplates)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load income templates, skipping incomes",
			"month", monthKey, "error", err)
	}
	for _, row := range incomes {
		t := core.RecordOf(row)
		if t.Name == "" {
			slog.WarnContext(ctx, "Skipping income template without a name", "template_id", t.ID)
			continue
		}
		rec := core.Record{
			ID:     g.newID(),
			Name:   t.Name,
			Amount: t.Amount,
			Date:   date,
			Time:   clock,
		}
		if err := g.store.AppendRow(ctx, sheets.TableIncomes, rec.Row()); err != nil {
			slog.ErrorContext(ctx, "Failed to materialize income template",
				"template_id", t.ID, "name", t.Name, "error", err)
			continue
		}
		created++
	}

	entry := core.Row{
		sheets.ColMonth:       monthKey,
		sheets.ColGeneratedAt: now.Format("2006-01-02 15:04:05"),
	}
	if err := g.store.AppendRow(ctx, sheets.TableProcessedMonths, entry); err != nil {
		return created, fmt.Errorf("record ledger entry for %s: %w", monthKey, err)
	}

	slog.InfoContext(ctx, "Month generation complete",
		"month", monthKey,
		"created", created,
		"fixed_templates", len(fixed),
		"income_templates", len(incomes))
	return created, nil
}
