package storage

import (
	"context"
	"path/filepath"
	"testing"

	"financas/internal/core"
	"financas/internal/sheets"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "financas.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendAndLoad(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rec := core.Record{
		ID: "r1", Name: "Rent", Amount: "1500.00",
		Category: "Housing", User: "Alice",
		Date: "2024-03-05", Time: "09:30:00",
	}
	if err := repo.AppendRow(ctx, sheets.TableFixedExpenses, rec.Row()); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	rows, err := repo.LoadTable(ctx, sheets.TableFixedExpenses)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if got := core.RecordOf(rows[0]); got != rec {
		t.Fatalf("round trip mismatch: %+v != %+v", got, rec)
	}
}

func TestLoadEmptyTable(t *testing.T) {
	repo := newTestRepository(t)
	rows, err := repo.LoadTable(context.Background(), sheets.TableIncomes)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %v", rows)
	}
}

func TestArchiveTablesShareOneBackingTable(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	march := core.Record{ID: "r1", Name: "Rent", Date: "2024-03-05"}
	april := core.Record{ID: "r2", Name: "Rent", Date: "2024-04-05"}
	if err := repo.AppendRow(ctx, "MARÇO - 2024", march.Row()); err != nil {
		t.Fatalf("append march: %v", err)
	}
	if err := repo.AppendRow(ctx, "ABRIL - 2024", april.Row()); err != nil {
		t.Fatalf("append april: %v", err)
	}

	got, err := repo.LoadTable(ctx, "MARÇO - 2024")
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if len(got) != 1 || got[0][core.ColID] != "r1" {
		t.Fatalf("march archive = %v", got)
	}
	got, _ = repo.LoadTable(ctx, "ABRIL - 2024")
	if len(got) != 1 || got[0][core.ColID] != "r2" {
		t.Fatalf("april archive = %v", got)
	}
}

func TestEnsureTableIsNoOp(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.EnsureTable(context.Background(), "MARÇO - 2024", core.RecordColumns); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
}

func TestOverwriteTable(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		rec := core.Record{ID: id, Name: "x", Date: "2024-03-01"}
		if err := repo.AppendRow(ctx, sheets.TablePersonalExpenses, rec.Row()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	kept := []core.Row{
		core.Record{ID: "a", Name: "x", Date: "2024-03-01"}.Row(),
		core.Record{ID: "c", Name: "x", Date: "2024-03-01"}.Row(),
	}
	if err := repo.OverwriteTable(ctx, sheets.TablePersonalExpenses, kept); err != nil {
		t.Fatalf("OverwriteTable: %v", err)
	}

	rows, _ := repo.LoadTable(ctx, sheets.TablePersonalExpenses)
	if len(rows) != 2 || rows[0][core.ColID] != "a" || rows[1][core.ColID] != "c" {
		t.Fatalf("unexpected rows after overwrite: %v", rows)
	}
}

func TestLedgerRejectsDuplicateMonth(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry := core.Row{sheets.ColMonth: "2024-03", sheets.ColGeneratedAt: "2024-03-01 06:00:00"}
	if err := repo.AppendRow(ctx, sheets.TableProcessedMonths, entry); err != nil {
		t.Fatalf("first ledger insert: %v", err)
	}
	if err := repo.AppendRow(ctx, sheets.TableProcessedMonths, entry); err == nil {
		t.Fatal("second ledger insert for the same month must fail")
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "financas.db")
	repo, err := NewRepository(path)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	repo.Close()

	// Re-opening an already migrated database must succeed.
	repo, err = NewRepository(path)
	if err != nil {
		t.Fatalf("NewRepository on existing db: %v", err)
	}
	repo.Close()
}
