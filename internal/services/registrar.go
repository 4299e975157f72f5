package services

import (
	"context"
	"fmt"

	"financas/internal/core"
	"financas/internal/sheets"
)

// Registrar copies created records into the per-month archive tab named
// after the record's calendar month ("MARÇO - 2024"). Archives are
// append-only audit copies, independent of the mutable primary tables.
type Registrar struct {
	store sheets.TableStore
}

func NewRegistrar(store sheets.TableStore) *Registrar {
	return &Registrar{store: store}
}

// Register appends the record's seven canonical fields to its monthly
// archive, creating the archive with the canonical header first when it
// does not exist yet. Each call is independent; concurrent registrations
// for the same fresh month rely on EnsureTable treating "already exists"
// as success.
func (r *Registrar) Register(ctx context.Context, rec core.Record) error {
	name, ok := core.ArchiveNameForDate(rec.Date)
	if !ok {
		return fmt.Errorf("archive record %q: unparsable date %q", rec.ID, rec.Date)
	}
	if err := r.store.EnsureTable(ctx, name, core.RecordColumns); err != nil {
		return fmt.Errorf("ensure archive %q: %w", name, err)
	}
	if err := r.store.AppendRow(ctx, name, rec.Row()); err != nil {
		return fmt.Errorf("append to archive %q: %w", name, err)
	}
	return nil
}
