// Package worker replays local store mutations against Google Sheets.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/sheets"
)

// MirrorWorker applies RowMessages to the spreadsheet-backed store so the
// sheet eventually matches the local SQLite tables.
type MirrorWorker struct {
	target sheets.TableStore
}

func NewMirrorWorker(target sheets.TableStore) *MirrorWorker {
	return &MirrorWorker{target: target}
}

// HandleRowMessage processes one mirror message. Appends ensure the target
// table first, so archive tabs created locally also appear in the sheet.
func (w *MirrorWorker) HandleRowMessage(ctx context.Context, msg *amqp.RowMessage) error {
	switch msg.Op {
	case amqp.OpAppend:
		if err := w.target.EnsureTable(ctx, msg.Table, sheets.HeaderFor(msg.Table)); err != nil {
			return fmt.Errorf("ensure %q: %w", msg.Table, err)
		}
		if err := w.target.AppendRow(ctx, msg.Table, msg.Row); err != nil {
			return fmt.Errorf("mirror append to %q: %w", msg.Table, err)
		}
	case amqp.OpRewrite:
		if err := w.target.EnsureTable(ctx, msg.Table, sheets.HeaderFor(msg.Table)); err != nil {
			return fmt.Errorf("ensure %q: %w", msg.Table, err)
		}
		if err := w.target.OverwriteTable(ctx, msg.Table, msg.Rows); err != nil {
			return fmt.Errorf("mirror rewrite of %q: %w", msg.Table, err)
		}
	default:
		// Drop unknown ops instead of requeueing them forever.
		slog.WarnContext(ctx, "Ignoring row message with unknown op", "op", msg.Op, "table", msg.Table)
		return nil
	}

	slog.InfoContext(ctx, "Mirrored mutation to sheet", "op", msg.Op, "table", msg.Table)
	return nil
}
