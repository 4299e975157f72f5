// Package sheets defines the ports the services use to talk to the backing
// tabular store, plus the table names and canonical headers every adapter
// shares. Adapters live in the subpackages (google, memory) and in
// internal/storage for SQLite.
package sheets

import (
	"context"

	"financas/internal/core"
)

// Ports for outbound adapters.
type (
	TableReader interface {
		// LoadTable returns every data row of the named table keyed by
		// its header. A missing table is not an error; it reads empty.
		LoadTable(ctx context.Context, name string) ([]core.Row, error)
	}

	RowAppender interface {
		// AppendRow appends one row; fields the table's header does not
		// know are ignored, missing ones are written empty.
		AppendRow(ctx context.Context, name string, row core.Row) error
	}

	TableOverwriter interface {
		// OverwriteTable replaces the named table's contents. Used for
		// deletions; records are immutable otherwise.
		OverwriteTable(ctx context.Context, name string, rows []core.Row) error
	}

	TableEnsurer interface {
		// EnsureTable creates the named table with the given header when
		// it does not exist yet. Creating an existing table is a no-op,
		// never an error: concurrent first-writes to a fresh monthly
		// archive must both succeed.
		EnsureTable(ctx context.Context, name string, header []string) error
	}

	// TableStore is the full storage surface the services depend on.
	TableStore interface {
		TableReader
		RowAppender
		TableOverwriter
		TableEnsurer
	}
)
