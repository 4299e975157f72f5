// Package storage implements the table store ports on a local SQLite
// database. It is the fast primary store when the service runs in sqlite
// mode; a worker mirrors appended rows to Google Sheets asynchronously.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"financas/internal/core"
	"financas/internal/sheets"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db    *sql.DB
	known map[string]struct{}
}

// Ensure interface conformance
var _ sheets.TableStore = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	known := make(map[string]struct{})
	for _, name := range sheets.RequiredTables() {
		known[name] = struct{}{}
	}

	return &Repository{db: db, known: known}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTable reads every row in insertion order. Table names outside the
// fixed schema are monthly archive tabs, stored together in
// monthly_archive and filtered by name.
func (r *Repository) LoadTable(ctx context.Context, name string) ([]core.Row, error) {
	cols := sheets.HeaderFor(name)
	var (
		query string
		args  []any
	)
	if r.isArchive(name) {
		query = fmt.Sprintf(`SELECT %s FROM monthly_archive WHERE archive = ? ORDER BY rowid`, columnList(cols))
		args = []any{name}
	} else {
		query = fmt.Sprintf(`SELECT %s FROM %q ORDER BY rowid`, columnList(cols), name)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	defer rows.Close()

	var out []core.Row
	for rows.Next() {
		values := make([]string, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %q: %w", name, err)
		}
		row := make(core.Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %q: %w", name, err)
	}
	return out, nil
}

func (r *Repository) AppendRow(ctx context.Context, name string, row core.Row) error {
	cols := sheets.HeaderFor(name)
	insertCols := cols
	args := make([]any, 0, len(cols)+1)
	target := name
	if r.isArchive(name) {
		target = "monthly_archive"
		insertCols = append([]string{"archive"}, cols...)
		args = append(args, name)
	}
	for _, col := range cols {
		args = append(args, row[col])
	}

	query := fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
		target, columnList(insertCols), placeholders(len(insertCols)))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append to %q: %w", name, err)
	}
	return nil
}

func (r *Repository) OverwriteTable(ctx context.Context, name string, rows []core.Row) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin overwrite of %q: %w", name, err)
	}
	defer tx.Rollback()

	cols := sheets.HeaderFor(name)
	if r.isArchive(name) {
		// Archives are append-only from the services; overwrite exists
		// only for schema symmetry.
		if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_archive WHERE archive = ?`, name); err != nil {
			return fmt.Errorf("clear archive %q: %w", name, err)
		}
		insertCols := append([]string{"archive"}, cols...)
		query := fmt.Sprintf(`INSERT INTO monthly_archive (%s) VALUES (%s)`,
			columnList(insertCols), placeholders(len(insertCols)))
		for _, row := range rows {
			args := make([]any, 0, len(insertCols))
			args = append(args, name)
			for _, col := range cols {
				args = append(args, row[col])
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("rewrite archive %q: %w", name, err)
			}
		}
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q`, name)); err != nil {
		return fmt.Errorf("clear %q: %w", name, err)
	}
	query := fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
		name, columnList(cols), placeholders(len(cols)))
	for _, row := range rows {
		args := make([]any, 0, len(cols))
		for _, col := range cols {
			args = append(args, row[col])
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("rewrite %q: %w", name, err)
		}
	}
	return tx.Commit()
}

// EnsureTable is a no-op: the fixed tables come from migrations and the
// shared monthly_archive table makes archive creation implicit.
func (r *Repository) EnsureTable(_ context.Context, _ string, _ []string) error {
	return nil
}

func (r *Repository) isArchive(name string) bool {
	_, ok := r.known[name]
	return !ok
}

func columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
