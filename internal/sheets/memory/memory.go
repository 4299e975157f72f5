// Package memory is the in-memory table store used for tests and local
// development runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"financas/internal/core"
	"financas/internal/sheets"
)

type table struct {
	header []string
	rows   []core.Row
}

type Store struct {
	mu     sync.Mutex
	tables map[string]*table
}

// New returns a store with every required table already created, the state
// the Google adapter guarantees after its header bootstrap.
func New() *Store {
	s := &Store{tables: make(map[string]*table)}
	for _, name := range sheets.RequiredTables() {
		s.tables[name] = &table{header: sheets.HeaderFor(name)}
	}
	return s
}

func (s *Store) LoadTable(_ context.Context, name string) ([]core.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, nil
	}
	out := make([]core.Row, len(t.rows))
	for i, row := range t.rows {
		cp := make(core.Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out[i] = cp
	}
	return out, nil
}

func (s *Store) AppendRow(_ context.Context, name string, row core.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("append %q: %w", name, sheets.ErrTableNotFound)
	}
	kept := make(core.Row, len(t.header))
	for _, col := range t.header {
		kept[col] = row[col]
	}
	t.rows = append(t.rows, kept)
	return nil
}

func (s *Store) OverwriteTable(_ context.Context, name string, rows []core.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("overwrite %q: %w", name, sheets.ErrTableNotFound)
	}
	replaced := make([]core.Row, 0, len(rows))
	for _, row := range rows {
		kept := make(core.Row, len(t.header))
		for _, col := range t.header {
			kept[col] = row[col]
		}
		replaced = append(replaced, kept)
	}
	t.rows = replaced
	return nil
}

func (s *Store) EnsureTable(_ context.Context, name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[name]; ok {
		return nil
	}
	s.tables[name] = &table{header: append([]string(nil), header...)}
	return nil
}

// HasTable reports whether the named table exists. Test helper.
func (s *Store) HasTable(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tables[name]
	return ok
}

// Header returns the header of the named table, or nil. Test helper.
func (s *Store) Header(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return nil
	}
	return append([]string(nil), t.header...)
}
