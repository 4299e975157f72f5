// Package backend selects and assembles the table store the services run
// against: in-memory, Google Sheets directly, or local SQLite mirrored to
// Sheets through AMQP.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/sheets"
	gsheet "financas/internal/sheets/google"
	"financas/internal/sheets/memory"
	"financas/internal/storage"
)

type Type string

const (
	MemoryBackend Type = "memory"
	SheetsBackend Type = "sheets"
	SQLiteBackend Type = "sqlite"
)

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SheetsBackend, SQLiteBackend:
		return true
	}
	return false
}

// Config holds what the factory needs to build a store.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Optional AMQP mirroring for the sqlite backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Result carries the assembled store and an optional cleanup function.
type Result struct {
	Store   sheets.TableStore
	Cleanup func() error
}

type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

func (f *Factory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SheetsBackend:
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		if err := cli.EnsureHeaders(ctx); err != nil {
			return nil, fmt.Errorf("bootstrap sheet headers: %w", err)
		}
		f.logger.Info("Initialized Google Sheets backend")
		return &Result{Store: cli}, nil

	case SQLiteBackend:
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}

		var mirror *amqp.Client
		if cfg.AMQPURL != "" {
			mirror, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				f.logger.Warn("Failed to initialize AMQP client, continuing without sheet mirroring", "error", err)
				mirror = nil
			} else {
				f.logger.Info("Initialized AMQP mirroring",
					"exchange", cfg.AMQPExchange,
					"queue", cfg.AMQPQueue)
			}
		}

		f.logger.Info("Initialized SQLite backend",
			"db_path", cfg.SQLiteDBPath,
			"amqp_enabled", mirror != nil)

		if mirror == nil {
			return &Result{Store: repo, Cleanup: repo.Close}, nil
		}
		store := newMirroredStore(repo, mirror)
		cleanup := func() error {
			err := repo.Close()
			if cerr := mirror.Close(); err == nil {
				err = cerr
			}
			return err
		}
		return &Result{Store: store, Cleanup: cleanup}, nil

	default:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil
	}
}
