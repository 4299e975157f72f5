package backend

import (
	"context"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/sheets"
)

// mirroredStore wraps the local store and publishes every successful
// mutation for the sync worker to replay against Google Sheets. Publish
// failures never fail the request; the local write already succeeded.
type mirroredStore struct {
	inner sheets.TableStore
	pub   *amqp.Client
}

var _ sheets.TableStore = (*mirroredStore)(nil)

func newMirroredStore(inner sheets.TableStore, pub *amqp.Client) *mirroredStore {
	return &mirroredStore{inner: inner, pub: pub}
}

func (m *mirroredStore) LoadTable(ctx context.Context, name string) ([]core.Row, error) {
	return m.inner.LoadTable(ctx, name)
}

func (m *mirroredStore) EnsureTable(ctx context.Context, name string, header []string) error {
	return m.inner.EnsureTable(ctx, name, header)
}

func (m *mirroredStore) AppendRow(ctx context.Context, name string, row core.Row) error {
	if err := m.inner.AppendRow(ctx, name, row); err != nil {
		return err
	}
	if err := m.pub.PublishRowMessage(ctx, amqp.NewAppendMessage(name, row)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish append mirror message",
			"table", name, "error", err)
	}
	return nil
}

func (m *mirroredStore) OverwriteTable(ctx context.Context, name string, rows []core.Row) error {
	if err := m.inner.OverwriteTable(ctx, name, rows); err != nil {
		return err
	}
	if err := m.pub.PublishRowMessage(ctx, amqp.NewRewriteMessage(name, rows)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish rewrite mirror message",
			"table", name, "error", err)
	}
	return nil
}
