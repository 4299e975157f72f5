package worker

import (
	"context"
	"testing"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/sheets"
	"financas/internal/sheets/memory"
)

func TestHandleAppendMessage(t *testing.T) {
	target := memory.New()
	w := NewMirrorWorker(target)
	ctx := context.Background()

	row := core.Row{core.ColID: "r1", core.ColName: "Rent", core.ColDate: "2024-03-05"}
	if err := w.HandleRowMessage(ctx, amqp.NewAppendMessage(sheets.TableFixedExpenses, row)); err != nil {
		t.Fatalf("HandleRowMessage: %v", err)
	}

	rows, _ := target.LoadTable(ctx, sheets.TableFixedExpenses)
	if len(rows) != 1 || rows[0][core.ColName] != "Rent" {
		t.Fatalf("unexpected mirrored rows: %v", rows)
	}
}

func TestHandleAppendCreatesArchiveTab(t *testing.T) {
	target := memory.New()
	w := NewMirrorWorker(target)
	ctx := context.Background()

	row := core.Row{core.ColID: "r1", core.ColName: "Rent", core.ColDate: "2024-03-05"}
	if err := w.HandleRowMessage(ctx, amqp.NewAppendMessage("MARÇO - 2024", row)); err != nil {
		t.Fatalf("HandleRowMessage: %v", err)
	}
	if !target.HasTable("MARÇO - 2024") {
		t.Fatal("archive tab not created on the target")
	}
}

func TestHandleRewriteMessage(t *testing.T) {
	target := memory.New()
	w := NewMirrorWorker(target)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := target.AppendRow(ctx, sheets.TableIncomes, core.Row{core.ColID: id}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	msg := amqp.NewRewriteMessage(sheets.TableIncomes, []core.Row{{core.ColID: "b"}})
	if err := w.HandleRowMessage(ctx, msg); err != nil {
		t.Fatalf("HandleRowMessage: %v", err)
	}
	rows, _ := target.LoadTable(ctx, sheets.TableIncomes)
	if len(rows) != 1 || rows[0][core.ColID] != "b" {
		t.Fatalf("rewrite not applied: %v", rows)
	}
}

func TestHandleUnknownOpIsDropped(t *testing.T) {
	w := NewMirrorWorker(memory.New())
	msg := &amqp.RowMessage{Op: "truncate", Table: sheets.TableIncomes}
	if err := w.HandleRowMessage(context.Background(), msg); err != nil {
		t.Fatalf("unknown op must not error, got %v", err)
	}
}
