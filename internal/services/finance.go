package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"financas/internal/core"
	"financas/internal/sheets"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrMissingName   = errors.New("name is required")
)

// FinanceService drives the user-initiated operations: creating and
// deleting expenses and incomes, maintaining users and categories, and the
// month-scoped listings.
type FinanceService struct {
	store     sheets.TableStore
	registrar *Registrar

	now   func() time.Time
	newID func() string
}

func NewFinanceService(store sheets.TableStore, registrar *Registrar) *FinanceService {
	return &FinanceService{
		store:     store,
		registrar: registrar,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// CreateFixedExpense saves a recurring template, materializes it for the
// current month immediately, and archives the concrete record.
func (s *FinanceService) CreateFixedExpense(ctx context.Context, name, amount, category, user string) (core.Record, error) {
	rec, err := s.newRecord(name, amount, category, user)
	if err != nil {
		return core.Record{}, err
	}

	template := core.Row{
		core.ColID:       rec.ID,
		core.ColName:     rec.Name,
		core.ColAmount:   rec.Amount,
		core.ColCategory: rec.Category,
		core.ColUser:     rec.User,
	}
	if err := s.store.AppendRow(ctx, sheets.TableFixedTemplates, template); err != nil {
		return core.Record{}, fmt.Errorf("save fixed template: %w", err)
	}
	if err := s.store.AppendRow(ctx, sheets.TableFixedExpenses, rec.Row()); err != nil {
		return core.Record{}, fmt.Errorf("save fixed expense: %w", err)
	}
	if err := s.registrar.Register(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to archive fixed expense", "id", rec.ID, "error", err)
	}

	slog.InfoContext(ctx, "Fixed expense created",
		"id", rec.ID, "name", rec.Name, "amount", rec.Amount, "category", rec.Category, "user", rec.User)
	return rec, nil
}

// CreatePersonalExpense saves a one-off expense and archives it. No
// template is written; personal expenses never recur.
func (s *FinanceService) CreatePersonalExpense(ctx context.Context, name, amount, category, user string) (core.Record, error) {
	rec, err := s.newRecord(name, amount, category, user)
	if err != nil {
		return core.Record{}, err
	}
	if err := s.store.AppendRow(ctx, sheets.TablePersonalExpenses, rec.Row()); err != nil {
		return core.Record{}, fmt.Errorf("save personal expense: %w", err)
	}
	if err := s.registrar.Register(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to archive personal expense", "id", rec.ID, "error", err)
	}

	slog.InfoContext(ctx, "Personal expense created",
		"id", rec.ID, "name", rec.Name, "amount", rec.Amount, "category", rec.Category, "user", rec.User)
	return rec, nil
}

// CreateIncome saves an income record; recurring incomes additionally save
// an income template so the generator repeats them every month. Incomes are
// not archived.
func (s *FinanceService) CreateIncome(ctx context.Context, name, amount string, recurring bool) (core.Record, error) {
	rec, err := s.newRecord(name, amount, "", "")
	if err != nil {
		return core.Record{}, err
	}
	if err := s.store.AppendRow(ctx, sheets.TableIncomes, rec.Row()); err != nil {
		return core.Record{}, fmt.Errorf("save income: %w", err)
	}
	if recurring {
		template := core.Row{
			core.ColID:     rec.ID,
			core.ColName:   rec.Name,
			core.ColAmount: rec.Amount,
		}
		if err := s.store.AppendRow(ctx, sheets.TableIncomeTemplates, template); err != nil {
			slog.ErrorContext(ctx, "Failed to save income template", "id", rec.ID, "error", err)
		}
	}

	slog.InfoContext(ctx, "Income created",
		"id", rec.ID, "name", rec.Name, "amount", rec.Amount, "recurring", recurring)
	return rec, nil
}

// ListFixedExpenses returns the current month's fixed expenses.
func (s *FinanceService) ListFixedExpenses(ctx context.Context) ([]core.Record, error) {
	return s.listCurrentMonth(ctx, sheets.TableFixedExpenses)
}

// ListPersonalExpenses returns the current month's personal expenses.
func (s *FinanceService) ListPersonalExpenses(ctx context.Context) ([]core.Record, error) {
	return s.listCurrentMonth(ctx, sheets.TablePersonalExpenses)
}

// ListIncomes returns the current month's incomes.
func (s *FinanceService) ListIncomes(ctx context.Context) ([]core.Record, error) {
	return s.listCurrentMonth(ctx, sheets.TableIncomes)
}

func (s *FinanceService) listCurrentMonth(ctx context.Context, table string) ([]core.Record, error) {
	rows, err := s.store.LoadTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", table, err)
	}
	return core.FilterCurrentMonth(core.RecordsOf(rows), s.now()), nil
}

// DeleteFixedExpense removes a fixed expense record by id. The template
// keeps recurring; only the materialized record goes away.
func (s *FinanceService) DeleteFixedExpense(ctx context.Context, id string) error {
	return s.deleteByID(ctx, sheets.TableFixedExpenses, id)
}

func (s *FinanceService) DeletePersonalExpense(ctx context.Context, id string) error {
	return s.deleteByID(ctx, sheets.TablePersonalExpenses, id)
}

func (s *FinanceService) DeleteIncome(ctx context.Context, id string) error {
	return s.deleteByID(ctx, sheets.TableIncomes, id)
}

// deleteByID rewrites the whole table without the matching record. Rows of
// other months are kept; only the targeted id is dropped.
func (s *FinanceService) deleteByID(ctx context.Context, table, id string) error {
	rows, err := s.store.LoadTable(ctx, table)
	if err != nil {
		return fmt.Errorf("load %q: %w", table, err)
	}
	kept := make([]core.Row, 0, len(rows))
	for _, row := range rows {
		if row[core.ColID] == id {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == len(rows) {
		slog.WarnContext(ctx, "Delete target not found", "table", table, "id", id)
		return nil
	}
	if err := s.store.OverwriteTable(ctx, table, kept); err != nil {
		return fmt.Errorf("rewrite %q: %w", table, err)
	}
	slog.InfoContext(ctx, "Record deleted", "table", table, "id", id)
	return nil
}

// AddUser registers a household member name.
func (s *FinanceService) AddUser(ctx context.Context, name string) error {
	return s.appendName(ctx, sheets.TableUsers, name)
}

// AddCategory registers an expense category label.
func (s *FinanceService) AddCategory(ctx context.Context, name string) error {
	return s.appendName(ctx, sheets.TableCategories, name)
}

func (s *FinanceService) appendName(ctx context.Context, table, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMissingName
	}
	if err := s.store.AppendRow(ctx, table, core.Row{sheets.ColEntryName: name}); err != nil {
		return fmt.Errorf("save to %q: %w", table, err)
	}
	return nil
}

// Users lists the registered household members, blanks filtered out.
func (s *FinanceService) Users(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, sheets.TableUsers)
}

// Categories lists the registered category labels, blanks filtered out.
func (s *FinanceService) Categories(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, sheets.TableCategories)
}

func (s *FinanceService) listNames(ctx context.Context, table string) ([]string, error) {
	rows, err := s.store.LoadTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", table, err)
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row[sheets.ColEntryName])
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

// newRecord validates the user input and stamps a fresh record with a new
// id and the current date and time.
func (s *FinanceService) newRecord(name, amount, category, user string) (core.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Record{}, ErrMissingName
	}
	value := core.ParseAmount(amount)
	if value <= 0 {
		return core.Record{}, ErrInvalidAmount
	}
	now := s.now()
	return core.Record{
		ID:       s.newID(),
		Name:     name,
		Amount:   core.FormatAmount(value),
		Category: strings.TrimSpace(category),
		User:     strings.TrimSpace(user),
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
	}, nil
}
