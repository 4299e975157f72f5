package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"financas/internal/core"
	"financas/internal/services"
)

type expenseRequest struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	User     string `json:"user"`
}

type incomeRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Recurring bool   `json:"recurring"`
}

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleFixedExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listRecords(w, r, s.finance.ListFixedExpenses)
	case http.MethodPost:
		var req expenseRequest
		if !decode(w, r, &req) {
			return
		}
		rec, err := s.finance.CreateFixedExpense(r.Context(), req.Name, req.Amount, req.Category, req.User)
		s.respondCreated(w, r, rec, err)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handlePersonalExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listRecords(w, r, s.finance.ListPersonalExpenses)
	case http.MethodPost:
		var req expenseRequest
		if !decode(w, r, &req) {
			return
		}
		rec, err := s.finance.CreatePersonalExpense(r.Context(), req.Name, req.Amount, req.Category, req.User)
		s.respondCreated(w, r, rec, err)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleIncomes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listRecords(w, r, s.finance.ListIncomes)
	case http.MethodPost:
		var req incomeRequest
		if !decode(w, r, &req) {
			return
		}
		rec, err := s.finance.CreateIncome(r.Context(), req.Name, req.Amount, req.Recurring)
		s.respondCreated(w, r, rec, err)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleFixedExpenseByID(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "/api/fixed-expenses/", s.finance.DeleteFixedExpense)
}

func (s *Server) handlePersonalExpenseByID(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "/api/personal-expenses/", s.finance.DeletePersonalExpense)
}

func (s *Server) handleIncomeByID(w http.ResponseWriter, r *http.Request) {
	s.deleteRecord(w, r, "/api/incomes/", s.finance.DeleteIncome)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	s.handleNames(w, r, s.finance.Users, s.finance.AddUser)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.handleNames(w, r, s.finance.Categories, s.finance.AddCategory)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	sum, err := s.finance.Summarize(r.Context(), time.Now())
	if err != nil {
		// Backend failures must not break the page; an empty summary
		// renders as zeros.
		slog.ErrorContext(r.Context(), "Failed to build month summary", "error", err)
		now := time.Now()
		sum = services.MonthSummary{Year: now.Year(), Month: int(now.Month())}
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleGenerate triggers a generation pass. The ledger makes repeated
// calls within a month harmless.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	created, err := s.generator.Run(r.Context(), time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Generation run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request, load func(context.Context) ([]core.Record, error)) {
	records, err := load(r.Context())
	if err != nil {
		// Show nothing rather than a broken page when the store is down.
		slog.ErrorContext(r.Context(), "Failed to load records", "error", err)
		records = nil
	}
	writeJSON(w, http.StatusOK, viewsOf(records))
}

func (s *Server) respondCreated(w http.ResponseWriter, r *http.Request, rec core.Record, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, viewOf(rec))
	case errors.Is(err, services.ErrMissingName), errors.Is(err, services.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Failed to create record", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save record")
	}
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request, prefix string, del func(context.Context, string) error) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}
	id := pathID(r.URL.Path, prefix)
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record id")
		return
	}
	if err := del(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]string, error), add func(context.Context, string) error) {
	switch r.Method {
	case http.MethodGet:
		names, err := list(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to load names", "error", err)
			names = nil
		}
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, names)
	case http.MethodPost:
		var req nameRequest
		if !decode(w, r, &req) {
			return
		}
		if err := add(r.Context(), req.Name); err != nil {
			if errors.Is(err, services.ErrMissingName) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			slog.ErrorContext(r.Context(), "Failed to save name", "error", err)
			writeError(w, http.StatusInternalServerError, "could not save")
			return
		}
		w.WriteHeader(http.StatusCreated)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
