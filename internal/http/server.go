// Package http exposes the tracker as a small JSON API: expenses, incomes,
// users, categories, the month summary, and a manual generation trigger.
package http

import (
	"log/slog"
	"net/http"
	"time"

	applog "financas/internal/log"
	"financas/internal/services"
)

type Server struct {
	http.Server
	finance   *services.FinanceService
	generator *services.Generator
}

func NewServer(addr string, finance *services.FinanceService, generator *services.Generator) *Server {
	s := &Server{
		finance:   finance,
		generator: generator,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/fixed-expenses", s.handleFixedExpenses)
	mux.HandleFunc("/api/fixed-expenses/", s.handleFixedExpenseByID)
	mux.HandleFunc("/api/personal-expenses", s.handlePersonalExpenses)
	mux.HandleFunc("/api/personal-expenses/", s.handlePersonalExpenseByID)
	mux.HandleFunc("/api/incomes", s.handleIncomes)
	mux.HandleFunc("/api/incomes/", s.handleIncomeByID)
	mux.HandleFunc("/api/users", s.handleUsers)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/generate", s.handleGenerate)

	s.Server = http.Server{
		Addr:    addr,
		Handler: requestLogging(mux),

		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusRecorder captures the response code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		switch {
		case rec.status >= 500:
			level = slog.LevelError
		case rec.status >= 400:
			level = slog.LevelWarn
		}
		slog.Default().Log(r.Context(), level, "HTTP request completed",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatus, rec.status,
			applog.FieldDuration, time.Since(start).Milliseconds())
	})
}
