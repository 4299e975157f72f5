package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"financas/internal/core"
)

// recordView is the JSON shape of a record. Amounts stay strings: the
// stored representation is authoritative and malformed legacy values must
// round-trip untouched.
type recordView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category,omitempty"`
	User     string `json:"user,omitempty"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func viewOf(r core.Record) recordView {
	return recordView{
		ID:       r.ID,
		Name:     r.Name,
		Amount:   r.Amount,
		Category: r.Category,
		User:     r.User,
		Date:     r.Date,
		Time:     r.Time,
	}
}

func viewsOf(records []core.Record) []recordView {
	out := make([]recordView, len(records))
	for i, r := range records {
		out[i] = viewOf(r)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// pathID extracts the trailing id of routes like /api/incomes/{id}.
func pathID(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}
