package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"divvy/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeLedgerError maps validation failures to 400 and anything else to
// 500. Not-found is handled by the callers via boolean results.
func writeLedgerError(w http.ResponseWriter, err error) {
	if models.IsInvalidArgument(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// persist writes a best-effort snapshot after a successful mutation.
// Failures are logged, never surfaced: the in-memory ledger remains the
// source of truth and durability is explicitly not guaranteed.
func (s *Server) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	people, expenses := s.ledger.Snapshot()
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.store.Save(cctx, people, expenses); err != nil {
		slog.Error("Snapshot save failed", "error", err)
	}
}
