// Package http exposes the ledger over a JSON API, plus the spreadsheet
// export, the settlement explanation, and a small static UI.
package http

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"divvy/internal/explain"
	"divvy/internal/ledger"
	"divvy/internal/storage"
)

// Server wires the ledger to HTTP. The ledger serializes its own state
// internally; handlers never share mutable state of their own.
type Server struct {
	http.Server

	ledger    *ledger.Ledger
	store     storage.Store // nil disables snapshot persistence
	explainer *explain.Explainer
	staticDir string
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, led *ledger.Ledger, store storage.Store, explainer *explain.Explainer, staticDir string) *Server {
	mux := http.NewServeMux()

	if explainer == nil {
		explainer = explain.New(nil)
	}

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		ledger:    led,
		store:     store,
		explainer: explainer,
		staticDir: staticDir,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", metricsHandler())

	mux.HandleFunc("GET /api/people", s.handleListPeople)
	mux.HandleFunc("POST /api/people", s.handleAddPerson)
	mux.HandleFunc("POST /api/people/import", s.handleImportPeople)
	mux.HandleFunc("DELETE /api/people/{name}", s.handleRemovePerson)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleAddExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleRemoveExpense)
	mux.HandleFunc("PUT /api/expenses/{id}/participants", s.handleUpdateParticipants)

	mux.HandleFunc("GET /api/balances", s.handleBalances)
	mux.HandleFunc("GET /api/totals", s.handleTotals)
	mux.HandleFunc("GET /api/settlement", s.handleSettlement)
	mux.HandleFunc("POST /api/clear", s.handleClear)

	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("GET /api/explain", s.handleExplain)

	mux.HandleFunc("/", s.handleStatic)

	handler := instrumentMetrics(loggingMiddleware(corsMiddleware(mux)))
	// h2c enables HTTP/2 without TLS for clients that want it.
	s.Handler = h2c.NewHandler(handler, &http2.Server{})

	return s
}

// handleStatic serves the single-page UI. Unknown paths fall back to
// index.html.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.staticDir == "" {
		http.NotFound(w, r)
		return
	}
	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}
	filePath := filepath.Join(s.staticDir, filepath.Clean(urlPath))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
		return
	}
	http.ServeFile(w, r, filePath)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// loggingMiddleware logs all incoming requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
