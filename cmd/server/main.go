package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"divvy/internal/config"
	"divvy/internal/explain"
	apphttp "divvy/internal/http"
	"divvy/internal/ledger"
	"divvy/internal/storage"
	"divvy/internal/storage/sqlite"
	"divvy/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	led := ledger.New()

	var store storage.Store
	if cfg.SQLiteDBPath != "" {
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			slog.Error("Failed to initialize snapshot store", "error", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s

		people, expenses, err := s.Load(context.Background())
		if err != nil {
			slog.Error("Failed to load snapshot", "error", err)
			os.Exit(1)
		}
		if err := led.Restore(people, expenses); err != nil {
			slog.Error("Failed to restore ledger from snapshot", "error", err)
			os.Exit(1)
		}
		slog.Info("Ledger restored", "database", cfg.SQLiteDBPath,
			"people", len(people), "expenses", len(expenses))
	} else {
		slog.Info("Snapshot persistence disabled; ledger is in-memory only")
	}

	var gen explain.Generator
	if cfg.ExplainAPIURL != "" {
		gen = explain.NewOpenAIGenerator(cfg.ExplainAPIURL, cfg.ExplainAPIKey, cfg.ExplainModel)
		slog.Info("Explanation generator configured", "model", cfg.ExplainModel)
	}

	srv := apphttp.NewServer(":"+cfg.Port, led, store, explain.New(gen), cfg.StaticDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	slog.Info("Server starting", "address", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Server stopped gracefully")
}
