// main is the entry point of the BookNest API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (overridable by env vars)
//  2. Initialise the logger
//  3. Open the record store (SQLite or MySQL) and create its tables
//  4. Create the session token service
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down, then close the store
//
// RUNNING THE SERVER:
//
//	go run ./cmd/booknest-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/booknest-api
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/booknest-api/internal/auth"
	"github.com/aanand-mishra/booknest-api/internal/config"
	"github.com/aanand-mishra/booknest-api/internal/http/router"
	"github.com/aanand-mishra/booknest-api/internal/storage/mysql"
	"github.com/aanand-mishra/booknest-api/internal/storage/sqlite"
	"github.com/aanand-mishra/booknest-api/internal/storage/sqlstore"
)

const version = "1.0.0"

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog.SetDefault makes the handlers' package-level slog calls use it.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting booknest-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// An unreachable database is logged but does not stop the server:
	// requests that need it answer 500 until it comes back.
	store, err := openStore(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := store.Ping(); err != nil {
		log.Error("database is not reachable", slog.String("error", err.Error()))
	} else if err := store.Migrate(); err != nil {
		log.Error("failed to create tables", slog.String("error", err.Error()))
	} else {
		log.Info("storage initialised", slog.String("driver", cfg.Storage.Driver))
	}

	// ── 4. Session Tokens ─────────────────────────────────────────────────
	tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Error("failed to initialise token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router.New(store, tokens, cfg),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
	}

	if err := store.Close(); err != nil {
		log.Error("failed to close storage", slog.String("error", err.Error()))
	}

	log.Info("server stopped gracefully")
}

// openStore picks the driver named in the config.
func openStore(cfg *config.Config) (*sqlstore.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.New(cfg)
	case config.DriverMySQL:
		return mysql.New(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger picks the slog handler for env: text at DEBUG for local
// runs, JSON for staging (DEBUG) and prod (INFO) where logs are collected.
func setupLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	switch env {
	case "prod":
		opts.Level = slog.LevelInfo
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
}
