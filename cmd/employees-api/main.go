// main is the entry point of the Employees API application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the SQLite slot store and load the employee collection
//     (seeding it on first run)
//  4. Build the record store, validation engine and auth gate
//  5. Register all HTTP routes and start the server in a goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/employees-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/employees-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/employees-api/internal/auth"
	"github.com/aanand-mishra/employees-api/internal/config"
	"github.com/aanand-mishra/employees-api/internal/http/router"
	"github.com/aanand-mishra/employees-api/internal/persistence"
	"github.com/aanand-mishra/employees-api/internal/storage/sqlite"
	"github.com/aanand-mishra/employees-api/internal/store"
	"github.com/aanand-mishra/employees-api/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting employees-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	slot, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer slot.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath),
		slog.String("key", cfg.StorageKey))

	// The adapter never fails: an absent or corrupt slot yields the seed set.
	adapter := persistence.New(slot, cfg.StorageKey, log)

	// ── 4. Core Components ────────────────────────────────────────────────
	records := store.New(adapter.Load(), adapter, log)
	records.Subscribe(func(c store.Change) {
		log.Debug("employees changed",
			slog.String("op", string(c.Op)),
			slog.Int("id", c.ID),
			slog.Int("count", len(c.Employees)))
	})

	engine := validation.New(time.Now, validation.WithMaxImageBytes(cfg.MaxImageBytes))

	gate, err := auth.NewGate(cfg.Auth.Username, cfg.Auth.Password, cfg.LoginDelay)
	if err != nil {
		log.Error("failed to initialise auth gate",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := &http.Server{
		Addr: cfg.HTTPServer.Addr,
		Handler: router.New(router.Deps{
			Store:  records,
			Engine: engine,
			Gate:   gate,
			Log:    log,
			Now:    time.Now,
		}),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That is expected, so it is not logged as an error.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
