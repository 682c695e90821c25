// main is the entry point for the Civic-Sense API server.
//
// This file is the composition root: it reads configuration, opens the
// SQLite database, picks the deployment variant (remote authority vs fully
// local), wires the engine and the access gate together, and starts
// listening. Every other package stays free of this wiring so it can be
// tested in isolation.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/civicsense/backend/internal/appconfig"
	"github.com/civicsense/backend/internal/db"
	"github.com/civicsense/backend/internal/gate"
	"github.com/civicsense/backend/internal/handlers"
	"github.com/civicsense/backend/internal/localauth"
	"github.com/civicsense/backend/internal/remote"
	"github.com/civicsense/backend/internal/reports"
	"github.com/civicsense/backend/internal/session"
)

func main() {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := appconfig.Load(ctx)
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.LoggerDebugOn {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Deployment variant: with BACKEND_URL set, the remote authority is both
	// the reports source of truth and the authenticator; without it the
	// engine runs purely locally and sign-in goes through the offline
	// credential store.
	var authority reports.Authority
	var authenticator gate.Authenticator
	if cfg.BackendURL != "" {
		client := remote.New(cfg.BackendURL, logger)
		authority = client
		authenticator = client
		logger.Info("remote authority configured", "base", cfg.BackendURL)
	} else {
		authenticator = &localauth.Store{DB: database, Secret: cfg.JWTSecret}
		logger.Info("no authority configured, running fully local")
	}

	engine := reports.New(authority, logger)
	accessGate := gate.New(authenticator, &session.SQLStore{DB: database}, logger)

	// Best effort: an unreachable authority at boot just means the feed
	// starts empty and fills in once it comes back.
	if err := engine.Refresh(ctx); err != nil {
		logger.Warn("initial feed refresh failed", "error", err)
	}

	srv := &handlers.Server{
		Engine:        engine,
		Gate:          accessGate,
		RetentionDays: cfg.RetentionDays,
		Log:           logger,
	}

	logger.Info("civic-sense API listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Routes()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
