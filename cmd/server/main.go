// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package main is the entry point for the Showlog server.
//
// Showlog is a self-hosted personal media watch tracker. It keeps an
// append-only log of everything you watch, tracks per-episode progress and
// journals, organizes a library of status lists and custom lists, and derives
// statistics, streaks, and achievements from the history on demand.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from environment variables and config files (Koanf v2)
//  2. Database: open DuckDB and create the schema
//  3. Metadata provider: optional client for series details, behind a circuit breaker
//  4. Reclassifier: background loop that moves library titles between status lists
//  5. HTTP server: REST API with Prometheus metrics at /metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, METADATA_BASE_URL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// The metadata provider is optional. Without METADATA_BASE_URL the server runs
// fine; series reclassification is disabled and the reclassify endpoint
// returns 503.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Checkpoints and closes the database
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/showlog/internal/api"
	"github.com/tomtom215/showlog/internal/config"
	"github.com/tomtom215/showlog/internal/database"
	"github.com/tomtom215/showlog/internal/logging"
	"github.com/tomtom215/showlog/internal/metadata"
	"github.com/tomtom215/showlog/internal/reclassify"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("metadata_enabled", cfg.Metadata.BaseURL != "").
		Msg("Starting Showlog")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metadata provider is optional. Without it, series reclassification is
	// disabled and movie-only reclassification still works via the API.
	var runner *reclassify.Runner
	if cfg.Metadata.BaseURL != "" {
		provider := metadata.NewClient(cfg.Metadata)
		runner = reclassify.NewRunner(db, provider, cfg.Metadata.RefreshInterval)
		go runner.Start(ctx)
		logging.Info().
			Dur("interval", cfg.Metadata.RefreshInterval).
			Msg("Reclassifier started")
	} else {
		logging.Info().Msg("Metadata provider not configured, reclassification disabled")
	}

	handler := api.NewHandler(db, runner)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server error")
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
