// Cellarius - Wine Cellar Recommendations and Catalog Matching
// Copyright 2026 Cellarius contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cellarius/cellarius

// Package main is the entry point for the Cellarius server.
//
// Cellarius is a self-hosted wine cellar companion that recommends
// bottles from a catalog and resolves partial label fields (from photos
// or free-text search) to catalog entries.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load via Koanf v2 (defaults, config file,
//     environment variables)
//  2. Database: DuckDB with the wines, profiles, factor, and curated
//     recommendation tables
//  3. Recommendation engine: curated cache -> personalized -> cold-start
//     fallback chain
//  4. Catalog matcher: recall-then-rank label and search matching
//  5. HTTP server: Chi router with CORS, rate limiting, and Prometheus
//     metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits up to 10s for in-flight requests,
// then closes the database.
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

	"github.com/cellarius/cellarius/internal/api"
	"github.com/cellarius/cellarius/internal/config"
	"github.com/cellarius/cellarius/internal/database"
	"github.com/cellarius/cellarius/internal/logging"
	"github.com/cellarius/cellarius/internal/match"
	"github.com/cellarius/cellarius/internal/recommend"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("weight_profile", cfg.Match.WeightProfile).
		Int("top_k", cfg.Recommend.TopK).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	engineCfg := recommend.DefaultConfig()
	engineCfg.TopK = cfg.Recommend.TopK
	engineCfg.MinCurated = cfg.Recommend.MinCurated
	engineCfg.CandidatePool = cfg.Recommend.CandidatePool
	engine, err := recommend.NewEngine(engineCfg, db, logging.Logger())
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	weights, err := match.WeightsByName(cfg.Match.WeightProfile)
	if err != nil {
		return fmt.Errorf("resolve weight profile: %w", err)
	}
	matcher, err := match.New(db, match.Config{
		Weights:      weights,
		RecallLimit:  cfg.Match.RecallLimit,
		DefaultLimit: cfg.Match.DefaultLimit,
		MaxLimit:     cfg.Match.MaxLimit,
	}, logging.Logger())
	if err != nil {
		return fmt.Errorf("create matcher: %w", err)
	}

	router := api.NewRouter(api.NewHandlers(engine, matcher, db), api.RouterConfig{
		CORSOrigins:     cfg.API.CORSOrigins,
		RateLimitReqs:   cfg.API.RateLimitReqs,
		RateLimitWindow: cfg.API.RateLimitWindow,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logging.Info().Msg("Server stopped")
	return nil
}
