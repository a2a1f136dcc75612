// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

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

	"github.com/tomtom215/tastegraph/internal/api"
	"github.com/tomtom215/tastegraph/internal/config"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/resilience"
	"github.com/tomtom215/tastegraph/internal/supervisor"
	"github.com/tomtom215/tastegraph/internal/supervisor/services"
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
		Str("environment", cfg.Server.Environment).
		Str("addr", cfg.Server.Addr()).
		Str("handoff_backend", cfg.Handoff.Backend).
		Bool("similarity", cfg.Similarity.Active()).
		Msg("Starting Tastegraph")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS before exposing the service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recommendComponents, err := initRecommend(cfg, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	store, err := initHandoff(cfg, logging.WithComponent("handoff"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize handoff store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing handoff store")
		}
	}()

	var optionalBreakers []*resilience.Breaker
	if recommendComponents.Similarity != nil {
		optionalBreakers = append(optionalBreakers, recommendComponents.Similarity.Breaker())
	}
	handler := api.NewHandler(recommendComponents.Engine, store, api.HandlerOptions{
		CatalogBreaker:   recommendComponents.Catalog.Breaker(),
		OptionalBreakers: optionalBreakers,
		DefaultLimit:     cfg.Recommend.DefaultLimit,
		Timeout:          cfg.Recommend.RequestTimeout,
	})
	chiMw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	// The write timeout must outlast the request timeout so a slow upstream
	// fan-out still gets its 504 envelope written.
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Recommend.RequestTimeout + cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(slog.New(logging.NewSlogHandlerWithLogger(logging.WithComponent("supervisor"))), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewJanitorService(
		cfg.Handoff.CleanupInterval,
		logging.WithComponent("janitor"),
		janitorTasks(store, recommendComponents.Similarity)...,
	))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Tastegraph stopped")
}
