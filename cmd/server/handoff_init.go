// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/config"
	"github.com/tomtom215/tastegraph/internal/handoff"
	"github.com/tomtom215/tastegraph/internal/similarity"
	"github.com/tomtom215/tastegraph/internal/supervisor/services"
)

// initHandoff opens the configured handoff store.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initHandoff(cfg *config.Config, logger zerolog.Logger) (handoff.Store, error) {
	store, err := handoff.NewStore(buildHandoffConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("open handoff store (%s): %w", cfg.Handoff.Backend, err)
	}

	logger.Info().
		Str("backend", cfg.Handoff.Backend).
		Dur("ttl", cfg.Handoff.TTL).
		Msg("Handoff store opened")
	return store, nil
}

func buildHandoffConfig(cfg *config.Config) handoff.Config {
	return handoff.Config{
		Backend:    handoff.Backend(cfg.Handoff.Backend),
		TTL:        cfg.Handoff.TTL,
		Path:       cfg.Handoff.Path,
		RedisURL:   cfg.Handoff.RedisURL,
		MaxEntries: cfg.Handoff.MaxEntries,
	}
}

// janitorTasks lists the periodic cleanups. The similarity cache is only
// cleaned when the client exists.
func janitorTasks(store handoff.Store, sim *similarity.Client) []services.CleanupTask {
	tasks := []services.CleanupTask{
		{Name: "handoff", Run: store.CleanupExpired},
	}
	if sim != nil {
		tasks = append(tasks, services.CleanupTask{
			Name: "similarity-cache",
			Run: func(context.Context) (int, error) {
				return sim.CleanupExpired(), nil
			},
		})
	}
	return tasks
}
