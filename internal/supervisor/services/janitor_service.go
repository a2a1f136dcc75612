// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultJanitorInterval is used when NewJanitorService gets a non-positive interval.
const DefaultJanitorInterval = time.Minute

// CleanupTask removes expired entries from one store and reports how many.
type CleanupTask struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// JanitorService periodically runs cleanup tasks: expired handoff codes and
// expired similarity cache entries. A failing task is logged and retried on
// the next tick; it never stops the service.
type JanitorService struct {
	tasks    []CleanupTask
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string
}

// NewJanitorService creates a janitor running tasks every interval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewJanitorService(interval time.Duration, logger zerolog.Logger, tasks ...CleanupTask) *JanitorService {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &JanitorService{
		tasks:    tasks,
		interval: interval,
		timeout:  interval,
		logger:   logger.With().Str("service", "janitor").Logger(),
		name:     "janitor",
	}
}

// Serve implements suture.Service.
func (s *JanitorService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Int("tasks", len(s.tasks)).
		Msg("janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("janitor shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce runs every task once and returns the total number of entries removed.
func (s *JanitorService) RunOnce(ctx context.Context) int {
	total := 0
	for _, task := range s.tasks {
		taskCtx, cancel := context.WithTimeout(ctx, s.timeout)
		removed, err := task.Run(taskCtx)
		cancel()

		if err != nil {
			s.logger.Warn().Err(err).Str("task", task.Name).Msg("cleanup failed")
			continue
		}
		if removed > 0 {
			s.logger.Debug().Str("task", task.Name).Int("removed", removed).Msg("expired entries removed")
		}
		total += removed
	}
	return total
}

// String returns the service name for logging.
func (s *JanitorService) String() string {
	return s.name
}
