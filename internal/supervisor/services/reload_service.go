// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultReloadTimeout bounds one reload cycle.
const DefaultReloadTimeout = 30 * time.Second

// Reloader re-resolves the dashboard dataset. The new result replaces the
// previous one even when it holds no data; an error only reports that case.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloaderFunc adapts a function to Reloader.
type ReloaderFunc func(ctx context.Context) error

// Reload calls f(ctx).
func (f ReloaderFunc) Reload(ctx context.Context) error {
	return f(ctx)
}

// ReloadServiceConfig holds configuration for the reload service.
type ReloadServiceConfig struct {
	// Interval is how often the dataset is re-resolved. Must be positive.
	Interval time.Duration

	// Timeout bounds each reload. Zero selects DefaultReloadTimeout.
	Timeout time.Duration
}

// ReloadService periodically re-runs the source resolver so a dashboard
// that started on the local fallback picks the API up once it recovers.
type ReloadService struct {
	reloader Reloader
	config   ReloadServiceConfig
	logger   zerolog.Logger
	name     string
}

// NewReloadService creates a new reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(reloader Reloader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultReloadTimeout
	}
	return &ReloadService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "reload").Logger(),
		name:     "reload-service",
	}
}

// Serve implements suture.Service. The initial load happens before the tree
// starts, so the first reload waits one interval.
func (s *ReloadService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Info().Msg("periodic reload disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.config.Interval).Msg("reload service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reload service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

func (s *ReloadService) reload(ctx context.Context) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.reloader.Reload(reloadCtx); err != nil {
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("scheduled reload produced no data")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("scheduled reload complete")
}

// String returns the service name for logging.
func (s *ReloadService) String() string {
	return s.name
}
