// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/emotrace/internal/api"
	"github.com/tomtom215/emotrace/internal/charts"
	"github.com/tomtom215/emotrace/internal/config"
	"github.com/tomtom215/emotrace/internal/dashboard"
	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/resolver"
	"github.com/tomtom215/emotrace/internal/supervisor"
	"github.com/tomtom215/emotrace/internal/supervisor/services"
	"github.com/tomtom215/emotrace/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

var errNoData = errors.New("no data available")

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "emotrace-dashboard",
	})

	logging.Info().
		Str("api_url", cfg.Dashboard.APIURL).
		Str("fallback", cfg.Dashboard.FallbackPath).
		Str("addr", cfg.Dashboard.Addr()).
		Msg("Starting Emotrace dashboard")

	res, scheduled, recorder, err := newResolvers(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create source resolver")
	}

	hub := websocket.NewHub()
	svc := dashboard.New(res, recorder, dashboard.Options{
		HeatmapMaxBins: cfg.Dashboard.HeatmapMaxBins,
		Chart:          charts.Options{Width: cfg.Dashboard.ChartWidth, Height: cfg.Dashboard.ChartHeight},
		CacheSize:      cfg.Dashboard.ChartCacheSize,
		CacheTTL:       cfg.Dashboard.ChartCacheTTL,
		Listener:       hub,
		Scheduled:      scheduled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if snap := svc.Reload(ctx); !snap.Available() {
		logging.Warn().Msg(snap.AbsenceMessage())
	}

	handler := dashboard.NewHandler(svc)
	live := websocket.NewHandler(hub, cfg.Security.CORSOrigins)
	server := &http.Server{
		Addr:              cfg.Dashboard.Addr(),
		Handler:           dashboard.NewRouter(handler, api.NewChiMiddlewareFromSecurity(&cfg.Security), live),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Dashboard.Timeout,
		WriteTimeout:      cfg.Dashboard.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		Name:            "emotrace-dashboard",
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, "dashboard-http"))
	tree.AddDataService(services.NewCacheJanitorService(svc.ChartCache(), services.DefaultJanitorInterval, logging.WithComponent("chart-cache")))
	if cfg.Dashboard.ReloadInterval > 0 {
		reloader := services.ReloaderFunc(func(ctx context.Context) error {
			if !svc.ReloadScheduled(ctx).Available() {
				return errNoData
			}
			return nil
		})
		tree.AddDataService(services.NewReloadService(reloader, services.ReloadServiceConfig{
			Interval: cfg.Dashboard.ReloadInterval,
		}, logging.WithComponent("reload")))
	}

	logging.Info().Str("addr", server.Addr).Msg("Dashboard listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Dashboard stopped")
}

// newResolvers builds the resolver used at startup and for manual reloads,
// plus a second one for scheduled reloads whose remote fetch sits behind a
// circuit breaker. Both share the logging, metrics and notice observers.
func newResolvers(cfg *config.Config) (direct, scheduled *resolver.Resolver, recorder *resolver.Recorder, err error) {
	fetcher, err := resolver.NewHTTPFetcher(cfg.Dashboard.APIURL, cfg.Dashboard.FetchTimeout)
	if err != nil {
		return nil, nil, nil, err
	}

	breakerCfg := resolver.DefaultBreakerConfig()
	breakerCfg.MinRequests = cfg.Breaker.MinRequests
	breakerCfg.FailureRatio = cfg.Breaker.FailureRatio
	breakerCfg.Interval = cfg.Breaker.Interval
	breakerCfg.OpenTimeout = cfg.Breaker.OpenTimeout

	recorder = &resolver.Recorder{}
	rcfg := resolver.Config{
		FallbackPath: cfg.Dashboard.FallbackPath,
		FetchTimeout: cfg.Dashboard.FetchTimeout,
	}
	observer := resolver.WithObserver(resolver.Observers(resolver.LogObserver, resolver.MetricsObserver, recorder.Observe))

	direct = resolver.New(fetcher, rcfg, observer)
	scheduled = resolver.New(resolver.NewBreakerFetcher(fetcher, breakerCfg), rcfg, observer)
	return direct, scheduled, recorder, nil
}
