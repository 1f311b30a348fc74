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
	"github.com/tomtom215/emotrace/internal/config"
	"github.com/tomtom215/emotrace/internal/database"
	"github.com/tomtom215/emotrace/internal/dataset"
	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/models"
	"github.com/tomtom215/emotrace/internal/supervisor"
	"github.com/tomtom215/emotrace/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

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
		Service:   "emotrace-server",
	})

	logging.Info().
		Str("dataset", cfg.Dataset.Path).
		Str("summary_engine", cfg.Summary.Engine).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Emotrace query service")

	store, err := dataset.ReadFile(cfg.Dataset.Path)
	if err != nil {
		logging.Error().Err(err).Msg("Dataset unavailable, data endpoints will answer 503")
	} else {
		logging.Info().
			Int("records", store.Len()).
			Strs("columns", store.Columns()).
			Strs("emotions", store.EmotionSet()).
			Msg("Dataset loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summarizer, closeSummarizer, err := newSummarizer(ctx, cfg, store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize summary engine")
	}
	defer closeSummarizer()

	router := api.NewRouter(api.NewHandler(store, summarizer), api.NewChiMiddlewareFromSecurity(&cfg.Security))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		Name:            "emotrace-server",
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, "query-http"))

	logging.Info().Str("addr", server.Addr).Msg("Query service listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Query service stopped")
}

// newSummarizer selects the /resumen engine. The returned close function is
// always safe to call.
func newSummarizer(ctx context.Context, cfg *config.Config, store *models.RowStore) (api.Summarizer, func(), error) {
	noop := func() {}
	if cfg.Summary.Engine != config.SummaryEngineDuckDB {
		return api.NewMemorySummarizer(store), noop, nil
	}

	db, err := database.New(&cfg.Summary)
	if err != nil {
		return nil, noop, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}

	if store != nil {
		loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := db.LoadStore(loadCtx, store); err != nil {
			closeDB()
			return nil, noop, err
		}
	}

	logging.Info().Msg("DuckDB summary engine ready")
	return db, closeDB, nil
}
