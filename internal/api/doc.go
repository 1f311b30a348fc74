// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

/*
Package api provides the HTTP layer of the Emotrace query service.

The query service holds one immutable row store, loaded from the dataset CSV at
startup, and serves it over three read-only endpoints:

  - GET /           liveness message {"message": "..."}
  - GET /emociones  every record as a JSON object, keys in column order
  - GET /resumen    emotion -> mean of valid values, canonical order, null when undefined

Health probes (/api/v1/health/live, /api/v1/health/ready) answer with the
standard envelope written by ResponseWriter, and /metrics exposes Prometheus
metrics.

Summary Engines:

/resumen delegates to a Summarizer. MemorySummarizer derives the averages from
the row store with the views package; the database package provides a DuckDB
implementation selected with SUMMARY_ENGINE=duckdb.

Middleware:

The router uses chi with RequestID, RealIP, Recoverer, go-chi/cors (unrestricted
origin by default) and go-chi/httprate. ChiMiddleware and the response envelope
are shared with the dashboard.

Usage Example:

	store, _ := dataset.ReadFile(cfg.Dataset.Path)
	handler := api.NewHandler(store, api.NewMemorySummarizer(store))
	router := api.NewRouter(handler, api.NewChiMiddlewareFromSecurity(&cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
