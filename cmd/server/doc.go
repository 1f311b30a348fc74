// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

/*
Package main is the entry point for the Emotrace query service.

The query service loads a CSV of per-frame emotion scores once at startup
and serves it read-only:

	GET /            liveness message
	GET /emociones   every record, every column, in file order
	GET /resumen     per-emotion mean of the valid values
	GET /api/v1/health/live, /api/v1/health/ready
	GET /metrics     Prometheus metrics

# Application Architecture

	RootSupervisor ("emotrace-server")
	├── DataSupervisor ("data-layer")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService ("query-http")

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, bridged to slog for suture events
 3. Dataset: CSV parsed into an immutable row store
 4. Summary engine: in-memory, or DuckDB when SUMMARY_ENGINE=duckdb
 5. Supervisor tree and HTTP server

# Configuration

	DATASET_PATH=data/emociones_anuncio_expandido.csv
	HTTP_HOST=0.0.0.0
	HTTP_PORT=8000
	SUMMARY_ENGINE=memory        # memory or duckdb
	LOG_LEVEL=info
	LOG_FORMAT=json

A missing or unreadable dataset does not stop the service: data endpoints
answer 503 and the readiness probe fails until the file is fixed and the
service restarted.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree; the HTTP server drains for
up to the shutdown timeout and the DuckDB connection is closed last.
*/
package main
