// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

/*
Package main is the entry point for the Emotrace dashboard.

The dashboard resolves its dataset from the query service (GET /emociones)
and falls back to a local CSV when the service is unreachable. It renders
an HTML page with PNG charts, a heatmap and the full record table, and
exposes every derived view as JSON under /api/v1/views.

# Application Architecture

	RootSupervisor ("emotrace-dashboard")
	├── DataSupervisor ("data-layer")
	│   ├── ReloadService (RELOAD_INTERVAL > 0)
	│   └── CacheJanitorService
	└── APISupervisor ("api-layer")
	    ├── WebSocketHubService (live reload notifications on /ws)
	    └── HTTPServerService ("dashboard-http")

The first load runs before the tree starts so the page has data (or the
absence message) on the first request.

# Configuration

	API_URL=http://127.0.0.1:8000
	FETCH_TIMEOUT=3s
	FALLBACK_CSV_PATH=data/emotions_extended.csv
	DASHBOARD_PORT=8501
	RELOAD_INTERVAL=0            # e.g. 1m; 0 disables periodic reload
	CHART_CACHE_SIZE=128
	CHART_CACHE_TTL=10m
*/
package main
