// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

/*
Package supervisor provides process supervision for both Emotrace binaries
using suture v4.

# Overview

Each binary builds a two-layer tree:

	RootSupervisor ("emotrace-server" or "emotrace-dashboard")
	├── DataSupervisor ("data-layer")
	│   ├── ReloadService (dashboard, if RELOAD_INTERVAL > 0)
	│   └── CacheJanitorService (dashboard)
	└── APISupervisor ("api-layer")
	    ├── WebSocketHubService (dashboard)
	    └── HTTPServerService

A crash in the data layer restarts independently of the HTTP server, which
keeps serving the last published snapshot.

# Usage

	tree, err := supervisor.NewSupervisorTree(logger, supervisor.TreeConfig{Name: "emotrace-dashboard"})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, "dashboard-http"))
	tree.AddDataService(services.NewCacheJanitorService(svc.ChartCache(), time.Minute, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Configuration

TreeConfig zero values fall back to suture's defaults: 5 failures, 30s
decay, 15s backoff, 10s shutdown timeout.

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning nil stops the service for good; returning an error restarts it;
on context cancellation services return promptly.

# What Is NOT Supervised

DuckDB is an embedded library, not a long-running service. Its connection
is owned by the database package and closed by main after the tree stops.

# Debugging Shutdown Issues

	report, err := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    log.Printf("Service didn't stop: %v", svc)
	}
*/
package supervisor
