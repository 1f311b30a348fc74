// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

/*
Package services provides suture.Service wrappers for Emotrace components.

Each wrapper translates a component lifecycle (ListenAndServe, a ticker
loop) into suture's context-aware Serve and names itself via fmt.Stringer.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Shutdown timeout bounds connection draining

Reload (ReloadService):
  - Re-runs the dashboard source resolver every RELOAD_INTERVAL
  - A reload without data is logged; the previous snapshot stays published

Cache Janitor (CacheJanitorService):
  - Purges expired chart renders from the LRU cache

# Error Handling

Returning an error from Serve makes the supervisor restart the service.
Periodic services log failed cycles and keep running instead.
*/
package services
