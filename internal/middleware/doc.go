// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package middleware provides HTTP middleware shared by the query service
// and the dashboard.
//
//   - RequestID: propagates or generates X-Request-ID and seeds logging context
//   - PrometheusMetrics: request counts, latency and in-flight gauge
//   - AccessLog: one structured zerolog line per request
//
// Middleware is written against http.HandlerFunc and adapted to chi's
// func(http.Handler) http.Handler form by the routers.
package middleware
