// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package metrics provides Prometheus instrumentation for Emotrace.
//
// Metrics are registered on the default registry through promauto and exposed
// by both binaries at /metrics. Covered areas:
//   - API endpoint latency and throughput
//   - dataset source resolution (remote, local, none) and fetch latency
//   - the remote fetch circuit breaker
//   - view derivation latency and chart cache efficiency
//   - DuckDB summary queries
package metrics
