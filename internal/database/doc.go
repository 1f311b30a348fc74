// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package database provides the DuckDB summary engine of the query service.
//
// The engine keeps an in-memory DuckDB instance holding one table, records,
// with a DOUBLE column per emotion present in the loaded row store. Cells
// that are not finite numbers are stored as NULL, so AVG over a column is
// the mean of the valid values and COUNT is the number of samples.
//
// Files:
//   - database.go: connection lifecycle and connection string tuning
//   - load.go: (re)loading a row store into the records table
//   - summary.go: per-emotion averages
//   - errors.go: close helpers and identifier quoting
//
// Usage:
//
//	db, err := database.New(&cfg.Summary)
//	if err != nil { ... }
//	defer db.Close()
//	if err := db.LoadStore(ctx, store); err != nil { ... }
//	averages, err := db.Summarize(ctx)
package database
