// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/emotrace/internal/config"
	"github.com/tomtom215/emotrace/internal/logging"
)

// DB wraps an in-memory DuckDB connection used to summarize a row store.
type DB struct {
	conn *sql.DB
	cfg  *config.SummaryConfig

	mu       sync.RWMutex
	emotions []string
	loaded   bool
	closed   bool
}

// New opens an in-memory DuckDB instance tuned by cfg.
func New(cfg *config.SummaryConfig) (*DB, error) {
	if cfg == nil {
		cfg = &config.SummaryConfig{}
	}

	conn, err := sql.Open("duckdb", connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps the in-memory catalog visible to every query.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Debug().
		Str("max_memory", cfg.DuckDBMaxMemory).
		Int("threads", threadCount(cfg)).
		Msg("DuckDB summary engine opened")

	return &DB{conn: conn, cfg: cfg}, nil
}

// connectionString builds the DuckDB DSN. Extension autoloading is disabled
// so the engine never reaches the network.
func connectionString(cfg *config.SummaryConfig) string {
	dsn := fmt.Sprintf(":memory:?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		threadCount(cfg))
	if cfg.DuckDBMaxMemory != "" {
		dsn += "&max_memory=" + cfg.DuckDBMaxMemory
	}
	return dsn
}

func threadCount(cfg *config.SummaryConfig) int {
	if cfg.DuckDBThreads > 0 {
		return cfg.DuckDBThreads
	}
	return runtime.NumCPU()
}

// Ping checks that the connection is usable.
func (db *DB) Ping(ctx context.Context) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return ErrClosed
	}
	return db.conn.PingContext(ctx)
}

// Close releases the DuckDB instance. It is safe to call more than once.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil
	}
	db.closed = true
	return db.conn.Close()
}
