// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package config

import (
	"net"
	"strconv"
	"time"
)

// Summary engines for /resumen.
const (
	SummaryEngineMemory = "memory"
	SummaryEngineDuckDB = "duckdb"
)

// Config holds all application configuration
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Summary   SummaryConfig   `koanf:"summary"`
	Server    ServerConfig    `koanf:"server"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig locates the CSV served by the query service.
type DatasetConfig struct {
	Path string `koanf:"path"`
}

// SummaryConfig selects how /resumen averages are computed.
type SummaryConfig struct {
	// Engine is "memory" (derived from the row store) or "duckdb".
	Engine string `koanf:"engine"`

	// DuckDBMaxMemory caps the in-memory DuckDB instance, e.g. "256MB".
	DuckDBMaxMemory string `koanf:"duckdb_max_memory"`

	// DuckDBThreads limits DuckDB worker threads.
	DuckDBThreads int `koanf:"duckdb_threads"`
}

// ServerConfig holds query service HTTP settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DashboardConfig holds dashboard server and data loading settings
type DashboardConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// APIURL is the query service base URL.
	APIURL string `koanf:"api_url"`

	// FetchTimeout bounds the remote fetch before falling back.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// FallbackPath is the local CSV used when the query service is unavailable.
	FallbackPath string `koanf:"fallback_path"`

	HeatmapMaxBins int `koanf:"heatmap_max_bins"`
	ChartWidth     int `koanf:"chart_width"`
	ChartHeight    int `koanf:"chart_height"`

	ChartCacheSize int           `koanf:"chart_cache_size"`
	ChartCacheTTL  time.Duration `koanf:"chart_cache_ttl"`

	// ReloadInterval re-runs the source resolver periodically. Zero disables it.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// Addr returns host:port for net/http.
func (d DashboardConfig) Addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// BreakerConfig tunes the circuit breaker around the remote fetch
type BreakerConfig struct {
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
	Interval     time.Duration `koanf:"interval"`
	OpenTimeout  time.Duration `koanf:"open_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
