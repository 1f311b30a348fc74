// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/emotrace/internal/logging"
)

// Validate checks configuration for invalid values
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDashboard(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	switch c.Summary.Engine {
	case SummaryEngineMemory, SummaryEngineDuckDB:
	default:
		return fmt.Errorf("SUMMARY_ENGINE must be %q or %q, got: %q", SummaryEngineMemory, SummaryEngineDuckDB, c.Summary.Engine)
	}
	if c.Summary.DuckDBThreads < 1 {
		return fmt.Errorf("DUCKDB_THREADS must be at least 1, got: %d", c.Summary.DuckDBThreads)
	}
	return nil
}

func (c *Config) validateServer() error {
	if err := validatePort(c.Server.Port, "HTTP_PORT"); err != nil {
		return err
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got: %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging, or production, got: %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateDashboard() error {
	d := c.Dashboard
	if err := validatePort(d.Port, "DASHBOARD_PORT"); err != nil {
		return err
	}
	if d.Timeout <= 0 {
		return fmt.Errorf("DASHBOARD_TIMEOUT must be positive, got: %s", d.Timeout)
	}
	if err := validateHTTPURL(d.APIURL, "API_URL"); err != nil {
		return err
	}
	if d.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got: %s", d.FetchTimeout)
	}
	if strings.TrimSpace(d.FallbackPath) == "" {
		return fmt.Errorf("FALLBACK_CSV_PATH is required")
	}
	if d.HeatmapMaxBins < 1 {
		return fmt.Errorf("HEATMAP_MAX_BINS must be at least 1, got: %d", d.HeatmapMaxBins)
	}
	if d.ChartWidth < 200 || d.ChartHeight < 150 {
		return fmt.Errorf("chart size must be at least 200x150, got: %dx%d", d.ChartWidth, d.ChartHeight)
	}
	if d.ChartCacheSize < 0 {
		return fmt.Errorf("CHART_CACHE_SIZE must not be negative, got: %d", d.ChartCacheSize)
	}
	if d.ReloadInterval != 0 && d.ReloadInterval < time.Second {
		return fmt.Errorf("RELOAD_INTERVAL must be 0 (disabled) or at least 1s, got: %s", d.ReloadInterval)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got: %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.OpenTimeout <= 0 {
		return fmt.Errorf("BREAKER_OPEN_TIMEOUT must be positive, got: %s", c.Breaker.OpenTimeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * for any)")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got: %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got: %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got: %q", c.Logging.Format)
	}
	return nil
}

func validatePort(port int, fieldName string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got: %d", fieldName, port)
	}
	return nil
}
