// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package config loads Emotrace configuration with Koanf.
//
// Configuration is layered, later sources overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/emotrace/config.yaml
//  3. Environment variables from an explicit mapping table (HTTP_PORT,
//     API_URL, FALLBACK_CSV_PATH, LOG_LEVEL, ...)
//
// Both binaries share one Config. The query service reads the dataset,
// summary and server sections; the dashboard reads dashboard and breaker.
// Security and logging apply to both.
//
// Example config.yaml:
//
//	dataset:
//	  path: data/emociones_anuncio_expandido.csv
//	summary:
//	  engine: duckdb
//	dashboard:
//	  api_url: http://emotrace-api:8000
//	  fetch_timeout: 3s
//	  fallback_path: data/emotions_extended.csv
//	logging:
//	  level: debug
//	  format: console
package config
