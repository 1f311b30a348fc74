// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package charts renders derived views as PNG images with go-chart.
//
// Every renderer sets explicit axis ranges: go-chart rejects zero-width
// ranges, which occur naturally for single-record stores and constant
// series. Renderers take plain view values and return encoded bytes so the
// dashboard can cache them.
package charts
