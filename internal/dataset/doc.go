// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package dataset converts between external representations and models.RowStore.
//
// Two formats are supported:
//   - CSV with a header row (the dataset file served by the query service and
//     the dashboard's local fallback copy)
//   - a JSON array of flat objects (the /emociones response body)
//
// Both decoders keep column order: CSV follows the header, JSON follows the
// first appearance of each key. Values are coerced with models.ParseCell, so
// malformed numbers degrade to undefined values instead of failing the load.
package dataset
