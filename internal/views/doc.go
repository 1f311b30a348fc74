// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package views derives presentation-ready projections from a RowStore.
//
// A Frame binds a store to its emotion set (canonical emotions present as
// columns) and its time axis (first of timestamp_sec, time, frame). All
// derivations are pure functions of the frame:
//
//   - Averages: per-emotion mean over valid values, sorted descending
//   - Dominant: per-record argmax emotion, paired with the record's time
//   - Heatmap: per-emotion means over up to 30 equal-width time segments
//   - Series: one emotion's values within an inclusive time range
//
// Ties always resolve to the earlier emotion in canonical order. Degenerate
// inputs (empty emotion set, a single record) produce explicit unavailable
// results; only caller mistakes, such as asking for an unknown emotion or an
// out-of-extent range, are reported as errors.
package views
