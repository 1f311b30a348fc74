// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package models defines the in-memory data model shared by the query service
// and the dashboard.
//
// A RowStore is an immutable, ordered table of records. Each record carries a
// time-axis value and per-emotion intensity scores, plus any other columns of
// the source file. Every value is a Cell: numeric cells take part in
// arithmetic, everything else (empty strings, labels, NaN) is treated as
// undefined and skipped rather than rejected.
//
// The canonical emotion set and the time-axis candidates are fixed:
//
//	CanonicalEmotions = angry, disgust, fear, happy, sad, surprise, neutral
//	TimeAxisCandidates = timestamp_sec, time, frame
//
// Stores are built once per load and never mutated; a reload produces a new
// store, so a *RowStore may be shared freely between goroutines.
package models
