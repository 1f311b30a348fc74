// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package views

import "errors"

var (
	// ErrNilStore is returned when a frame is built without a store.
	ErrNilStore = errors.New("row store is nil")

	// ErrNoTimeAxis is returned by time-based views when the store has none
	// of the time axis columns.
	ErrNoTimeAxis = errors.New("no time axis column present")

	// ErrNoTimeValues is returned when the time axis has no numeric values.
	ErrNoTimeValues = errors.New("time axis has no numeric values")

	// ErrUnknownEmotion is returned when a requested emotion is not in the
	// frame's emotion set.
	ErrUnknownEmotion = errors.New("emotion not in emotion set")

	// ErrInvalidRange is returned for inverted, NaN, or out-of-extent time ranges.
	ErrInvalidRange = errors.New("invalid time range")
)
