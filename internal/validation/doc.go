// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package validation validates HTTP query parameters with go-playground/validator.
//
// Request structs declare their rules in `validate` tags; field names in
// messages come from the `query` tag. The custom "emotion" tag accepts only
// canonical emotion names.
//
//	type SeriesQuery struct {
//	    Emotion string `query:"emotion" validate:"required,emotion"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError() // VALIDATION_FAILED with field details
//	}
package validation
