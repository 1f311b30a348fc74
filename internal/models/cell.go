// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Cell is a single value of a record.
//
// Exactly one of three states holds: Null (missing), Numeric (a finite
// number), or text (anything else). Only numeric cells are valid inputs to
// derivations.
type Cell struct {
	Text    string
	Number  float64
	Numeric bool
	Null    bool
}

// NullCell returns a missing value.
func NullCell() Cell {
	return Cell{Null: true}
}

// NumberCell returns a numeric cell. Non-finite numbers become text cells so
// they never reach an average.
func NumberCell(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{Text: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return Cell{Number: v, Numeric: true}
}

// TextCell returns a non-numeric cell holding s.
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// ParseCell coerces a raw field to a Cell. Blank fields are missing,
// finite numbers are numeric, anything else is kept as text.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NullCell()
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return TextCell(raw)
	}
	return Cell{Number: v, Numeric: true}
}

// Float returns the numeric value and whether the cell is valid for arithmetic.
func (c Cell) Float() (float64, bool) {
	if !c.Numeric {
		return 0, false
	}
	return c.Number, true
}

// String renders the cell for display.
func (c Cell) String() string {
	switch {
	case c.Null:
		return ""
	case c.Numeric:
		return strconv.FormatFloat(c.Number, 'g', -1, 64)
	default:
		return c.Text
	}
}

// MarshalJSON encodes numeric cells as numbers, missing cells as null, and
// everything else as strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch {
	case c.Null:
		return []byte("null"), nil
	case c.Numeric:
		return strconv.AppendFloat(nil, c.Number, 'g', -1, 64), nil
	default:
		return json.Marshal(c.Text)
	}
}
