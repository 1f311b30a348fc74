// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var (
	// ErrRaggedRow is returned when a row does not match the column count.
	ErrRaggedRow = errors.New("row width does not match column count")

	// ErrDuplicateColumn is returned when a column name appears twice.
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// RowStore is an immutable, ordered table of records.
type RowStore struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// NewRowStore builds a store from columns in schema order and rows in source
// order. The slices are owned by the store after the call.
func NewRowStore(columns []string, rows [][]Cell) (*RowStore, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedRow, i, len(row), len(columns))
		}
	}
	return &RowStore{columns: columns, index: index, rows: rows}, nil
}

// Len returns the number of records.
func (s *RowStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Columns returns a copy of the column names in schema order.
func (s *RowStore) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// HasColumn reports whether the store has a column with the given name.
func (s *RowStore) HasColumn(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Cell returns the cell at (row, column). Unknown columns read as missing.
func (s *RowStore) Cell(row int, column string) Cell {
	col, ok := s.index[column]
	if !ok {
		return NullCell()
	}
	return s.rows[row][col]
}

// Float returns the numeric value at (row, column) and whether it is valid.
func (s *RowStore) Float(row int, column string) (float64, bool) {
	return s.Cell(row, column).Float()
}

// Row returns a copy of the cells of one record in column order.
func (s *RowStore) Row(row int) []Cell {
	out := make([]Cell, len(s.rows[row]))
	copy(out, s.rows[row])
	return out
}

// EmotionSet returns the canonical emotions present as columns, in canonical order.
func (s *RowStore) EmotionSet() []string {
	set := make([]string, 0, len(CanonicalEmotions))
	for _, e := range CanonicalEmotions {
		if s.HasColumn(e) {
			set = append(set, e)
		}
	}
	return set
}

// TimeAxis returns the first present time axis candidate.
func (s *RowStore) TimeAxis() (string, bool) {
	for _, name := range TimeAxisCandidates {
		if s.HasColumn(name) {
			return name, true
		}
	}
	return "", false
}

// MarshalJSON encodes the store as an array of objects whose keys follow
// schema order.
func (s *RowStore) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range s.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeRecord(&buf, s.columns, row); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func writeRecord(buf *bytes.Buffer, columns []string, row []Cell) error {
	buf.WriteByte('{')
	for i, name := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := row[i].MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return nil
}
