// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRowStore_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewRowStore([]string{"time", "happy"}, [][]Cell{{NumberCell(0)}})
	if !errors.Is(err, ErrRaggedRow) {
		t.Errorf("expected ErrRaggedRow, got %v", err)
	}

	_, err = NewRowStore([]string{"happy", "happy"}, nil)
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Errorf("expected ErrDuplicateColumn, got %v", err)
	}
}

func TestRowStore_SchemaHelpers(t *testing.T) {
	t.Parallel()

	store, err := NewRowStore(
		[]string{"frame", "time", "sad", "label", "happy"},
		[][]Cell{{NumberCell(1), NumberCell(0.5), NumberCell(0.2), TextCell("a"), NumberCell(0.7)}},
	)
	if err != nil {
		t.Fatalf("NewRowStore: %v", err)
	}

	if got := store.EmotionSet(); !reflect.DeepEqual(got, []string{"happy", "sad"}) {
		t.Errorf("EmotionSet() = %v, want canonical order [happy sad]", got)
	}
	if axis, ok := store.TimeAxis(); !ok || axis != "time" {
		t.Errorf("TimeAxis() = %q, %v, want time", axis, ok)
	}
	if v, ok := store.Float(0, "happy"); !ok || v != 0.7 {
		t.Errorf("Float(0, happy) = %v, %v", v, ok)
	}
	if _, ok := store.Float(0, "label"); ok {
		t.Error("text cell must not be numeric")
	}
	if !store.Cell(0, "missing").Null {
		t.Error("unknown column should read as missing")
	}
}

func TestRowStore_TimeAxisPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		columns []string
		want    string
		ok      bool
	}{
		{[]string{"frame", "time", "timestamp_sec"}, "timestamp_sec", true},
		{[]string{"frame", "time"}, "time", true},
		{[]string{"frame", "happy"}, "frame", true},
		{[]string{"happy"}, "", false},
	}

	for _, tt := range tests {
		store, err := NewRowStore(tt.columns, nil)
		if err != nil {
			t.Fatalf("NewRowStore(%v): %v", tt.columns, err)
		}
		got, ok := store.TimeAxis()
		if got != tt.want || ok != tt.ok {
			t.Errorf("TimeAxis(%v) = %q, %v, want %q, %v", tt.columns, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRowStore_MarshalJSON_PreservesOrder(t *testing.T) {
	t.Parallel()

	store, err := NewRowStore(
		[]string{"time", "sad", "happy", "note"},
		[][]Cell{
			{NumberCell(0), NumberCell(0.1), NumberCell(0.8), NullCell()},
			{NumberCell(1), NumberCell(0.9), NumberCell(0.2), TextCell("x")},
		},
	)
	if err != nil {
		t.Fatalf("NewRowStore: %v", err)
	}

	got, err := store.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `[{"time":0,"sad":0.1,"happy":0.8,"note":null},{"time":1,"sad":0.9,"happy":0.2,"note":"x"}]`
	if string(got) != want {
		t.Errorf("MarshalJSON() =\n%s\nwant\n%s", got, want)
	}
}

func TestRowStore_NilLen(t *testing.T) {
	t.Parallel()

	var store *RowStore
	if store.Len() != 0 {
		t.Error("nil store should have zero length")
	}
}
