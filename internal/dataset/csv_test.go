// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dataset

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	input := "frame,timestamp_sec,happy,sad,label\n" +
		"0,0.0,0.8,0.1,start\n" +
		"1,0.5,n/a,0.9,\n" +
		"2,1.0,0.3\n"

	store, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	if store.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", store.Len())
	}
	wantCols := []string{"frame", "timestamp_sec", "happy", "sad", "label"}
	if got := store.Columns(); !reflect.DeepEqual(got, wantCols) {
		t.Errorf("Columns() = %v, want %v", got, wantCols)
	}
	if v, ok := store.Float(0, "happy"); !ok || v != 0.8 {
		t.Errorf("row 0 happy = %v, %v", v, ok)
	}
	if _, ok := store.Float(1, "happy"); ok {
		t.Error("n/a should be coerced to undefined")
	}
	if !store.Cell(1, "label").Null {
		t.Error("empty field should be missing")
	}
	if !store.Cell(2, "sad").Null {
		t.Error("short row should be padded with missing values")
	}
}

func TestParseCSV_HeaderNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   []string
	}{
		{"bom blank and duplicate", "\ufeff,happy,happy", []string{"Unnamed: 0", "happy", "happy.1"}},
		{"generated name already taken", "time,happy,happy,happy.1", []string{"time", "happy", "happy.1", "happy.1.1"}},
		{"triple duplicate", "sad,sad,sad", []string{"sad", "sad.1", "sad.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			row := strings.TrimSuffix(strings.Repeat("0,", len(tt.want)), ",")
			store, err := ParseCSV(strings.NewReader(tt.header + "\n" + row + "\n"))
			if err != nil {
				t.Fatalf("ParseCSV: %v", err)
			}
			if got := store.Columns(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Columns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCSV_Errors(t *testing.T) {
	t.Parallel()

	if _, err := ParseCSV(strings.NewReader("")); !errors.Is(err, ErrEmptyHeader) {
		t.Errorf("expected ErrEmptyHeader, got %v", err)
	}
	if _, err := ParseCSV(strings.NewReader("time,happy\n0,0.1,extra\n")); !errors.Is(err, ErrTooManyFields) {
		t.Errorf("expected ErrTooManyFields, got %v", err)
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	t.Parallel()

	store, err := ParseCSV(strings.NewReader("time,happy\n"))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d rows", store.Len())
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "emotions.csv")
	if err := os.WriteFile(path, []byte("time,happy\n0,0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 row, got %d", store.Len())
	}

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	input := "time,happy,label\n0,0.5,a\n1,,b\n"
	store, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, store); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != input {
		t.Errorf("WriteCSV() =\n%q\nwant\n%q", buf.String(), input)
	}
}
