// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dataset

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	body := `[
		{"frame": 0, "time": 0.0, "happy": 0.8, "sad": 0.1},
		{"frame": 1, "time": 1.0, "happy": "0.2", "sad": null, "note": "late"}
	]`

	store, err := DecodeRecords(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}

	want := []string{"frame", "time", "happy", "sad", "note"}
	if got := store.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if v, ok := store.Float(1, "happy"); !ok || v != 0.2 {
		t.Errorf("numeric string should be coerced, got %v, %v", v, ok)
	}
	if !store.Cell(1, "sad").Null {
		t.Error("null should decode as missing")
	}
	if !store.Cell(0, "note").Null {
		t.Error("absent key should read as missing")
	}
}

func TestDecodeRecords_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"truncated", `[{"time": 0`},
		{"object", `{"detail": "not found"}`},
		{"scalar elements", `[1, 2, 3]`},
		{"html", `<html>502</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := DecodeRecords(strings.NewReader(tt.body)); err == nil {
				t.Errorf("expected error for %s", tt.body)
			}
		})
	}
}

func TestDecodeRecords_NullElement(t *testing.T) {
	t.Parallel()

	_, err := DecodeRecords(strings.NewReader(`[{"time": 0}, null]`))
	if !errors.Is(err, ErrNotObject) {
		t.Errorf("expected ErrNotObject, got %v", err)
	}
}

func TestEncodeRecords_RoundTripsColumnOrder(t *testing.T) {
	t.Parallel()

	body := `[{"timestamp_sec":0.5,"neutral":0.3,"angry":0.1}]`
	store, err := DecodeRecords(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeRecords(&buf, store); err != nil {
		t.Fatalf("EncodeRecords: %v", err)
	}
	if buf.String() != body {
		t.Errorf("EncodeRecords() = %s, want %s", buf.String(), body)
	}
}
