// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package views

import (
	"fmt"
	"strings"
	"testing"
)

func rampCSV(n int) string {
	var b strings.Builder
	b.WriteString("timestamp_sec,happy,sad\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,%d,1\n", i, i)
	}
	return b.String()
}

func TestHeatmap_BinCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		records int
		bins    int
	}{
		{2, 2},
		{10, 10},
		{30, 30},
		{31, 30},
		{500, 30},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.records), func(t *testing.T) {
			t.Parallel()
			hm := mustFrame(t, rampCSV(tt.records)).Heatmap(DefaultMaxBins)
			if !hm.Available {
				t.Fatalf("heatmap unavailable: %s", hm.Reason)
			}
			if len(hm.Segments) != tt.bins {
				t.Fatalf("got %d segments, want %d", len(hm.Segments), tt.bins)
			}
			total := 0
			for _, seg := range hm.Segments {
				total += seg.Records
			}
			if total != tt.records {
				t.Errorf("segments hold %d records, want %d", total, tt.records)
			}
			if hm.Segments[tt.bins-1].Records == 0 {
				t.Error("record at max time must land in the last segment")
			}
			if hm.Segments[0].Label != "Seg 1" {
				t.Errorf("first label = %q", hm.Segments[0].Label)
			}
		})
	}
}

func TestHeatmap_LeftInclusiveMeans(t *testing.T) {
	t.Parallel()

	// Range [0, 4] in 4 bins of width 1: bins [0,1) [1,2) [2,3) [3,4].
	frame := mustFrame(t, "time,happy,sad\n0,0.2,\n0.5,0.4,\n3,0.1,0.3\n4,0.3,0.5\n")
	hm := frame.Heatmap(DefaultMaxBins)
	if !hm.Available {
		t.Fatalf("heatmap unavailable: %s", hm.Reason)
	}

	happy := hm.Cells[0]
	if hm.Emotions[0] != "happy" {
		t.Fatalf("row order = %v, want canonical", hm.Emotions)
	}
	if !approx(happy[0].Value, 0.3) {
		t.Errorf("happy bin 1 = %+v, want 0.3", happy[0])
	}
	if happy[1].Valid || happy[2].Valid {
		t.Errorf("empty bins must be undefined: %+v", happy)
	}
	if !approx(happy[3].Value, 0.2) {
		t.Errorf("happy bin 4 = %+v, want 0.2", happy[3])
	}

	sad := hm.Cells[1]
	if sad[0].Valid {
		t.Errorf("sad bin 1 has only missing values, want undefined: %+v", sad[0])
	}
	if !approx(sad[3].Value, 0.4) {
		t.Errorf("sad bin 4 = %+v, want 0.4", sad[3])
	}
}

func TestHeatmap_Unavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		csv    string
		reason string
	}{
		{"single record", "time,happy\n0,0.5\n", ReasonTooFewRecords},
		{"empty store", "time,happy\n", ReasonTooFewRecords},
		{"no emotions", "time,label\n0,a\n1,b\n", ReasonNoEmotions},
		{"no time axis", "happy\n0.1\n0.2\n", ReasonNoTimeAxis},
		{"no numeric time", "time,happy\na,0.1\nb,0.2\n", ReasonNoTimeValues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hm := mustFrame(t, tt.csv).Heatmap(DefaultMaxBins)
			if hm.Available {
				t.Fatal("expected unavailable heatmap")
			}
			if hm.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", hm.Reason, tt.reason)
			}
		})
	}
}

func TestHeatmap_ZeroWidthAxis(t *testing.T) {
	t.Parallel()

	hm := mustFrame(t, "time,happy\n5,0.2\n5,0.4\n5,0.6\n").Heatmap(DefaultMaxBins)
	if !hm.Available || len(hm.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %+v", hm)
	}
	if hm.Segments[0].Records != 3 {
		t.Errorf("zero-width axis should put all records in the first segment: %+v", hm.Segments)
	}
	if !approx(hm.Cells[0][0].Value, 0.4) {
		t.Errorf("cell = %+v, want 0.4", hm.Cells[0][0])
	}
}

func TestHeatmap_CustomMaxBins(t *testing.T) {
	t.Parallel()

	hm := mustFrame(t, rampCSV(100)).Heatmap(5)
	if len(hm.Segments) != 5 {
		t.Errorf("got %d segments, want 5", len(hm.Segments))
	}
	if hm.Segments[4].End != 99 {
		t.Errorf("last segment must end at max time, got %v", hm.Segments[4].End)
	}
}
