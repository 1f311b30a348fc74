// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package views

import (
	"math"
	"strconv"
)

// DefaultMaxBins is the upper bound on heatmap segments.
const DefaultMaxBins = 30

// Reasons reported by an unavailable heatmap.
const (
	ReasonTooFewRecords = "not enough records to segment the time axis"
	ReasonNoEmotions    = "no emotion columns present"
	ReasonNoTimeAxis    = "no time axis column present"
	ReasonNoTimeValues  = "time axis has no numeric values"
)

// Segment is one equal-width slice of the time axis. Start is inclusive;
// End is exclusive except for the last segment.
type Segment struct {
	Index   int     `json:"index"`
	Label   string  `json:"label"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Records int     `json:"records"`
}

// HeatmapView is a matrix of per-segment emotion means. Cells[i][j] is the
// mean of Emotions[i] over Segments[j]; empty segments hold undefined cells.
type HeatmapView struct {
	Available bool        `json:"available"`
	Reason    string      `json:"reason,omitempty"`
	Emotions  []string    `json:"emotions,omitempty"`
	Segments  []Segment   `json:"segments,omitempty"`
	Cells     [][]Measure `json:"cells,omitempty"`
}

// SegmentLabel returns the display label of the 1-based segment index.
func SegmentLabel(index int) string {
	return "Seg " + strconv.Itoa(index)
}

// Heatmap bins the time axis into min(maxBins, record count) segments.
// maxBins <= 0 selects DefaultMaxBins.
func (f *Frame) Heatmap(maxBins int) HeatmapView {
	if maxBins <= 0 {
		maxBins = DefaultMaxBins
	}

	n := f.store.Len()
	switch {
	case n <= 1:
		return HeatmapView{Reason: ReasonTooFewRecords}
	case len(f.emotions) == 0:
		return HeatmapView{Reason: ReasonNoEmotions}
	case !f.hasTime:
		return HeatmapView{Reason: ReasonNoTimeAxis}
	}

	lo, hi, ok := f.timeBounds()
	if !ok {
		return HeatmapView{Reason: ReasonNoTimeValues}
	}

	bins := min(maxBins, n)
	width := (hi - lo) / float64(bins)

	segments := make([]Segment, bins)
	for i := range segments {
		segments[i] = Segment{
			Index: i + 1,
			Label: SegmentLabel(i + 1),
			Start: lo + float64(i)*width,
			End:   lo + float64(i+1)*width,
		}
	}
	segments[bins-1].End = hi

	means := make([][]mean, len(f.emotions))
	for i := range f.emotions {
		means[i] = make([]mean, bins)
	}

	for row := 0; row < n; row++ {
		t, ok := f.timeAt(row)
		if !ok {
			continue
		}
		bin := binIndex(t, lo, width, bins)
		segments[bin].Records++
		for i, emotion := range f.emotions {
			if v, ok := f.store.Float(row, emotion); ok {
				means[i][bin].add(v)
			}
		}
	}

	cells := make([][]Measure, len(f.emotions))
	for i := range f.emotions {
		cells[i] = make([]Measure, bins)
		for j := 0; j < bins; j++ {
			cells[i][j] = means[i][j].measure()
		}
	}

	return HeatmapView{
		Available: true,
		Emotions:  f.Emotions(),
		Segments:  segments,
		Cells:     cells,
	}
}

// binIndex maps t to a left-inclusive bin. The maximum lands in the last bin,
// and a zero-width axis puts everything in the first.
func binIndex(t, lo, width float64, bins int) int {
	if width <= 0 {
		return 0
	}
	idx := int(math.Floor((t - lo) / width))
	if idx < 0 {
		return 0
	}
	if idx >= bins {
		return bins - 1
	}
	return idx
}

// timeBounds returns the min and max numeric time.
func (f *Frame) timeBounds() (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	found := false
	for row := 0; row < f.store.Len(); row++ {
		t, ok := f.timeAt(row)
		if !ok {
			continue
		}
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
		found = true
	}
	return lo, hi, found
}
