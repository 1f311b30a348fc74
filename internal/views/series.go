// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package views

import (
	"fmt"
	"math"
)

// SeriesPoint is one sample of a filtered series. Value is undefined when
// the record has no valid score for the emotion.
type SeriesPoint struct {
	Time  float64 `json:"time"`
	Value Measure `json:"value"`
}

// Extent is the closed interval spanned by the time axis.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether t lies within the extent.
func (e Extent) Contains(t float64) bool {
	return t >= e.Min && t <= e.Max
}

// Extent returns the time axis bounds, which are also the default range of
// Series.
func (f *Frame) Extent() (Extent, error) {
	if !f.hasTime {
		return Extent{}, ErrNoTimeAxis
	}
	lo, hi, ok := f.timeBounds()
	if !ok {
		return Extent{}, ErrNoTimeValues
	}
	return Extent{Min: lo, Max: hi}, nil
}

// SliderStep is the range control granularity: a hundredth of the extent,
// or 1 when the extent is a single point.
func (f *Frame) SliderStep() float64 {
	ext, err := f.Extent()
	if err != nil || ext.Max == ext.Min {
		return 1
	}
	return (ext.Max - ext.Min) / 100
}

// Series returns the records with start <= time <= end for one emotion, in
// store order. The emotion must be in the emotion set and the range must lie
// within the extent.
func (f *Frame) Series(emotion string, start, end float64) ([]SeriesPoint, error) {
	if !f.HasEmotion(emotion) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEmotion, emotion)
	}
	ext, err := f.Extent()
	if err != nil {
		return nil, err
	}
	if math.IsNaN(start) || math.IsNaN(end) {
		return nil, fmt.Errorf("%w: bounds must be numbers", ErrInvalidRange)
	}
	if start > end {
		return nil, fmt.Errorf("%w: start %g is after end %g", ErrInvalidRange, start, end)
	}
	if !ext.Contains(start) || !ext.Contains(end) {
		return nil, fmt.Errorf("%w: [%g, %g] is outside [%g, %g]", ErrInvalidRange, start, end, ext.Min, ext.Max)
	}

	var points []SeriesPoint
	for row := 0; row < f.store.Len(); row++ {
		t, ok := f.timeAt(row)
		if !ok || t < start || t > end {
			continue
		}
		point := SeriesPoint{Time: t}
		if v, ok := f.store.Float(row, emotion); ok {
			point.Value = Defined(v)
		}
		points = append(points, point)
	}
	return points, nil
}

// FullSeries is Series over the whole extent.
func (f *Frame) FullSeries(emotion string) ([]SeriesPoint, error) {
	ext, err := f.Extent()
	if err != nil {
		if !f.HasEmotion(emotion) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEmotion, emotion)
		}
		return nil, err
	}
	return f.Series(emotion, ext.Min, ext.Max)
}
