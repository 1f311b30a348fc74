// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package views

import "sort"

// EmotionAverage is one entry of the average view.
type EmotionAverage struct {
	Emotion string  `json:"emotion"`
	Average Measure `json:"average"`
	Samples int     `json:"samples"`
}

// AverageView holds per-emotion means sorted by descending average.
// Undefined averages sort last.
type AverageView struct {
	Entries    []EmotionAverage `json:"entries"`
	Top        string           `json:"top,omitempty"`
	TopAverage Measure          `json:"top_average"`
}

// HasTop reports whether at least one emotion has a defined average.
func (v AverageView) HasTop() bool {
	return v.Top != ""
}

// Lookup returns the average of emotion.
func (v AverageView) Lookup(emotion string) (Measure, bool) {
	for _, e := range v.Entries {
		if e.Emotion == emotion {
			return e.Average, true
		}
	}
	return Measure{}, false
}

// Averages computes the mean of the valid values of every emotion.
func (f *Frame) Averages() AverageView {
	entries := make([]EmotionAverage, len(f.emotions))
	for i, emotion := range f.emotions {
		entries[i] = f.average(emotion)
	}

	// Stable sort keeps canonical order among equal averages, so the
	// first entry is also the canonical tie-break winner.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Average, entries[j].Average
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Value > b.Value
	})

	view := AverageView{Entries: entries}
	if len(entries) > 0 && entries[0].Average.Valid {
		view.Top = entries[0].Emotion
		view.TopAverage = entries[0].Average
	}
	return view
}

func (f *Frame) average(emotion string) EmotionAverage {
	var m mean
	for row := 0; row < f.store.Len(); row++ {
		if v, ok := f.store.Float(row, emotion); ok {
			m.add(v)
		}
	}
	return EmotionAverage{Emotion: emotion, Samples: m.n, Average: m.measure()}
}
