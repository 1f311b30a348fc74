// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package views

// DominantPoint pairs a record's time with its highest-scoring emotion.
type DominantPoint struct {
	Time    float64 `json:"time"`
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// Dominant returns one point per record in store order. Records whose
// emotion values are all missing, or whose time is not numeric, are skipped.
func (f *Frame) Dominant() ([]DominantPoint, error) {
	if !f.hasTime {
		return nil, ErrNoTimeAxis
	}

	points := make([]DominantPoint, 0, f.store.Len())
	for row := 0; row < f.store.Len(); row++ {
		t, ok := f.timeAt(row)
		if !ok {
			continue
		}
		emotion, score, ok := f.dominantAt(row)
		if !ok {
			continue
		}
		points = append(points, DominantPoint{Time: t, Emotion: emotion, Score: score})
	}
	return points, nil
}

// dominantAt is the argmax over the emotion set. A strict comparison keeps
// the first canonical emotion on ties.
func (f *Frame) dominantAt(row int) (string, float64, bool) {
	var best string
	var bestScore float64
	found := false
	for _, emotion := range f.emotions {
		v, ok := f.store.Float(row, emotion)
		if !ok {
			continue
		}
		if !found || v > bestScore {
			best, bestScore, found = emotion, v, true
		}
	}
	return best, bestScore, found
}
