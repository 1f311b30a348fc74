// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package views

import (
	"math"
	"strconv"

	"github.com/tomtom215/emotrace/internal/models"
)

// Measure is a derived number that may be undefined, for example the mean of
// a column with no valid values. Undefined measures encode as JSON null.
type Measure struct {
	Value float64
	Valid bool
}

// Defined returns a valid measure.
func Defined(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// MarshalJSON implements json.Marshaler.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	if math.IsInf(m.Value, 0) || math.IsNaN(m.Value) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, m.Value, 'g', -1, 64), nil
}

// mean is a running arithmetic mean. It reports sum/n like a plain mean and
// keeps a scaled running value for when the sum overflows.
type mean struct {
	sum     float64
	running float64
	n       int
}

func (m *mean) add(v float64) {
	m.n++
	m.sum += v
	k := float64(m.n)
	m.running += (v/k - m.running/k)
}

func (m mean) measure() Measure {
	if m.n == 0 {
		return Measure{}
	}
	v := m.sum / float64(m.n)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		v = m.running
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Measure{}
	}
	return Defined(v)
}

// Frame is the shared context of every derivation: a store, its emotion set
// and its time axis.
type Frame struct {
	store    *models.RowStore
	emotions []string
	timeAxis string
	hasTime  bool
}

// NewFrame resolves the emotion set and time axis of store.
func NewFrame(store *models.RowStore) (*Frame, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	axis, ok := store.TimeAxis()
	return &Frame{
		store:    store,
		emotions: store.EmotionSet(),
		timeAxis: axis,
		hasTime:  ok,
	}, nil
}

// Store returns the underlying row store.
func (f *Frame) Store() *models.RowStore {
	return f.store
}

// Len returns the record count.
func (f *Frame) Len() int {
	return f.store.Len()
}

// Emotions returns a copy of the emotion set in canonical order.
func (f *Frame) Emotions() []string {
	out := make([]string, len(f.emotions))
	copy(out, f.emotions)
	return out
}

// HasEmotion reports whether emotion is in the frame's emotion set.
func (f *Frame) HasEmotion(emotion string) bool {
	for _, e := range f.emotions {
		if e == emotion {
			return true
		}
	}
	return false
}

// TimeAxis returns the time axis column name.
func (f *Frame) TimeAxis() (string, bool) {
	return f.timeAxis, f.hasTime
}

// timeAt returns the numeric time of a record.
func (f *Frame) timeAt(row int) (float64, bool) {
	if !f.hasTime {
		return 0, false
	}
	return f.store.Float(row, f.timeAxis)
}
