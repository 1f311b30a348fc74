// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package api

import (
	"context"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tomtom215/emotrace/internal/metrics"
	"github.com/tomtom215/emotrace/internal/models"
	"github.com/tomtom215/emotrace/internal/views"
)

// Summarizer computes the per-emotion averages served by /resumen.
// Entries are returned in canonical emotion order.
type Summarizer interface {
	Summarize(ctx context.Context) ([]views.EmotionAverage, error)
}

// MemorySummarizer derives averages from an in-memory row store.
type MemorySummarizer struct {
	frame *views.Frame
}

// NewMemorySummarizer creates a summarizer over store. A nil store yields
// an empty summary.
func NewMemorySummarizer(store *models.RowStore) *MemorySummarizer {
	frame, err := views.NewFrame(store)
	if err != nil {
		return &MemorySummarizer{}
	}
	return &MemorySummarizer{frame: frame}
}

// Summarize implements Summarizer.
func (s *MemorySummarizer) Summarize(_ context.Context) ([]views.EmotionAverage, error) {
	if s.frame == nil {
		return []views.EmotionAverage{}, nil
	}

	start := time.Now()
	view := s.frame.Averages()
	metrics.RecordViewDerivation("summary", time.Since(start))

	emotions := s.frame.Emotions()
	out := make([]views.EmotionAverage, 0, len(emotions))
	for _, emotion := range emotions {
		for _, entry := range view.Entries {
			if entry.Emotion == emotion {
				out = append(out, entry)
				break
			}
		}
	}
	return out, nil
}

// SummaryObject renders averages as an ordered JSON object keyed by
// emotion. Undefined averages encode as null.
func SummaryObject(entries []views.EmotionAverage) *orderedmap.OrderedMap[string, views.Measure] {
	om := orderedmap.New[string, views.Measure](len(entries))
	for _, entry := range entries {
		om.Set(entry.Emotion, entry.Average)
	}
	return om
}
