// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/emotrace/internal/metrics"
	"github.com/tomtom215/emotrace/internal/views"
)

// Summarize returns the mean and sample count of every loaded emotion, in
// canonical order. Emotions with no valid values have an undefined average.
func (db *DB) Summarize(ctx context.Context) (out []views.EmotionAverage, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("summary", time.Since(start), err) }()

	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return nil, ErrClosed
	}
	if !db.loaded {
		return nil, ErrNotLoaded
	}
	if len(db.emotions) == 0 {
		return []views.EmotionAverage{}, nil
	}

	avgs := make([]sql.NullFloat64, len(db.emotions))
	counts := make([]int64, len(db.emotions))
	dest := make([]any, 0, 2*len(db.emotions))
	for i := range db.emotions {
		dest = append(dest, &avgs[i], &counts[i])
	}

	if err := db.conn.QueryRowContext(ctx, summarySQL(db.emotions)).Scan(dest...); err != nil {
		return nil, fmt.Errorf("summary query: %w", err)
	}

	out = make([]views.EmotionAverage, len(db.emotions))
	for i, emotion := range db.emotions {
		out[i] = views.EmotionAverage{Emotion: emotion, Samples: int(counts[i])}
		if avgs[i].Valid {
			out[i].Average = views.Defined(avgs[i].Float64)
		}
	}
	return out, nil
}

func summarySQL(emotions []string) string {
	cols := make([]string, 0, 2*len(emotions))
	for _, e := range emotions {
		q := quoteIdent(e)
		cols = append(cols, "AVG("+q+")", "COUNT("+q+")")
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), recordsTable)
}
