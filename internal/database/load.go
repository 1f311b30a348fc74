// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/metrics"
	"github.com/tomtom215/emotrace/internal/models"
)

const recordsTable = "records"

// LoadStore replaces the records table with the emotion columns of store.
// The replacement happens in one transaction; on error the previous table
// stays in place.
func (db *DB) LoadStore(ctx context.Context, store *models.RowStore) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("load", time.Since(start), err) }()

	if store == nil {
		return fmt.Errorf("load store: nil row store")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}

	emotions := store.EmotionSet()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Warn().Err(rbErr).Msg("Failed to roll back summary load")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, createTableSQL(emotions)); err != nil {
		return fmt.Errorf("create %s table: %w", recordsTable, err)
	}

	if len(emotions) > 0 && store.Len() > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, insertSQL(emotions))
		if prepErr != nil {
			err = fmt.Errorf("prepare insert: %w", prepErr)
			return err
		}
		defer closeWithLog(stmt, "statement")

		args := make([]any, len(emotions)+1)
		for row := 0; row < store.Len(); row++ {
			args[0] = row
			for i, emotion := range emotions {
				if v, ok := store.Float(row, emotion); ok {
					args[i+1] = v
				} else {
					args[i+1] = nil
				}
			}
			if _, err = stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert row %d: %w", row, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}

	db.emotions = emotions
	db.loaded = true

	logging.Info().
		Int("rows", store.Len()).
		Strs("emotions", emotions).
		Dur("duration", time.Since(start)).
		Msg("Loaded row store into DuckDB")
	return nil
}

func createTableSQL(emotions []string) string {
	var b strings.Builder
	b.WriteString("CREATE OR REPLACE TABLE ")
	b.WriteString(recordsTable)
	b.WriteString(" (row_index INTEGER")
	for _, e := range emotions {
		b.WriteString(", ")
		b.WriteString(quoteIdent(e))
		b.WriteString(" DOUBLE")
	}
	b.WriteString(")")
	return b.String()
}

func insertSQL(emotions []string) string {
	placeholders := make([]string, len(emotions)+1)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s VALUES (%s)", recordsTable, strings.Join(placeholders, ", "))
}
