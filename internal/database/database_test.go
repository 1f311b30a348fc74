// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package database

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/emotrace/internal/config"
	"github.com/tomtom215/emotrace/internal/models"
	"github.com/tomtom215/emotrace/internal/views"
)

// testDBSemaphore serializes DuckDB instances across parallel tests.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.SummaryConfig{Engine: config.SummaryEngineDuckDB, DuckDBMaxMemory: "128MB", DuckDBThreads: 1})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustStore(t *testing.T, columns []string, rows [][]models.Cell) *models.RowStore {
	t.Helper()
	store, err := models.NewRowStore(columns, rows)
	if err != nil {
		t.Fatalf("NewRowStore: %v", err)
	}
	return store
}

func TestSummarize_MatchesMemoryAverages(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	store := mustStore(t, []string{"frame", "sad", "happy", "note"}, [][]models.Cell{
		{models.NumberCell(0), models.NumberCell(0.1), models.NumberCell(0.8), models.TextCell("a")},
		{models.NumberCell(1), models.TextCell("n/a"), models.NumberCell(0.2), models.NullCell()},
		{models.NumberCell(2), models.NumberCell(0.5), models.NullCell(), models.TextCell("c")},
	})

	if err := db.LoadStore(ctx, store); err != nil {
		t.Fatalf("LoadStore: %v", err)
	}

	got, err := db.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	want := []views.EmotionAverage{
		{Emotion: "happy", Average: views.Defined(0.5), Samples: 2},
		{Emotion: "sad", Average: views.Defined(0.3), Samples: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Emotion != want[i].Emotion || got[i].Samples != want[i].Samples {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].Average.Valid || math.Abs(got[i].Average.Value-want[i].Average.Value) > 1e-9 {
			t.Errorf("entry %d average = %+v, want %v", i, got[i].Average, want[i].Average.Value)
		}
	}
}

func TestSummarize_UndefinedColumn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	store := mustStore(t, []string{"time", "fear"}, [][]models.Cell{
		{models.NumberCell(0), models.TextCell("x")},
		{models.NumberCell(1), models.NullCell()},
	})
	if err := db.LoadStore(ctx, store); err != nil {
		t.Fatalf("LoadStore: %v", err)
	}

	got, err := db.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(got) != 1 || got[0].Average.Valid || got[0].Samples != 0 {
		t.Errorf("expected undefined fear average, got %+v", got)
	}
}

func TestSummarize_NoEmotions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	store := mustStore(t, []string{"frame"}, [][]models.Cell{{models.NumberCell(1)}})
	if err := db.LoadStore(ctx, store); err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	got, err := db.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty summary, got %+v", got)
	}
}

func TestLoadStore_Replaces(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := mustStore(t, []string{"angry"}, [][]models.Cell{{models.NumberCell(1)}})
	second := mustStore(t, []string{"neutral"}, [][]models.Cell{{models.NumberCell(0.25)}, {models.NumberCell(0.75)}})

	if err := db.LoadStore(ctx, first); err != nil {
		t.Fatalf("LoadStore first: %v", err)
	}
	if err := db.LoadStore(ctx, second); err != nil {
		t.Fatalf("LoadStore second: %v", err)
	}

	got, err := db.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(got) != 1 || got[0].Emotion != "neutral" || got[0].Average.Value != 0.5 {
		t.Errorf("expected only neutral=0.5, got %+v", got)
	}
}

func TestSummarize_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.Summarize(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Summarize before load = %v, want ErrNotLoaded", err)
	}
	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := db.Summarize(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Summarize after close = %v, want ErrClosed", err)
	}
	if err := db.LoadStore(ctx, nil); err == nil {
		t.Error("expected error for nil store")
	}
}

func TestSQLBuilders(t *testing.T) {
	t.Parallel()

	if got := quoteIdent(`we"ird`); got != `"we""ird"` {
		t.Errorf("quoteIdent = %s", got)
	}
	if got := createTableSQL([]string{"happy"}); got != `CREATE OR REPLACE TABLE records (row_index INTEGER, "happy" DOUBLE)` {
		t.Errorf("createTableSQL = %s", got)
	}
	if got := insertSQL([]string{"happy", "sad"}); got != "INSERT INTO records VALUES (?, ?, ?)" {
		t.Errorf("insertSQL = %s", got)
	}
	if got := summarySQL([]string{"sad"}); got != `SELECT AVG("sad"), COUNT("sad") FROM records` {
		t.Errorf("summarySQL = %s", got)
	}
	if got := connectionString(&config.SummaryConfig{DuckDBThreads: 2, DuckDBMaxMemory: "64MB"}); got != ":memory:?threads=2&autoinstall_known_extensions=false&autoload_known_extensions=false&max_memory=64MB" {
		t.Errorf("connectionString = %s", got)
	}
}
