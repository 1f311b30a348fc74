// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/emotrace/internal/models"
)

var (
	// ErrEmptyHeader is returned when a CSV input has no header row.
	ErrEmptyHeader = errors.New("csv input has no header row")

	// ErrTooManyFields is returned when a data row is wider than the header.
	ErrTooManyFields = errors.New("csv row has more fields than the header")
)

// ReadFile parses the CSV file at path. A missing file yields an error
// matching fs.ErrNotExist.
func ReadFile(path string) (*models.RowStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	store, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return store, nil
}

// ParseCSV reads a header row followed by data rows. Short rows are padded
// with missing values.
func ParseCSV(r io.Reader) (*models.RowStore, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := normalizeHeader(header)

	var rows [][]models.Cell
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}
		if len(record) > len(columns) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrTooManyFields, line, len(record), len(columns))
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" && len(columns) > 1 {
			continue
		}

		row := make([]models.Cell, len(columns))
		for i := range row {
			if i < len(record) {
				row[i] = models.ParseCell(record[i])
			} else {
				row[i] = models.NullCell()
			}
		}
		rows = append(rows, row)
	}

	return models.NewRowStore(columns, rows)
}

// normalizeHeader trims names, strips a UTF-8 BOM, names blank columns
// "Unnamed: i" and suffixes duplicates with ".n". A generated name that is
// itself taken is suffixed again, so "a,a,a.1" becomes "a,a.1,a.1.1".
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		for n := seen[name]; n > 0; n = seen[name] {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n)
		}
		seen[name]++
		columns[i] = name
	}
	return columns
}

// WriteCSV writes store as CSV with a header row.
func WriteCSV(w io.Writer, store *models.RowStore) error {
	writer := csv.NewWriter(w)
	columns := store.Columns()
	if err := writer.Write(columns); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for i := 0; i < store.Len(); i++ {
		for j, cell := range store.Row(i) {
			record[j] = cell.String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
