// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dataset

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tomtom215/emotrace/internal/models"
)

// ErrNotObject is returned when an element of the records array is not an object.
var ErrNotObject = errors.New("record is not a JSON object")

// DecodeRecords decodes a JSON array of flat objects. Columns are ordered by
// first appearance; keys absent from a record read as missing.
func DecodeRecords(r io.Reader) (*models.RowStore, error) {
	var objects []*orderedmap.OrderedMap[string, any]
	if err := json.NewDecoder(r).Decode(&objects); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}

	var columns []string
	index := make(map[string]int)
	for i, obj := range objects {
		if obj == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNotObject, i)
		}
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			if _, ok := index[pair.Key]; !ok {
				index[pair.Key] = len(columns)
				columns = append(columns, pair.Key)
			}
		}
	}

	rows := make([][]models.Cell, len(objects))
	for i, obj := range objects {
		row := make([]models.Cell, len(columns))
		for j := range row {
			row[j] = models.NullCell()
		}
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			row[index[pair.Key]] = toCell(pair.Value)
		}
		rows[i] = row
	}

	return models.NewRowStore(columns, rows)
}

// toCell coerces a decoded JSON value. Strings go through the same numeric
// coercion as CSV fields.
func toCell(v any) models.Cell {
	switch val := v.(type) {
	case nil:
		return models.NullCell()
	case float64:
		return models.NumberCell(val)
	case json.Number:
		return models.ParseCell(string(val))
	case string:
		return models.ParseCell(val)
	case bool:
		return models.TextCell(strconv.FormatBool(val))
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return models.NullCell()
		}
		return models.TextCell(string(raw))
	}
}

// EncodeRecords writes store as a JSON array of objects in schema order.
func EncodeRecords(w io.Writer, store *models.RowStore) error {
	body, err := store.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}
