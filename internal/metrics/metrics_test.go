// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/resumen", "200"))

	RecordAPIRequest("GET", "/resumen", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/resumen", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordSourceLoad(t *testing.T) {
	before := testutil.ToFloat64(SourceLoadsTotal.WithLabelValues("local"))

	RecordSourceLoad("local", 42)

	if got := testutil.ToFloat64(SourceLoadsTotal.WithLabelValues("local")); got != before+1 {
		t.Errorf("source_loads_total{local} = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(SourceRowsLoaded); got != 42 {
		t.Errorf("source_rows_loaded = %v, want 42", got)
	}
}

func TestRecordChartCache(t *testing.T) {
	hits := testutil.ToFloat64(ChartCacheHits)
	misses := testutil.ToFloat64(ChartCacheMisses)

	RecordChartCache(true)
	RecordChartCache(false)
	RecordChartCache(false)

	if got := testutil.ToFloat64(ChartCacheHits); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(ChartCacheMisses); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("averages"))

	RecordDBQuery("averages", time.Millisecond, nil)
	RecordDBQuery("averages", time.Millisecond, errors.New("binder error"))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("averages")); got != before+1 {
		t.Errorf("duckdb_query_errors_total = %v, want %v", got, before+1)
	}
}

// sampleCount reads the observation count of one histogram child.
func sampleCount(t *testing.T, vec *prometheus.HistogramVec, label string) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := vec.WithLabelValues(label).(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestHistogramObservations(t *testing.T) {
	tests := []struct {
		name   string
		vec    *prometheus.HistogramVec
		label  string
		record func()
	}{
		{"fetch success", SourceFetchDuration, "success", func() { RecordRemoteFetch(10*time.Millisecond, nil) }},
		{"fetch failure", SourceFetchDuration, "failure", func() { RecordRemoteFetch(3*time.Second, errors.New("timeout")) }},
		{"view", ViewDerivationDuration, "heatmap", func() { RecordViewDerivation("heatmap", time.Millisecond) }},
		{"chart", ChartRenderDuration, "summary", func() { RecordChartRender("summary", 20*time.Millisecond) }},
		{"db query", DBQueryDuration, "records", func() { RecordDBQuery("records", time.Millisecond, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := sampleCount(t, tt.vec, tt.label)
			tt.record()
			if got := sampleCount(t, tt.vec, tt.label); got != before+1 {
				t.Errorf("sample count = %d, want %d", got, before+1)
			}
		})
	}
}
