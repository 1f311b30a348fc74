// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/emotrace/internal/api"
	"github.com/tomtom215/emotrace/internal/charts"
	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/metrics"
)

// chartKey identifies a rendered chart. Keys embed the generation so a
// reload never serves a stale image.
func chartKey(snap *Snapshot, kind string, opts charts.Options, params string) string {
	return fmt.Sprintf("g%d|%s|%dx%d|%s", snap.Generation, kind, opts.Width, opts.Height, params)
}

// servePNG writes a cached chart, rendering it on a miss.
func (h *Handler) servePNG(w http.ResponseWriter, r *http.Request, key, kind string, render func() ([]byte, error)) {
	cache := h.svc.ChartCache()

	png, hit := cache.Get(key)
	metrics.RecordChartCache(hit)
	if !hit {
		start := time.Now()
		var err error
		png, err = render()
		metrics.RecordChartRender(kind, time.Since(start))
		if err != nil {
			rw := api.NewResponseWriter(w, r)
			if errors.Is(err, charts.ErrNothingToDraw) {
				rw.Unprocessable(err.Error())
				return
			}
			logging.Ctx(r.Context()).Error().Err(err).Str("chart", kind).Msg("Chart render failed")
			rw.InternalError("Failed to render chart")
			return
		}
		cache.Add(key, png)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// SummaryChart handles GET /charts/summary.png.
func (h *Handler) SummaryChart(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}
	opts := h.svc.opts.Chart
	h.servePNG(w, r, chartKey(snap, "summary", opts, ""), "summary", func() ([]byte, error) {
		return charts.Summary(frame.Averages(), opts)
	})
}

// DominantChart handles GET /charts/dominant.png.
func (h *Handler) DominantChart(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}
	points, err := frame.Dominant()
	if err != nil {
		writeViewError(api.NewResponseWriter(w, r), err)
		return
	}
	axis, _ := frame.TimeAxis()
	opts := h.svc.opts.Chart
	h.servePNG(w, r, chartKey(snap, "dominant", opts, ""), "dominant", func() ([]byte, error) {
		return charts.Dominant(points, frame.Emotions(), axis, opts)
	})
}

// SeriesChart handles GET /charts/series.png?emotion=&start=&end=. Bounds
// are clamped to the extent like the page's range control.
func (h *Handler) SeriesChart(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}
	rw := api.NewResponseWriter(w, r)

	req, verr, err := parseSeriesQuery(r).resolve(frame, true)
	if verr != nil {
		rw.ValidationError(verr)
		return
	}
	if err != nil {
		writeViewError(rw, err)
		return
	}
	points, err := frame.Series(req.Emotion, req.Start, req.End)
	if err != nil {
		writeViewError(rw, err)
		return
	}

	axis, _ := frame.TimeAxis()
	opts := h.svc.opts.Chart
	params := fmt.Sprintf("%s|%g|%g", req.Emotion, req.Start, req.End)
	h.servePNG(w, r, chartKey(snap, "series", opts, params), "series", func() ([]byte, error) {
		return charts.Series(charts.SeriesTitle(req.Emotion, req.Start, req.End), req.Emotion, axis, points, opts)
	})
}
