// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/emotrace/internal/api"
	"github.com/tomtom215/emotrace/internal/dataset"
	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/metrics"
	"github.com/tomtom215/emotrace/internal/views"
)

// Handler serves the dashboard endpoints.
type Handler struct {
	svc       *Service
	startTime time.Time
	liveURL   string
}

// NewHandler creates a handler over svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, startTime: time.Now()}
}

// available returns the current snapshot and frame, or writes 503.
func (h *Handler) available(w http.ResponseWriter, r *http.Request) (*Snapshot, *views.Frame, bool) {
	snap := h.svc.Snapshot()
	if !snap.Available() {
		api.NewResponseWriter(w, r).ServiceUnavailable(snap.AbsenceMessage())
		return nil, nil, false
	}
	return snap, snap.Frame(), true
}

func snapshotMeta(snap *Snapshot) *api.APIMeta {
	return &api.APIMeta{Source: string(snap.Result.Source), Generation: snap.Generation}
}

// writeViewError maps derivation errors to HTTP responses.
func writeViewError(rw *api.ResponseWriter, err error) {
	switch {
	case errors.Is(err, views.ErrUnknownEmotion), errors.Is(err, views.ErrInvalidRange):
		rw.BadRequest(err.Error())
	case errors.Is(err, views.ErrNoTimeAxis), errors.Is(err, views.ErrNoTimeValues), errors.Is(err, errNoEmotions):
		rw.Unprocessable(err.Error())
	default:
		rw.InternalError("Failed to derive view")
	}
}

// SourceInfo describes the loaded dataset.
type SourceInfo struct {
	Source     string        `json:"source"`
	Label      string        `json:"label"`
	Available  bool          `json:"available"`
	Message    string        `json:"message,omitempty"`
	Rows       int           `json:"rows"`
	Columns    []string      `json:"columns,omitempty"`
	TimeAxis   string        `json:"time_axis,omitempty"`
	Emotions   []string      `json:"emotions,omitempty"`
	Extent     *views.Extent `json:"extent,omitempty"`
	SliderStep float64       `json:"slider_step,omitempty"`
	LoadedAt   time.Time     `json:"loaded_at"`
	DurationMs int64         `json:"duration_ms"`
	RemoteErr  string        `json:"remote_error,omitempty"`
	LocalErr   string        `json:"local_error,omitempty"`
	Notices    []Notice      `json:"notices"`
	Generation uint64        `json:"generation"`
}

func sourceInfo(snap *Snapshot) SourceInfo {
	if snap == nil {
		return SourceInfo{Source: "none", Label: "no data", Message: snap.AbsenceMessage(), Notices: []Notice{}}
	}

	res := snap.Result
	info := SourceInfo{
		Source:     string(res.Source),
		Label:      res.Source.Label(),
		Available:  snap.Available(),
		Rows:       res.Store.Len(),
		LoadedAt:   res.LoadedAt,
		DurationMs: res.Duration.Milliseconds(),
		Notices:    snap.Notices,
		Generation: snap.Generation,
	}
	if info.Notices == nil {
		info.Notices = []Notice{}
	}
	if res.RemoteErr != nil {
		info.RemoteErr = res.RemoteErr.Error()
	}
	if res.LocalErr != nil {
		info.LocalErr = res.LocalErr.Error()
	}
	if res.Store != nil {
		info.Columns = res.Store.Columns()
	}

	frame := snap.Frame()
	if frame == nil {
		info.Message = snap.AbsenceMessage()
		return info
	}
	info.Emotions = frame.Emotions()
	if axis, ok := frame.TimeAxis(); ok {
		info.TimeAxis = axis
	}
	if ext, err := frame.Extent(); err == nil {
		info.Extent = &ext
		info.SliderStep = frame.SliderStep()
	}
	return info
}

// Source handles GET /api/v1/views/source. It answers 200 even without
// data so clients can read the notices.
func (h *Handler) Source(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot()
	info := sourceInfo(snap)
	var meta *api.APIMeta
	if snap != nil {
		meta = snapshotMeta(snap)
	}
	api.NewResponseWriter(w, r).SuccessWithMeta(info, meta)
}

// Summary handles GET /api/v1/views/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}
	start := time.Now()
	view := frame.Averages()
	metrics.RecordViewDerivation("summary", time.Since(start))

	api.NewResponseWriter(w, r).SuccessWithMeta(view, snapshotMeta(snap))
}

// Dominant handles GET /api/v1/views/dominant.
func (h *Handler) Dominant(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}
	rw := api.NewResponseWriter(w, r)

	start := time.Now()
	points, err := frame.Dominant()
	metrics.RecordViewDerivation("dominant", time.Since(start))
	if err != nil {
		writeViewError(rw, err)
		return
	}
	axis, _ := frame.TimeAxis()
	rw.SuccessWithMeta(map[string]interface{}{
		"time_axis": axis,
		"points":    points,
	}, snapshotMeta(snap))
}

// Heatmap handles GET /api/v1/views/heatmap. An unavailable heatmap is a
// successful response carrying the reason.
func (h *Handler) Heatmap(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}
	start := time.Now()
	view := frame.Heatmap(h.svc.opts.HeatmapMaxBins)
	metrics.RecordViewDerivation("heatmap", time.Since(start))

	api.NewResponseWriter(w, r).SuccessWithMeta(view, snapshotMeta(snap))
}

// Series handles GET /api/v1/views/series?emotion=&start=&end=.
// Unlike the page, out-of-extent ranges are rejected.
func (h *Handler) Series(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}
	rw := api.NewResponseWriter(w, r)

	req, verr, err := parseSeriesQuery(r).resolve(frame, false)
	if verr != nil {
		rw.ValidationError(verr)
		return
	}
	if err != nil {
		writeViewError(rw, err)
		return
	}

	start := time.Now()
	points, err := frame.Series(req.Emotion, req.Start, req.End)
	metrics.RecordViewDerivation("series", time.Since(start))
	if err != nil {
		writeViewError(rw, err)
		return
	}

	rw.SuccessWithMeta(map[string]interface{}{
		"emotion":     req.Emotion,
		"start":       req.Start,
		"end":         req.End,
		"extent":      req.Extent,
		"slider_step": frame.SliderStep(),
		"points":      points,
	}, snapshotMeta(snap))
}

// Table handles GET /api/v1/views/table: every record, every column.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}
	store := frame.Store()
	api.NewResponseWriter(w, r).SuccessWithMeta(map[string]interface{}{
		"columns": store.Columns(),
		"records": store,
	}, snapshotMeta(snap))
}

// TableCSV handles GET /api/v1/views/table.csv: the full row store as a
// download, header row first.
func (h *Handler) TableCSV(w http.ResponseWriter, r *http.Request) {
	snap, frame, ok := h.available(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, frame.Store()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode table CSV")
		api.NewResponseWriter(w, r).InternalError("Failed to encode table")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="emotions-g%d.csv"`, snap.Generation))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Reload handles POST /api/v1/reload.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Reload(r.Context())
	api.NewResponseWriter(w, r).SuccessWithMeta(sourceInfo(snap), snapshotMeta(snap))
}

// HealthLive handles liveness probes.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot()
	data := map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}
	if snap != nil {
		data["source"] = snap.Result.Source
		data["generation"] = snap.Generation
	}
	api.WriteSuccess(w, r, data)
}
