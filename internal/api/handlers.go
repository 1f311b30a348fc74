// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package api

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/emotrace/internal/dataset"
	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/models"
)

// RootMessage is the body of GET /.
const RootMessage = "API funcionando correctamente"

// Handler serves the query service endpoints over one immutable row store.
type Handler struct {
	store      *models.RowStore
	records    []byte
	summarizer Summarizer
	pinger     Pinger
	startTime  time.Time
}

// Pinger is implemented by summary engines backed by a database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHandler creates a handler. The record array is encoded once because
// the store never changes for the life of the process.
func NewHandler(store *models.RowStore, summarizer Summarizer) *Handler {
	if summarizer == nil {
		summarizer = NewMemorySummarizer(store)
	}
	h := &Handler{
		store:      store,
		summarizer: summarizer,
		startTime:  time.Now(),
	}
	if p, ok := summarizer.(Pinger); ok {
		h.pinger = p
	}

	if store != nil {
		var buf bytes.Buffer
		if err := dataset.EncodeRecords(&buf, store); err != nil {
			logging.Error().Err(err).Msg("Failed to pre-encode records, encoding per request")
		} else {
			h.records = buf.Bytes()
		}
	}
	return h
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": RootMessage})
}

// Records handles GET /emociones: every record, every column.
func (h *Handler) Records(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Dataset not loaded")
		return
	}
	if h.records == nil {
		WriteJSON(w, http.StatusOK, h.store)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.records); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write records")
	}
}

// Summary handles GET /resumen.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Dataset not loaded")
		return
	}
	entries, err := h.summarizer.Summarize(r.Context())
	if err != nil {
		NewResponseWriter(w, r).DatabaseError(err)
		return
	}
	WriteJSON(w, http.StatusOK, SummaryObject(entries))
}

// HealthLive handles liveness probes.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 once the dataset is loaded and the summary
// engine answers, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.store == nil {
		rw.ServiceUnavailable("Dataset not loaded")
		return
	}
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Summary engine not ready")
			rw.ServiceUnavailable("Summary engine unavailable")
			return
		}
	}

	rw.Success(map[string]interface{}{
		"ready":   true,
		"records": h.store.Len(),
		"columns": h.store.Columns(),
	})
}
