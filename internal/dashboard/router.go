// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/emotrace/internal/api"
)

// NewRouter configures the dashboard routes. A nil middleware factory uses
// the defaults. live, if non-nil, serves /ws and the page subscribes to it
// for reload notifications.
func NewRouter(h *Handler, mw *api.ChiMiddleware, live http.Handler) http.Handler {
	if mw == nil {
		mw = api.NewChiMiddleware(nil)
	}

	r := chi.NewRouter()
	api.UseCommon(r, mw)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(mw.RateLimitHealth())
		r.Get("/live", h.HealthLive)
	})

	if live != nil {
		h.liveURL = "/ws"
		r.Handle("/ws", live)
	}

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Get("/", h.Page)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/summary.png", h.SummaryChart)
			r.Get("/dominant.png", h.DominantChart)
			r.Get("/series.png", h.SeriesChart)
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/views", func(r chi.Router) {
				r.Get("/source", h.Source)
				r.Get("/summary", h.Summary)
				r.Get("/dominant", h.Dominant)
				r.Get("/heatmap", h.Heatmap)
				r.Get("/series", h.Series)
				r.Get("/table", h.Table)
				r.Get("/table.csv", h.TableCSV)
			})
			r.Post("/reload", h.Reload)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	api.UseFallbacks(r)

	return r
}
