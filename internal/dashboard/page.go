// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tomtom215/emotrace/internal/api"
	"github.com/tomtom215/emotrace/internal/charts"
	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/models"
	"github.com/tomtom215/emotrace/internal/views"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

// HeatmapCaption explains the heatmap below the matrix.
const HeatmapCaption = "Each column is a segment of the video. Brighter colours mean a higher " +
	"probability of the emotion in that segment."

var pageTemplate = template.Must(
	template.New("dashboard.html").Funcs(template.FuncMap{
		"fixed2": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 2, 64)
		},
		"plain": formatPlain,
		"measure": func(m views.Measure) string {
			if !m.Valid {
				return "n/a"
			}
			return strconv.FormatFloat(m.Value, 'f', 3, 64)
		},
		"emotionColor": charts.EmotionHex,
		"cell": func(c models.Cell) string {
			return c.String()
		},
	}).ParseFS(templateFS, "templates/dashboard.html"),
)

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type topMetric struct {
	Emotion string
	Value   float64
}

type heatmapCell struct {
	Label string
	Color string
	Value views.Measure
}

type heatmapRow struct {
	Emotion string
	Cells   []heatmapCell
}

type heatmapSection struct {
	Available bool
	Reason    string
	Segments  []views.Segment
	Rows      []heatmapRow
	Caption   string
}

type seriesSection struct {
	Available bool
	Reason    string
	Emotions  []string
	Selected  string
	Start     float64
	End       float64
	Extent    views.Extent
	Step      float64
	Title     string
	ChartURL  string
}

type tableSection struct {
	Columns []string
	Rows    [][]models.Cell
}

type pageData struct {
	Source     SourceInfo
	Available  bool
	Message    string
	Generation uint64
	LiveURL    string

	Top            *topMetric
	SummaryURL     string
	DominantURL    string
	DominantReason string
	Heatmap        heatmapSection
	Series         seriesSection
	Table          tableSection
}

// Page handles GET /: the dashboard itself. Without data only the absence
// message and the notices are shown.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.buildPage(r, h.svc.Snapshot())

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Dashboard template failed")
		api.NewResponseWriter(w, r).InternalError("Failed to render dashboard")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) buildPage(r *http.Request, snap *Snapshot) pageData {
	data := pageData{
		Source:    sourceInfo(snap),
		Available: snap.Available(),
		LiveURL:   h.liveURL,
	}
	if snap != nil {
		data.Generation = snap.Generation
	}
	if !data.Available {
		data.Message = snap.AbsenceMessage()
		return data
	}
	frame := snap.Frame()
	gen := strconv.FormatUint(snap.Generation, 10)

	if avg := frame.Averages(); avg.HasTop() {
		data.Top = &topMetric{Emotion: avg.Top, Value: avg.TopAverage.Value}
		data.SummaryURL = "/charts/summary.png?g=" + gen
	}

	if points, err := frame.Dominant(); err != nil {
		data.DominantReason = err.Error()
	} else if len(points) == 0 {
		data.DominantReason = "no record has a dominant emotion"
	} else {
		data.DominantURL = "/charts/dominant.png?g=" + gen
	}

	data.Heatmap = buildHeatmap(frame.Heatmap(h.svc.opts.HeatmapMaxBins))
	data.Series = buildSeries(r, frame, gen)

	store := frame.Store()
	data.Table.Columns = store.Columns()
	data.Table.Rows = make([][]models.Cell, store.Len())
	for i := range data.Table.Rows {
		data.Table.Rows[i] = store.Row(i)
	}
	return data
}

func buildHeatmap(view views.HeatmapView) heatmapSection {
	section := heatmapSection{Available: view.Available, Reason: view.Reason}
	if !view.Available {
		return section
	}
	section.Segments = view.Segments
	section.Caption = HeatmapCaption

	scale := charts.HeatmapScale(view)
	section.Rows = make([]heatmapRow, len(view.Emotions))
	for i, emotion := range view.Emotions {
		row := heatmapRow{Emotion: emotion, Cells: make([]heatmapCell, len(view.Segments))}
		for j, m := range view.Cells[i] {
			row.Cells[j] = heatmapCell{
				Label: view.Segments[j].Label,
				Color: scale.Color(m),
				Value: m,
			}
		}
		section.Rows[i] = row
	}
	return section
}

func buildSeries(r *http.Request, frame *views.Frame, gen string) seriesSection {
	section := seriesSection{Emotions: frame.Emotions()}

	req, verr, err := parseSeriesQuery(r).resolve(frame, true)
	switch {
	case verr != nil:
		section.Reason = verr.Error()
		return section
	case err != nil:
		section.Reason = err.Error()
		return section
	case !frame.HasEmotion(req.Emotion):
		section.Reason = fmt.Sprintf("unknown emotion %q", req.Emotion)
		return section
	}

	section.Available = true
	section.Selected = req.Emotion
	section.Start = req.Start
	section.End = req.End
	section.Extent = req.Extent
	section.Step = frame.SliderStep()
	section.Title = charts.SeriesTitle(req.Emotion, req.Start, req.End)

	q := url.Values{}
	q.Set("emotion", req.Emotion)
	q.Set("start", formatPlain(req.Start))
	q.Set("end", formatPlain(req.End))
	q.Set("g", gen)
	section.ChartURL = "/charts/series.png?" + q.Encode()
	return section
}
