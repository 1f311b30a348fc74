// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tomtom215/emotrace/internal/views"
)

// ErrNothingToDraw is returned when a view has no plottable values.
var ErrNothingToDraw = errors.New("no values to plot")

// Options sizes the rendered image.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions matches the dashboard defaults.
func DefaultOptions() Options {
	return Options{Width: 960, Height: 420}
}

// Normalized replaces non-positive dimensions with the defaults.
func (o Options) Normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

var background = chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}}

// pointStyle renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Summary draws the average view as a bar chart, highest average first.
// Undefined averages are drawn as empty bars labelled "n/a".
func Summary(view views.AverageView, opts Options) ([]byte, error) {
	if len(view.Entries) == 0 {
		return nil, ErrNothingToDraw
	}
	opts = opts.Normalized()

	bars := make([]chart.Value, len(view.Entries))
	top := 0.0
	for i, e := range view.Entries {
		label := e.Emotion
		value := 0.0
		if e.Average.Valid {
			value = e.Average.Value
			top = math.Max(top, value)
		} else {
			label += " (n/a)"
		}
		col := EmotionColor(e.Emotion)
		bars[i] = chart.Value{
			Label: label,
			Value: value,
			Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		}
	}
	if top <= 0 {
		top = 1
	}

	bw := barWidth(opts.Width, len(bars))
	bc := chart.BarChart{
		Title:      "Average intensity per emotion",
		Background: background,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   bw,
		BarSpacing: bw,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.FormatFloat(f, 'f', 2, 64)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render summary chart: %w", err)
	}
	return buf.Bytes(), nil
}

func barWidth(width, bars int) int {
	w := (width - 120) / (bars * 2)
	switch {
	case w < 10:
		return 10
	case w > 80:
		return 80
	}
	return w
}

// Dominant draws the dominant-emotion series as a scatter plot: x is time,
// y is the emotion's position in the emotion set.
func Dominant(points []views.DominantPoint, emotions []string, timeAxis string, opts Options) ([]byte, error) {
	if len(points) == 0 || len(emotions) == 0 {
		return nil, ErrNothingToDraw
	}
	opts = opts.Normalized()

	rank := make(map[string]int, len(emotions))
	ticks := make([]chart.Tick, len(emotions))
	for i, e := range emotions {
		rank[e] = i
		ticks[i] = chart.Tick{Value: float64(i), Label: e}
	}

	xs := make(map[string][]float64, len(emotions))
	lo, hi := points[0].Time, points[0].Time
	for _, p := range points {
		xs[p.Emotion] = append(xs[p.Emotion], p.Time)
		lo = math.Min(lo, p.Time)
		hi = math.Max(hi, p.Time)
	}

	series := make([]chart.Series, 0, len(emotions))
	for _, e := range emotions {
		x := xs[e]
		if len(x) == 0 {
			continue
		}
		y := make([]float64, len(x))
		for i := range y {
			y[i] = float64(rank[e])
		}
		if len(x) == 1 {
			// A single value still needs two points to form a series.
			x = []float64{x[0], x[0]}
			y = []float64{y[0], y[0]}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    e,
			XValues: x,
			YValues: y,
			Style:   pointStyle(EmotionColor(e)),
		})
	}

	lo, hi = padRange(lo, hi)
	ch := chart.Chart{
		Title:      "Dominant emotion over time",
		Background: background,
		Width:      opts.Width,
		Height:     opts.Height,
		XAxis:      chart.XAxis{Name: timeAxis, Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		YAxis: chart.YAxis{
			Name:  "emotion",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(emotions)) - 0.5},
			Ticks: ticks,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render dominant chart: %w", err)
	}
	return buf.Bytes(), nil
}

// SeriesTitle is the caption of a filtered series chart.
func SeriesTitle(emotion string, start, end float64) string {
	return fmt.Sprintf("Evolution of %s between %.2f and %.2f", emotion, start, end)
}

// Series draws one emotion's filtered series as a line chart. Undefined
// samples are skipped.
func Series(title, emotion, timeAxis string, points []views.SeriesPoint, opts Options) ([]byte, error) {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		if !p.Value.Valid {
			continue
		}
		xs = append(xs, p.Time)
		ys = append(ys, p.Value.Value)
	}
	if len(xs) == 0 {
		return nil, ErrNothingToDraw
	}
	opts = opts.Normalized()

	xlo, xhi := xs[0], xs[0]
	ylo, yhi := ys[0], ys[0]
	for i := range xs {
		xlo, xhi = math.Min(xlo, xs[i]), math.Max(xhi, xs[i])
		ylo, yhi = math.Min(ylo, ys[i]), math.Max(yhi, ys[i])
	}
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}
	xlo, xhi = padRange(xlo, xhi)
	ylo, yhi = padRange(math.Min(ylo, 0), yhi)

	col := EmotionColor(emotion)
	ch := chart.Chart{
		Title:      title,
		Background: background,
		Width:      opts.Width,
		Height:     opts.Height,
		XAxis:      chart.XAxis{Name: timeAxis, Range: &chart.ContinuousRange{Min: xlo, Max: xhi}},
		YAxis:      chart.YAxis{Name: "intensity", Range: &chart.ContinuousRange{Min: ylo, Max: yhi}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    emotion,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 2},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render series chart: %w", err)
	}
	return buf.Bytes(), nil
}

// padRange widens a zero-width range so go-chart can map it.
func padRange(lo, hi float64) (float64, float64) {
	if hi <= lo {
		return lo - 0.5, lo + 0.5
	}
	return lo, hi
}
