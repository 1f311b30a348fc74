// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package charts

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/tomtom215/emotrace/internal/views"
)

func assertPNG(t *testing.T, data []byte, width, height int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		t.Errorf("image size = %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height)
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	view := views.AverageView{
		Entries: []views.EmotionAverage{
			{Emotion: "happy", Average: views.Defined(0.5), Samples: 2},
			{Emotion: "sad", Average: views.Defined(0.3), Samples: 2},
			{Emotion: "fear", Samples: 0},
		},
		Top:        "happy",
		TopAverage: views.Defined(0.5),
	}

	data, err := Summary(view, Options{Width: 640, Height: 320})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	assertPNG(t, data, 640, 320)

	if _, err := Summary(views.AverageView{}, Options{}); !errors.Is(err, ErrNothingToDraw) {
		t.Errorf("empty view error = %v, want ErrNothingToDraw", err)
	}
}

func TestSummary_AllUndefined(t *testing.T) {
	t.Parallel()

	view := views.AverageView{Entries: []views.EmotionAverage{{Emotion: "angry"}}}
	data, err := Summary(view, Options{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	assertPNG(t, data, 960, 420)
}

func TestDominant(t *testing.T) {
	t.Parallel()

	points := []views.DominantPoint{
		{Time: 0, Emotion: "happy", Score: 0.8},
		{Time: 1, Emotion: "sad", Score: 0.9},
		{Time: 2, Emotion: "sad", Score: 0.7},
	}
	data, err := Dominant(points, []string{"happy", "sad"}, "time", Options{Width: 500, Height: 300})
	if err != nil {
		t.Fatalf("Dominant: %v", err)
	}
	assertPNG(t, data, 500, 300)
}

func TestDominant_SinglePoint(t *testing.T) {
	t.Parallel()

	points := []views.DominantPoint{{Time: 3, Emotion: "neutral", Score: 1}}
	data, err := Dominant(points, []string{"neutral"}, "frame", Options{Width: 400, Height: 200})
	if err != nil {
		t.Fatalf("Dominant: %v", err)
	}
	assertPNG(t, data, 400, 200)

	if _, err := Dominant(nil, []string{"happy"}, "frame", Options{}); !errors.Is(err, ErrNothingToDraw) {
		t.Errorf("empty points error = %v", err)
	}
}

func TestSeries(t *testing.T) {
	t.Parallel()

	points := []views.SeriesPoint{
		{Time: 0, Value: views.Defined(0.1)},
		{Time: 1, Value: views.Measure{}},
		{Time: 2, Value: views.Defined(0.4)},
	}
	data, err := Series(SeriesTitle("happy", 0, 2), "happy", "timestamp_sec", points, Options{Width: 480, Height: 240})
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	assertPNG(t, data, 480, 240)

	constant := []views.SeriesPoint{{Time: 5, Value: views.Defined(0)}}
	if _, err := Series("", "sad", "time", constant, Options{}); err != nil {
		t.Errorf("single constant point: %v", err)
	}

	undefined := []views.SeriesPoint{{Time: 0, Value: views.Measure{}}}
	if _, err := Series("", "sad", "time", undefined, Options{}); !errors.Is(err, ErrNothingToDraw) {
		t.Errorf("all undefined error = %v", err)
	}
}

func TestSeriesTitle(t *testing.T) {
	t.Parallel()
	if got := SeriesTitle("happy", 0, 12.5); got != "Evolution of happy between 0.00 and 12.50" {
		t.Errorf("SeriesTitle = %q", got)
	}
}

func TestPalette(t *testing.T) {
	t.Parallel()

	if got := Viridis(0); got != "#440154" {
		t.Errorf("Viridis(0) = %s", got)
	}
	if got := Viridis(1); got != "#fde725" {
		t.Errorf("Viridis(1) = %s", got)
	}
	if Viridis(-3) != Viridis(0) || Viridis(7) != Viridis(1) {
		t.Error("Viridis should clamp")
	}
	if got := EmotionHex("happy"); got != "#ffbf00" {
		t.Errorf("EmotionHex(happy) = %s", got)
	}
	if EmotionHex("unknown") == "" {
		t.Error("unknown emotions need a fallback colour")
	}
}

func TestHeatmapScale(t *testing.T) {
	t.Parallel()

	h := views.HeatmapView{
		Available: true,
		Cells: [][]views.Measure{
			{views.Defined(0.2), {}},
			{views.Defined(0.6), views.Defined(0.4)},
		},
	}
	s := HeatmapScale(h)
	if s.Min != 0.2 || s.Max != 0.6 {
		t.Errorf("scale = [%v, %v], want [0.2, 0.6]", s.Min, s.Max)
	}
	if got := s.Color(views.Measure{}); got != NoDataColor {
		t.Errorf("undefined colour = %s, want %s", got, NoDataColor)
	}
	if got := s.Color(views.Defined(0.2)); got != Viridis(0) {
		t.Errorf("min colour = %s", got)
	}
	if got := s.Color(views.Defined(0.6)); got != Viridis(1) {
		t.Errorf("max colour = %s", got)
	}

	flat := HeatmapScale(views.HeatmapView{Cells: [][]views.Measure{{views.Defined(0)}}})
	if got := flat.Color(views.Defined(0)); got != Viridis(0.5) {
		t.Errorf("flat scale colour = %s", got)
	}
	if got := (Scale{}).Color(views.Defined(1)); got != NoDataColor {
		t.Errorf("empty scale colour = %s", got)
	}
}
