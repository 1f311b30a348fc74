// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package charts

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tomtom215/emotrace/internal/models"
	"github.com/tomtom215/emotrace/internal/views"
)

// emotionHex maps each canonical emotion to a fixed colour.
var emotionHex = map[string]string{
	models.EmotionAngry:    "d62728",
	models.EmotionDisgust:  "8c564b",
	models.EmotionFear:     "9467bd",
	models.EmotionHappy:    "ffbf00",
	models.EmotionSad:      "1f77b4",
	models.EmotionSurprise: "ff7f0e",
	models.EmotionNeutral:  "7f7f7f",
}

// EmotionColor returns the chart colour of an emotion.
func EmotionColor(emotion string) drawing.Color {
	if hex, ok := emotionHex[emotion]; ok {
		return drawing.ColorFromHex(hex)
	}
	return drawing.ColorFromHex("17becf")
}

// EmotionHex returns the CSS colour of an emotion.
func EmotionHex(emotion string) string {
	c := EmotionColor(emotion)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// viridis control points, evenly spaced over [0, 1].
var viridis = [][3]float64{
	{68, 1, 84},
	{72, 40, 120},
	{62, 74, 137},
	{49, 104, 142},
	{38, 130, 142},
	{31, 158, 137},
	{53, 183, 121},
	{109, 205, 89},
	{180, 222, 44},
	{253, 231, 37},
}

// Viridis returns the CSS colour at position t of the viridis scale. t is
// clamped to [0, 1].
func Viridis(t float64) string {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(viridis)-1)
	i := int(math.Floor(pos))
	if i >= len(viridis)-1 {
		i = len(viridis) - 2
	}
	frac := pos - float64(i)

	lerp := func(a, b float64) uint8 {
		return uint8(math.Round(a + (b-a)*frac))
	}
	lo, hi := viridis[i], viridis[i+1]
	return fmt.Sprintf("#%02x%02x%02x", lerp(lo[0], hi[0]), lerp(lo[1], hi[1]), lerp(lo[2], hi[2]))
}

// NoDataColor is the cell colour of an undefined heatmap cell.
const NoDataColor = "#e6e6e6"

// Scale normalizes measures to the viridis scale over [Min, Max].
type Scale struct {
	Min, Max float64
	valid    bool
}

// HeatmapScale spans the defined cells of a heatmap.
func HeatmapScale(h views.HeatmapView) Scale {
	var s Scale
	for _, row := range h.Cells {
		for _, m := range row {
			if !m.Valid {
				continue
			}
			if !s.valid || m.Value < s.Min {
				s.Min = m.Value
			}
			if !s.valid || m.Value > s.Max {
				s.Max = m.Value
			}
			s.valid = true
		}
	}
	return s
}

// Color returns the cell colour of m. Undefined measures get NoDataColor,
// never the colour of zero.
func (s Scale) Color(m views.Measure) string {
	if !m.Valid || !s.valid {
		return NoDataColor
	}
	if s.Max == s.Min {
		return Viridis(0.5)
	}
	return Viridis((m.Value - s.Min) / (s.Max - s.Min))
}
