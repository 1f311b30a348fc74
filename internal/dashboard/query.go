// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dashboard

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/tomtom215/emotrace/internal/validation"
	"github.com/tomtom215/emotrace/internal/views"
)

var errNoEmotions = errors.New("no emotion columns present")

// seriesQuery holds the raw series parameters of a request.
type seriesQuery struct {
	Emotion string `query:"emotion" validate:"omitempty,emotion"`
	Start   string `query:"start" validate:"omitempty,number"`
	End     string `query:"end" validate:"omitempty,number"`
}

func parseSeriesQuery(r *http.Request) seriesQuery {
	q := r.URL.Query()
	return seriesQuery{
		Emotion: q.Get("emotion"),
		Start:   q.Get("start"),
		End:     q.Get("end"),
	}
}

// seriesRequest is a validated series selection.
type seriesRequest struct {
	Emotion string
	Start   float64
	End     float64
	Extent  views.Extent
}

// resolve fills defaults from the frame: the first emotion of the set and
// the full time extent. With clamp set, the bounds are pulled into the
// extent and swapped if reversed, as a range control would; otherwise
// out-of-range values are left for Frame.Series to reject.
func (q seriesQuery) resolve(frame *views.Frame, clamp bool) (seriesRequest, *validation.RequestValidationError, error) {
	if verr := validation.ValidateStruct(&q); verr != nil {
		return seriesRequest{}, verr, nil
	}

	ext, err := frame.Extent()
	if err != nil {
		return seriesRequest{}, nil, err
	}

	req := seriesRequest{Emotion: q.Emotion, Start: ext.Min, End: ext.Max, Extent: ext}
	if req.Emotion == "" {
		emotions := frame.Emotions()
		if len(emotions) == 0 {
			return seriesRequest{}, nil, errNoEmotions
		}
		req.Emotion = emotions[0]
	}
	if q.Start != "" {
		// Validated as a finite number above.
		req.Start, _ = strconv.ParseFloat(q.Start, 64)
	}
	if q.End != "" {
		req.End, _ = strconv.ParseFloat(q.End, 64)
	}

	if clamp {
		req.Start = math.Min(math.Max(req.Start, ext.Min), ext.Max)
		req.End = math.Min(math.Max(req.End, ext.Min), ext.Max)
		if req.Start > req.End {
			req.Start, req.End = req.End, req.Start
		}
	}
	return req, nil, nil
}
