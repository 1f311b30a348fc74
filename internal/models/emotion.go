// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package models

// Canonical emotion names.
const (
	EmotionAngry    = "angry"
	EmotionDisgust  = "disgust"
	EmotionFear     = "fear"
	EmotionHappy    = "happy"
	EmotionSad      = "sad"
	EmotionSurprise = "surprise"
	EmotionNeutral  = "neutral"
)

// Time axis column names, in priority order.
const (
	TimeAxisTimestampSec = "timestamp_sec"
	TimeAxisTime         = "time"
	TimeAxisFrame        = "frame"
)

// CanonicalEmotions is the fixed emotion order. It drives every tie-break.
var CanonicalEmotions = []string{
	EmotionAngry,
	EmotionDisgust,
	EmotionFear,
	EmotionHappy,
	EmotionSad,
	EmotionSurprise,
	EmotionNeutral,
}

// TimeAxisCandidates lists the time axis columns from most to least preferred.
var TimeAxisCandidates = []string{
	TimeAxisTimestampSec,
	TimeAxisTime,
	TimeAxisFrame,
}

// IsCanonicalEmotion reports whether name is one of the canonical emotions.
func IsCanonicalEmotion(name string) bool {
	return EmotionRank(name) >= 0
}

// EmotionRank returns the canonical position of name, or -1 if it is not a
// canonical emotion.
func EmotionRank(name string) int {
	for i, e := range CanonicalEmotions {
		if e == name {
			return i
		}
	}
	return -1
}
