// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/metrics"
)

// EventKind identifies a resolver notification.
type EventKind string

const (
	EventAttemptingRemote EventKind = "attempting_remote"
	EventRemoteSucceeded  EventKind = "remote_succeeded"
	EventRemoteFailed     EventKind = "remote_failed"
	EventRemoteSkipped    EventKind = "remote_skipped"
	EventLocalSucceeded   EventKind = "local_succeeded"
	EventLocalMissing     EventKind = "local_missing"
	EventLocalFailed      EventKind = "local_failed"
)

// Event is a progress notification emitted during Load.
type Event struct {
	Kind   EventKind
	Source SourceTag
	Rows   int
	Path   string
	Err    error
	Time   time.Time
}

// Message renders the event as a user-facing notice.
func (e Event) Message() string {
	switch e.Kind {
	case EventAttemptingRemote:
		return "Connecting to the emotion API..."
	case EventRemoteSucceeded:
		return fmt.Sprintf("Loaded %d records from the API", e.Rows)
	case EventRemoteFailed:
		return "API unavailable, falling back to the local CSV"
	case EventRemoteSkipped:
		return "API circuit open, using the local CSV"
	case EventLocalSucceeded:
		return fmt.Sprintf("Loaded %d records from the local CSV", e.Rows)
	case EventLocalMissing:
		return "No data available: the API is unreachable and the local CSV is missing"
	case EventLocalFailed:
		return "No data available: the local CSV could not be read"
	default:
		return string(e.Kind)
	}
}

// Severity is "info", "warning" or "error", for display.
func (e Event) Severity() string {
	switch e.Kind {
	case EventRemoteFailed, EventRemoteSkipped:
		return "warning"
	case EventLocalMissing, EventLocalFailed:
		return "error"
	default:
		return "info"
	}
}

// Observer receives resolver notifications. It must not block for long.
type Observer func(ctx context.Context, e Event)

// Observers fans one event out to several observers in order.
func Observers(observers ...Observer) Observer {
	return func(ctx context.Context, e Event) {
		for _, o := range observers {
			if o != nil {
				o(ctx, e)
			}
		}
	}
}

// LogObserver writes every event through zerolog.
func LogObserver(ctx context.Context, e Event) {
	logger := logging.Ctx(ctx)
	switch e.Kind {
	case EventRemoteFailed:
		logger.Warn().Err(e.Err).Str("event", string(e.Kind)).Msg("Remote fetch failed, using local fallback")
	case EventRemoteSkipped:
		logger.Warn().Str("event", string(e.Kind)).Msg("Circuit open, remote fetch not attempted")
	case EventLocalMissing, EventLocalFailed:
		logger.Error().Err(e.Err).Str("event", string(e.Kind)).Str("path", e.Path).Msg("No dataset available")
	case EventAttemptingRemote:
		logger.Debug().Str("event", string(e.Kind)).Msg("Fetching dataset from query service")
	default:
		logger.Info().Str("event", string(e.Kind)).Str("source", string(e.Source)).Int("rows", e.Rows).Msg("Dataset loaded")
	}
}

// MetricsObserver records terminal events as source loads.
func MetricsObserver(_ context.Context, e Event) {
	switch e.Kind {
	case EventRemoteSucceeded, EventLocalSucceeded:
		metrics.RecordSourceLoad(string(e.Source), e.Rows)
	case EventLocalMissing, EventLocalFailed:
		metrics.RecordSourceLoad(string(SourceNone), 0)
	}
}

// Recorder collects events, for display after a load completes.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Observe appends an event. Use it as an Observer.
func (r *Recorder) Observe(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
