// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/emotrace/internal/cache"
	"github.com/tomtom215/emotrace/internal/charts"
	"github.com/tomtom215/emotrace/internal/logging"
	"github.com/tomtom215/emotrace/internal/resolver"
	"github.com/tomtom215/emotrace/internal/views"
)

// Loader produces a dataset. *resolver.Resolver implements it.
type Loader interface {
	Load(ctx context.Context) resolver.Result
}

// Notice is a resolver event rendered for display.
type Notice struct {
	Kind     string    `json:"kind"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// Snapshot is one immutable load of the dataset.
type Snapshot struct {
	Generation uint64
	Result     resolver.Result
	Notices    []Notice

	// frame is nil when no store was resolved.
	frame *views.Frame
}

// Available reports whether the snapshot holds at least one record.
// An empty store is treated like missing data.
func (s *Snapshot) Available() bool {
	return s != nil && s.frame != nil && s.frame.Len() > 0
}

// Frame returns the derivation frame, or nil when unavailable.
func (s *Snapshot) Frame() *views.Frame {
	if !s.Available() {
		return nil
	}
	return s.frame
}

// AbsenceMessage explains why no dashboard content is shown.
func (s *Snapshot) AbsenceMessage() string {
	switch {
	case s == nil:
		return "Data has not been loaded yet."
	case s.frame != nil && s.frame.Len() == 0:
		return "The dataset contains no records."
	case s.Result.LocalErr != nil && s.Result.RemoteErr == nil:
		return "The local CSV could not be read."
	default:
		return "No data available: the API is unreachable and the local CSV was not found."
	}
}

// ReloadListener is told about every published snapshot.
type ReloadListener interface {
	NotifyReload(generation uint64, source string, rows int)
}

// Options configures a Service.
type Options struct {
	HeatmapMaxBins int
	Chart          charts.Options
	CacheSize      int
	CacheTTL       time.Duration
	Listener       ReloadListener

	// Scheduled, if set, is used by ReloadScheduled instead of the main
	// loader, typically one whose remote sits behind a circuit breaker.
	Scheduled Loader
}

// Service owns the current snapshot and the chart cache.
type Service struct {
	loader   Loader
	recorder *resolver.Recorder
	opts     Options

	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
	reloadMu   sync.Mutex

	charts *cache.LRU[[]byte]
}

// New creates a dashboard service. recorder, if non-nil, must be an
// observer of loader; its events become the snapshot's notices.
func New(loader Loader, recorder *resolver.Recorder, opts Options) *Service {
	if opts.HeatmapMaxBins <= 0 {
		opts.HeatmapMaxBins = views.DefaultMaxBins
	}
	opts.Chart = opts.Chart.Normalized()
	return &Service{
		loader:   loader,
		recorder: recorder,
		opts:     opts,
		charts:   cache.NewLRU[[]byte](opts.CacheSize, opts.CacheTTL),
	}
}

// Reload runs the resolver and publishes a new snapshot. Reloads are
// serialized; readers keep using the previous snapshot until the swap.
func (s *Service) Reload(ctx context.Context) *Snapshot {
	return s.reload(ctx, s.loader)
}

// ReloadScheduled is Reload for periodic maintenance: it uses the
// Scheduled loader when one is configured.
func (s *Service) ReloadScheduled(ctx context.Context) *Snapshot {
	if s.opts.Scheduled != nil {
		return s.reload(ctx, s.opts.Scheduled)
	}
	return s.reload(ctx, s.loader)
}

func (s *Service) reload(ctx context.Context, loader Loader) *Snapshot {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.recorder != nil {
		s.recorder.Reset()
	}

	result := loader.Load(ctx)

	snap := &Snapshot{
		Generation: s.generation.Add(1),
		Result:     result,
	}
	if s.recorder != nil {
		for _, e := range s.recorder.Events() {
			snap.Notices = append(snap.Notices, Notice{
				Kind:     string(e.Kind),
				Severity: e.Severity(),
				Message:  e.Message(),
				Time:     e.Time,
			})
		}
	}
	if result.Available() {
		// NewFrame only fails on a nil store, which Available excludes.
		if frame, err := views.NewFrame(result.Store); err == nil {
			snap.frame = frame
		}
	}

	s.current.Store(snap)
	if s.opts.Listener != nil {
		s.opts.Listener.NotifyReload(snap.Generation, string(result.Source), result.Store.Len())
	}

	logging.Ctx(ctx).Info().
		Uint64("generation", snap.Generation).
		Str("source", string(result.Source)).
		Int("rows", result.Store.Len()).
		Dur("duration", result.Duration).
		Msg("Dashboard data reloaded")

	return snap
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Service) Snapshot() *Snapshot {
	return s.current.Load()
}

// ChartCache exposes the chart cache for maintenance services.
func (s *Service) ChartCache() *cache.LRU[[]byte] {
	return s.charts
}
