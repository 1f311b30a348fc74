// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package resolver

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/tomtom215/emotrace/internal/dataset"
	"github.com/tomtom215/emotrace/internal/models"
)

// DefaultFetchTimeout bounds the remote fetch.
const DefaultFetchTimeout = 3 * time.Second

// SourceTag names where a dataset came from.
type SourceTag string

const (
	SourceRemote SourceTag = "remote"
	SourceLocal  SourceTag = "local"
	SourceNone   SourceTag = "none"
)

// Label is the human-readable caption for the tag.
func (s SourceTag) Label() string {
	switch s {
	case SourceRemote:
		return "API"
	case SourceLocal:
		return "local CSV"
	default:
		return "no data"
	}
}

// Fetcher retrieves the full record set from the query service.
type Fetcher interface {
	FetchRecords(ctx context.Context) (*models.RowStore, error)
}

// Gate is implemented by fetchers that can refuse a request up front.
type Gate interface {
	Allow() bool
}

// Result is the outcome of one resolution. Store is nil exactly when Source
// is SourceNone.
type Result struct {
	Store     *models.RowStore
	Source    SourceTag
	RemoteErr error
	LocalErr  error
	LoadedAt  time.Time
	Duration  time.Duration
}

// Available reports whether a store was resolved.
func (r Result) Available() bool {
	return r.Source != SourceNone && r.Store != nil
}

// Config holds resolver settings.
type Config struct {
	// FallbackPath is the local CSV read when the remote fetch fails.
	FallbackPath string

	// FetchTimeout bounds the remote fetch. Zero selects DefaultFetchTimeout.
	FetchTimeout time.Duration
}

// Resolver runs the remote, local, none fallback sequence.
type Resolver struct {
	remote   Fetcher
	cfg      Config
	observer Observer
	now      func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithObserver registers a notification callback.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// New creates a resolver. remote may be nil, in which case only the local
// file is consulted.
func New(remote Fetcher, cfg Config, opts ...Option) *Resolver {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	r := &Resolver{
		remote: remote,
		cfg:    cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load resolves the dataset. It never returns an error; failures are
// recorded on the Result.
func (r *Resolver) Load(ctx context.Context) Result {
	started := r.now()
	result := r.load(ctx)
	result.LoadedAt = r.now()
	result.Duration = result.LoadedAt.Sub(started)
	return result
}

func (r *Resolver) load(ctx context.Context) Result {
	var remoteErr error
	if r.remote != nil {
		if gate, ok := r.remote.(Gate); ok && !gate.Allow() {
			remoteErr = ErrRemoteSkipped
			r.notify(ctx, Event{Kind: EventRemoteSkipped, Err: remoteErr})
		} else {
			r.notify(ctx, Event{Kind: EventAttemptingRemote})

			store, err := r.fetchRemote(ctx)
			if err == nil {
				r.notify(ctx, Event{Kind: EventRemoteSucceeded, Source: SourceRemote, Rows: store.Len()})
				return Result{Store: store, Source: SourceRemote}
			}
			remoteErr = err
			kind := EventRemoteFailed
			if errors.Is(err, ErrRemoteSkipped) {
				kind = EventRemoteSkipped
			}
			r.notify(ctx, Event{Kind: kind, Err: err})
		}
	}

	store, err := dataset.ReadFile(r.cfg.FallbackPath)
	switch {
	case err == nil:
		r.notify(ctx, Event{Kind: EventLocalSucceeded, Source: SourceLocal, Rows: store.Len(), Path: r.cfg.FallbackPath})
		return Result{Store: store, Source: SourceLocal, RemoteErr: remoteErr}
	case errors.Is(err, fs.ErrNotExist):
		r.notify(ctx, Event{Kind: EventLocalMissing, Source: SourceNone, Path: r.cfg.FallbackPath, Err: err})
	default:
		r.notify(ctx, Event{Kind: EventLocalFailed, Source: SourceNone, Path: r.cfg.FallbackPath, Err: err})
	}
	return Result{Source: SourceNone, RemoteErr: remoteErr, LocalErr: err}
}

func (r *Resolver) fetchRemote(ctx context.Context) (*models.RowStore, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	store, err := r.remote.FetchRecords(fetchCtx)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrEmptyResponse
	}
	return store, nil
}

func (r *Resolver) notify(ctx context.Context, e Event) {
	if r.observer == nil {
		return
	}
	e.Time = r.now()
	r.observer(ctx, e)
}
