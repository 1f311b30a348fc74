// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/emotrace/internal/dataset"
	"github.com/tomtom215/emotrace/internal/metrics"
	"github.com/tomtom215/emotrace/internal/models"
)

// RecordsPath is the query service endpoint that returns all records.
const RecordsPath = "/emociones"

// maxErrorBodySize caps how much of an error response is kept.
const maxErrorBodySize = 4 * 1024

var (
	// ErrRemoteStatus is returned for non-2xx responses.
	ErrRemoteStatus = errors.New("unexpected status from query service")

	// ErrEmptyResponse is returned when a fetcher yields no store.
	ErrEmptyResponse = errors.New("query service returned no records")

	// ErrRemoteSkipped is returned when a fetcher refuses to send a request.
	ErrRemoteSkipped = errors.New("remote fetch skipped")
)

// HTTPFetcher fetches records from the query service over HTTP.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
}

// NewHTTPFetcher creates a fetcher for baseURL. The client timeout is a
// backstop; Resolver.Load applies the real deadline through the context.
func NewHTTPFetcher(baseURL string, timeout time.Duration) (*HTTPFetcher, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &HTTPFetcher{
		endpoint: u.String() + RecordsPath,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Endpoint returns the URL the fetcher requests.
func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint
}

// FetchRecords performs GET /emociones and decodes the body.
func (f *HTTPFetcher) FetchRecords(ctx context.Context) (store *models.RowStore, err error) {
	started := time.Now()
	defer func() {
		metrics.RecordRemoteFetch(time.Since(started), err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("%w: %d: %s", ErrRemoteStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	store, err = dataset.DecodeRecords(resp.Body)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// readBodyForError reads a bounded prefix of an error response body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}
