// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

/*
Package dashboard serves the Emotrace dashboard: an HTML page, PNG charts and
JSON endpoints over the derived views of the current dataset.

Data flow:

	resolver.Load -> Snapshot (immutable, generation N) -> views.Frame -> handlers

Service.Reload runs the source resolver and atomically swaps in a new
snapshot. Handlers load the snapshot once per request, so a concurrent reload
never mixes two datasets in one response. When no data was found (or the
dataset is empty) the page shows only the data-absence message and the view
endpoints answer 503.

Rendered chart PNGs are memoized in an LRU keyed by snapshot generation,
chart kind, size and parameters. Derived views themselves are recomputed on
each request.
*/
package dashboard
