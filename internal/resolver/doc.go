// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package resolver decides where the dashboard's dataset comes from.
//
// Resolution order:
//
//  1. GET {api_url}/emociones with a bounded wait (3s by default). A 2xx
//     response that decodes to records wins: source "remote".
//  2. Any remote failure (timeout, refused connection, non-2xx, malformed
//     JSON, open circuit) falls through silently to the local CSV. A present,
//     parseable file gives source "local".
//  3. Otherwise the result is terminal: no store, source "none".
//
// Remote failures are never returned as errors. They are kept on the Result
// for diagnostics and announced to an optional Observer, which cannot alter
// the outcome. Running Load again simply repeats the procedure.
package resolver
