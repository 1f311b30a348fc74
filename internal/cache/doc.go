// Emotrace - Emotion Time Series Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotrace

// Package cache provides a generic, thread-safe LRU cache with TTL expiry.
//
// The dashboard memoizes rendered chart PNGs in it. Keys carry the data
// generation, so a reload never serves a chart of the previous row store;
// stale generations simply age out through LRU eviction and TTL.
//
//	c := cache.NewLRU[[]byte](128, 10*time.Minute)
//	if png, ok := c.Get(key); ok {
//	    return png
//	}
//	c.Add(key, render())
package cache
