// Package httputil provides HTTP utilities for the registry client.
//
// # Overview
//
// This package provides infrastructure used by the metadata collection
// client:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/depscout/)
// with configurable TTL. This speeds up repeated collection runs and
// reduces load on the registry, which matters when a run is interrupted
// and restarted.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	var data project
//	if ok, _ := cache.Get("librariesio:lodash", &data); !ok {
//	    data = fetchFromAPI()
//	    cache.Set("librariesio:lodash", data)
//	}
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with bounded retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Only errors wrapped in [RetryableError] are retried; everything else
// (404, malformed responses) fails immediately.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/depscout/
//   - Max retries: 3
//   - Base backoff: 1 second (doubling each attempt)
//
// The cache can be cleared via `depscout cache clear` or by deleting
// the cache directory.
package httputil
