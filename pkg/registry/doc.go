// Package registry provides the shared HTTP client used to talk to
// package-registry APIs.
//
// # Overview
//
// [Client] combines three concerns every registry call needs:
//
//   - File-based response caching ([httputil.Cache])
//   - Bounded retry with exponential backoff for transient failures
//   - Default request headers (API keys, user agent)
//
// Registry-specific clients live in subpackages and embed [Client];
// see [github.com/depscout/depscout/pkg/registry/librariesio].
//
// # Error taxonomy
//
// Failed requests map onto three sentinel errors so callers can decide
// what a failure means without string matching:
//
//   - [ErrNotFound]: 404, the package does not exist
//   - [ErrRateLimited]: 429, the registry throttled us
//   - [ErrNetwork]: transport errors, 5xx, and unexpected statuses
//
// Malformed response bodies surface as JSON decode errors from [Client.Get].
// Rate-limit and 5xx responses are wrapped in [httputil.RetryableError]
// and retried a bounded number of times before surfacing.
package registry
