package registry

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited is returned when the registry rejects a request with
	// HTTP 429. Rate-limit rejections are retried with bounded backoff
	// before this error surfaces.
	ErrRateLimited = errors.New("rate limited")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses, unexpected status codes).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the standard per-request
// timeout so one unresponsive registry call cannot stall a run.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// EscapePackageName percent-encodes a package name for use as a URL path
// segment. Scoped npm names contain '@' and '/', both of which must be
// escaped ("@babel/core" -> "%40babel%2Fcore").
func EscapePackageName(name string) string {
	return url.QueryEscape(name)
}
