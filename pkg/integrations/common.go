package integrations

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request made without an explicit timeout.
const DefaultTimeout = 30 * time.Second

// HeaderRequestID carries the per-request correlation ID.
const HeaderRequestID = "X-Request-ID"

// NewHTTPClient creates an HTTP client with a fixed timeout.
// A timeout <= 0 selects DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NormalizePkgName converts a package name to its canonical form.
// Applies lowercase and replaces underscores with hyphens, following PEP 503
// normalization rules used by PyPI and other registries.
func NormalizePkgName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// URLEncode percent-encodes a string for use in URL path segments.
func URLEncode(s string) string { return url.PathEscape(s) }
