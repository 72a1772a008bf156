// Package integrations provides the shared HTTP client for the
// download-statistics API.
//
// # Overview
//
// [Client] performs a single GET per call: no caching, no retries. It
// applies default headers, tags each request with an X-Request-ID,
// maps error statuses onto [errors] codes and decodes JSON bodies.
//
//	401          -> errors.ErrCodeUnauthorized
//	404          -> errors.ErrCodeNotFound
//	other >= 400 -> errors.ErrCodeHTTP (status preserved)
//	deadline     -> errors.ErrCodeTimeout
//	bad JSON     -> errors.ErrCodeDecode
//
// The pepy.tech client lives in the [pepy] subpackage and embeds [Client].
//
// [pepy]: github.com/matzehuels/pepystats/pkg/integrations/pepy
// [errors]: github.com/matzehuels/pepystats/pkg/errors
package integrations
