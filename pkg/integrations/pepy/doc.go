// Package pepy provides a client for the pepy.tech download-statistics API.
//
// Two endpoint generations are supported. The public v2 endpoint
// (/api/v2/projects/{project}) returns daily per-version counts keyed by
// date and takes no query parameters. The pro endpoint
// (/service-api/v1/pro/projects/{project}/downloads) accepts timeRange,
// granularity, versions, includeCIDownloads and category, and returns named
// series arrays.
//
// # Usage
//
//	client := pepy.NewClient(pepy.Options{APIKey: pepy.ResolveAPIKey(flagKey, "")})
//	resp, err := client.Fetch(ctx, "requests", pepy.Params{})
//	if err != nil {
//	    return err
//	}
//	rows := resp.Overall()
//
// The envelope is detected from the body, not from the endpoint, so a
// [Response] decoded from either generation yields the same rows.
//
// # Errors
//
// A 401 maps to [errors.ErrCodeUnauthorized]; every other status >= 400 maps
// to an HTTP error carrying the status. Requests are never retried.
package pepy
