package pepy

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/pepystats/pkg/downloads"
	"github.com/matzehuels/pepystats/pkg/errors"
	"github.com/matzehuels/pepystats/pkg/integrations"
)

const (
	// DefaultBaseURL is the public pepy.tech API host.
	DefaultBaseURL = "https://api.pepy.tech"

	// EnvAPIKey names the environment variable holding the fallback API key.
	EnvAPIKey = "PEPY_API_KEY"

	// HeaderAPIKey is the request header carrying the API key.
	HeaderAPIKey = "X-API-Key"
)

// APIVersion selects the upstream API generation and its envelope.
type APIVersion string

const (
	// APIv2 is the public endpoint returning a date-keyed envelope.
	APIv2 APIVersion = "v2"

	// APIPro is the query-parameter endpoint returning series arrays.
	APIPro APIVersion = "pro"
)

// ParseAPIVersion validates s.
func ParseAPIVersion(s string) (APIVersion, error) {
	switch v := APIVersion(strings.ToLower(strings.TrimSpace(s))); v {
	case APIv2, APIPro:
		return v, nil
	case "":
		return APIv2, nil
	default:
		return "", errors.Argument("invalid api %q (must be v2 or pro)", s)
	}
}

// Params are the request hints sent with a fetch. The v2 endpoint takes no
// query parameters, so they only shape requests to the pro endpoint.
type Params struct {
	TimeRange   string                // e.g. "THREE_MONTHS"; empty omits it
	Granularity downloads.Granularity // upstream bucket width; empty omits it
	Versions    []string              // version filter; empty means all
	IncludeCI   bool                  // include CI-attributed downloads
	Category    string                // "version" for per-version series
}

// Options configures a Client.
type Options struct {
	BaseURL string        // API host; DefaultBaseURL when empty
	API     APIVersion    // endpoint generation; APIv2 when empty
	APIKey  string        // sent as X-API-Key when non-empty
	Timeout time.Duration // request bound; integrations.DefaultTimeout when <= 0
}

// Client fetches download statistics from pepy.tech.
//
// Each Fetch issues exactly one GET. Nothing is cached or retried.
type Client struct {
	*integrations.Client
	baseURL string
	api     APIVersion
}

// NewClient creates a pepy.tech client.
func NewClient(opts Options) *Client {
	var headers map[string]string
	if opts.APIKey != "" {
		headers = map[string]string{HeaderAPIKey: opts.APIKey}
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	api := opts.API
	if api == "" {
		api = APIv2
	}
	return &Client{
		Client:  integrations.NewClient(opts.Timeout, headers),
		baseURL: base,
		api:     api,
	}
}

// API returns the endpoint generation the client talks to.
func (c *Client) API() APIVersion { return c.api }

// ResolveAPIKey picks the key to send: an explicit value wins over the
// PEPY_API_KEY environment variable, which wins over fallback (typically
// the config file). An empty result means no key header is sent.
func ResolveAPIKey(explicit, fallback string) string {
	if k := strings.TrimSpace(explicit); k != "" {
		return k
	}
	if k := strings.TrimSpace(os.Getenv(EnvAPIKey)); k != "" {
		return k
	}
	return strings.TrimSpace(fallback)
}

// URL builds the request URL for project.
func (c *Client) URL(project string, p Params) string {
	name := integrations.URLEncode(integrations.NormalizePkgName(project))
	if c.api == APIv2 {
		return fmt.Sprintf("%s/api/v2/projects/%s", c.baseURL, name)
	}

	q := url.Values{}
	if p.TimeRange != "" {
		q.Set("timeRange", p.TimeRange)
	}
	if p.Granularity != "" {
		q.Set("granularity", string(p.Granularity))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	q.Set("includeCIDownloads", strconv.FormatBool(p.IncludeCI))
	for _, v := range p.Versions {
		q.Add("versions", v)
	}
	return fmt.Sprintf("%s/service-api/v1/pro/projects/%s/downloads?%s", c.baseURL, name, q.Encode())
}

// Fetch retrieves the raw statistics for project.
//
// Returns:
//   - [errors.ErrCodeUnauthorized] on 401
//   - [errors.ErrCodeNotFound] on 404, [errors.ErrCodeHTTP] on other >= 400
//   - [errors.ErrCodeTimeout] when the request exceeds its bound
//   - [errors.ErrCodeDecode] when the body is not a recognizable payload
func (c *Client) Fetch(ctx context.Context, project string, p Params) (*Response, error) {
	if err := errors.ValidateProjectName(project); err != nil {
		return nil, err
	}
	var resp Response
	if err := c.Get(ctx, c.URL(project, p), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TimeRange maps a months-back window onto the pro endpoint's range hint,
// choosing the smallest range that covers it.
func TimeRange(months int) string {
	switch {
	case months <= 0:
		return "ALL_TIME"
	case months <= 1:
		return "ONE_MONTH"
	case months <= 3:
		return "THREE_MONTHS"
	case months <= 6:
		return "SIX_MONTHS"
	case months <= 12:
		return "ONE_YEAR"
	default:
		return "ALL_TIME"
	}
}
