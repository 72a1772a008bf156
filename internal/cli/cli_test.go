package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pepystats/pkg/config"
	"github.com/matzehuels/pepystats/pkg/errors"
	"github.com/matzehuels/pepystats/pkg/integrations/pepy"
	"github.com/matzehuels/pepystats/pkg/observability"
)

const v2Body = `{
  "id": "chunkwrap",
  "total_downloads": 21,
  "versions": ["1.0", "2.0"],
  "downloads": {
    "2025-06-30": {"1.0": 100},
    "2025-07-10": {"1.0": 5, "2.0": 6},
    "2025-08-05": {"2.0": 7},
    "2025-08-06": {"2.0": 3}
  }
}`

// fakeAPI records requests and answers with a fixed status and body.
type fakeAPI struct {
	*httptest.Server
	mu   sync.Mutex
	reqs []*http.Request
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.reqs = append(api.reqs, r)
		api.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) requests() []*http.Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*http.Request(nil), a.reqs...)
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI against api with "now" fixed at 2025-08-10.
func run(t *testing.T, api *fakeAPI, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv(pepy.EnvAPIKey, "")
	t.Cleanup(observability.Reset)

	var out, errb bytes.Buffer
	c := New(&errb, LogInfo)
	c.Out, c.Err, c.In = &out, &errb, strings.NewReader("")
	c.Interactive = false
	c.Clock = clockwork.NewFakeClockAt(time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC))

	root := c.RootCommand()
	if api != nil {
		args = append([]string{"--base-url", api.URL}, args...)
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errb.String(), err: err}
}

func TestOverallCSV(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, v2Body)

	res := run(t, api, "overall", "chunkwrap", "--months", "1", "--fmt", "csv")
	require.NoError(t, res.err)

	assert.Equal(t, "date,total\n2025-07-10,11\n2025-08-05,7\n2025-08-06,3\n", res.stdout)
	require.Len(t, api.requests(), 1)
	assert.Equal(t, "/api/v2/projects/chunkwrap", api.requests()[0].URL.Path)
	assert.Contains(t, res.stderr, "Fetched chunkwrap: 3 rows")
}

func TestOverallWeeklyMarkdown(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, v2Body)

	res := run(t, api, "overall", "chunkwrap", "--months", "0", "--granularity", "weekly", "--fmt", "md")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "| date")
	assert.Regexp(t, `2025-07-05 +\| +100`, res.stdout)
	assert.Regexp(t, `2025-07-12 +\| +11`, res.stdout)
	assert.Regexp(t, `2025-08-09 +\| +10`, res.stdout)
}

func TestOverallEmptyPlain(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"downloads": {}}`)

	res := run(t, api, "overall", "chunkwrap", "--plot")
	require.NoError(t, res.err)
	assert.Equal(t, "no data\n", res.stdout)
	assert.NotContains(t, res.stderr, "--plot")
}

func TestPlotSkippedWithoutTerminal(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, v2Body)

	res := run(t, api, "overall", "chunkwrap", "--plot")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "--plot needs an interactive terminal")
}

func TestVersionsForms(t *testing.T) {
	tests := [][]string{
		{"versions", "chunkwrap", "--months", "0", "--versions", "1.0", "2.0"},
		{"versions", "chunkwrap", "--months", "0", "--versions", "1.0,2.0"},
		{"versions", "chunkwrap", "--months", "0", "--versions", "1.0", "--versions", "2.0", "--versions", "1.0"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args[4:], " "), func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, v2Body)
			res := run(t, api, append(args, "--fmt", "csv")...)
			require.NoError(t, res.err)
			assert.Equal(t,
				"date,1.0,2.0\n2025-06-30,100,0\n2025-07-10,5,6\n2025-08-05,0,7\n2025-08-06,0,3\n",
				res.stdout)
		})
	}
}

func TestVersionsRequiresFlag(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, v2Body)

	res := run(t, api, "versions", "chunkwrap")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, errors.ErrCodeInvalidArgument))
	assert.Empty(t, res.stdout)
	assert.Empty(t, api.requests())
}

func TestHTTPErrorPrintsNothing(t *testing.T) {
	api := newFakeAPI(t, http.StatusInternalServerError, `boom`)

	res := run(t, api, "overall", "chunkwrap")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, errors.ErrCodeHTTP))
	assert.Equal(t, 500, errors.Status(res.err))
	assert.Empty(t, res.stdout)
}

func TestUnauthorized(t *testing.T) {
	api := newFakeAPI(t, http.StatusUnauthorized, `{}`)

	res := run(t, api, "overall", "chunkwrap")
	assert.True(t, errors.Is(res.err, errors.ErrCodeUnauthorized))
	assert.Empty(t, res.stdout)
}

func TestArgumentErrors(t *testing.T) {
	tests := [][]string{
		{"overall"},
		{"overall", "a", "b"},
		{"overall", "chunkwrap", "--granularity", "hourly"},
		{"overall", "chunkwrap", "--fmt", "html"},
		{"overall", "chunkwrap", "--api", "v9"},
		{"overall", "../etc"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, v2Body)
			res := run(t, api, args...)
			require.Error(t, res.err)
			assert.True(t, errors.Is(res.err, errors.ErrCodeInvalidArgument), "got %v", res.err)
			assert.Empty(t, api.requests())
		})
	}
}

func TestAPIKeyPrecedence(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, v2Body)

	res := run(t, api, "overall", "chunkwrap", "--api-key", "from-flag")
	require.NoError(t, res.err)
	assert.Equal(t, "from-flag", api.requests()[0].Header.Get(pepy.HeaderAPIKey))

	res = run(t, api, "overall", "chunkwrap")
	require.NoError(t, res.err)
	_, sent := api.requests()[1].Header[http.CanonicalHeaderKey(pepy.HeaderAPIKey)]
	assert.False(t, sent)
}

func TestProAPIQuery(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"versions": [{"version": "2.0", "dailyDownloads": [{"date": "2025-08-05", "downloads": 7}]}]}`)

	res := run(t, api, "--api", "pro", "versions", "chunkwrap", "--versions", "2.0", "--no-ci", "--months", "6", "--fmt", "csv")
	require.NoError(t, res.err)

	req := api.requests()[0]
	assert.Equal(t, "/service-api/v1/pro/projects/chunkwrap/downloads", req.URL.Path)
	assert.Equal(t, "SIX_MONTHS", req.URL.Query().Get("timeRange"))
	assert.Equal(t, "false", req.URL.Query().Get("includeCIDownloads"))
	assert.Equal(t, "date,2.0\n2025-08-05,7\n", res.stdout)
}

func TestOutputFile(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, v2Body)
	path := filepath.Join(t.TempDir(), "out.csv")

	res := run(t, api, "-o", path, "overall", "chunkwrap", "--months", "1", "--fmt", "csv")
	require.NoError(t, res.err)

	assert.Empty(t, res.stdout)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,total\n2025-07-10,11\n2025-08-05,7\n2025-08-06,3\n", string(data))
	assert.Contains(t, res.stderr, "Wrote "+path)
}

func TestConfigDefaults(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, v2Body)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
api_key = "from-config"

[defaults]
months = 0
granularity = "monthly"
format = "csv"
`), 0o600))

	res := run(t, api, "--config", cfgPath, "overall", "chunkwrap")
	require.NoError(t, res.err)
	assert.Equal(t, "date,total\n2025-06-01,100\n2025-07-01,11\n2025-08-01,10\n", res.stdout)
	assert.Equal(t, "from-config", api.requests()[0].Header.Get(pepy.HeaderAPIKey))

	res = run(t, api, "--config", cfgPath, "overall", "chunkwrap", "--granularity", "yearly")
	require.NoError(t, res.err)
	assert.Equal(t, "date,total\n2025-01-01,121\n", res.stdout)
}

func TestMalformedConfig(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, v2Body)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`months = `), 0o600))

	res := run(t, api, "--config", cfgPath, "overall", "chunkwrap")
	assert.True(t, errors.Is(res.err, errors.ErrCodeInvalidArgument))
	assert.Empty(t, api.requests())
}

func TestCompletion(t *testing.T) {
	res := run(t, nil, "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "pepystats")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.Unauthorized())
	assert.Contains(t, buf.String(), "PEPY_API_KEY")
}

func TestReplay(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "chunkwrap.csv")
	require.NoError(t, os.WriteFile(saved, []byte("date,total\n2025-07-10,11\n2025-08-05,7\n2025-08-06,3\n"), 0o600))

	res := run(t, nil, "replay", saved, "--granularity", "monthly", "--fmt", "csv")
	require.NoError(t, res.err)
	assert.Equal(t, "date,total\n2025-07-01,11\n2025-08-01,10\n", res.stdout)

	res = run(t, nil, "replay", filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(res.err, errors.ErrCodeInvalidArgument))
	assert.Empty(t, res.stdout)
}

func TestReplayPlainSkipsZeroFilledCells(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "versions.csv")
	require.NoError(t, os.WriteFile(saved, []byte("date,1.0,2.0\n2025-08-05,3,0\n2025-08-06,0,4\n"), 0o600))

	res := run(t, nil, "replay", saved, "--fmt", "plain")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date downloads label", strings.TrimSpace(lines[0]))
	assert.Equal(t, "2025-08-05 3 1.0", strings.Join(strings.Fields(lines[1]), " "))
	assert.Equal(t, "2025-08-06 4 2.0", strings.Join(strings.Fields(lines[2]), " "))
}

func TestReplayRejectsForeignCSV(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(saved, []byte("name,value\na,1\n"), 0o600))

	res := run(t, nil, "replay", saved)
	assert.True(t, errors.Is(res.err, errors.ErrCodeDecode))
}
