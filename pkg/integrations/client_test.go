package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pepystats/pkg/errors"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"X-API-Key": "secret"}
	client := NewClient(time.Second, headers)

	require.NotNil(t, client)
	require.NotNil(t, client.http)
	assert.Equal(t, time.Second, client.http.Timeout)
	assert.Equal(t, "secret", client.headers["X-API-Key"])
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(0, nil)

	assert.Equal(t, DefaultTimeout, client.http.Timeout)
	assert.Nil(t, client.headers)
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	var gotRequestID, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotRequestID = r.Header.Get(HeaderRequestID)
		gotAgent = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(time.Second, nil)

	var resp response
	require.NoError(t, client.Get(context.Background(), server.URL, &resp))
	assert.Equal(t, "hello", resp.Message)
	assert.Len(t, gotRequestID, 36)
	assert.Contains(t, gotAgent, "pepystats/")
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(time.Second, map[string]string{"X-Override": "default"})

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "overridden", received)
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		code   errors.Code
	}{
		{http.StatusUnauthorized, errors.ErrCodeUnauthorized},
		{http.StatusForbidden, errors.ErrCodeHTTP},
		{http.StatusNotFound, errors.ErrCodeNotFound},
		{http.StatusTooManyRequests, errors.ErrCodeHTTP},
		{http.StatusInternalServerError, errors.ErrCodeHTTP},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(time.Second, nil)
			var resp map[string]any
			err := client.Get(context.Background(), server.URL, &resp)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
			assert.Equal(t, tt.status, errors.Status(err))
		})
	}
}

func TestClientDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(time.Second, nil)
	var resp map[string]any
	err := client.Get(context.Background(), server.URL, &resp)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDecode), "got %v", err)
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(50*time.Millisecond, nil)
	var resp map[string]any
	err := client.Get(context.Background(), server.URL, &resp)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeTimeout), "got %v", err)
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(time.Second, nil)
	var resp map[string]any
	err := client.Get(context.Background(), url, &resp)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNetwork), "got %v", err)
}
