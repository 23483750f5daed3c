package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocpkit/auto-catalog/internal/config"
)

func specServer(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchJSON(t *testing.T) {
	server := specServer(t, http.StatusOK, "application/json",
		`{"openapi":"3.0.0","info":{"title":"T","version":"1"}}`)

	f := NewHTTPFetcher(nil)
	doc, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "3.0.0", doc["openapi"])
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "T", info["title"])
}

func TestFetchYAML(t *testing.T) {
	server := specServer(t, http.StatusOK, "application/yaml",
		"openapi: 3.0.0\ninfo:\n  title: T\n  version: \"1\"\n")

	f := NewHTTPFetcher(nil)
	doc, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "3.0.0", doc["openapi"])
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "T", info["title"])
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := specServer(t, http.StatusNotFound, "text/plain", "not here")

	f := NewHTTPFetcher(nil)
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorContains(t, err, "404")
}

func TestFetchUndecodableBody(t *testing.T) {
	server := specServer(t, http.StatusOK, "text/html", "<html>{nope</html>")

	f := NewHTTPFetcher(nil)
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorContains(t, err, "neither valid JSON nor YAML")
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	f := NewHTTPFetcher(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, server.URL)
	require.Error(t, err)
}

func TestNewHTTPFetcherTimeout(t *testing.T) {
	cfg := &config.Config{}
	cfg.Discovery.FetchTimeout = 5 * time.Second

	f := NewHTTPFetcher(cfg)
	assert.Equal(t, 5*time.Second, f.client.Timeout)

	f.SetTimeout(time.Second)
	assert.Equal(t, time.Second, f.client.Timeout)
}
