// Package fetcher retrieves OpenAPI/Swagger documents over HTTP. It is the
// only component in the module that touches the network.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ocpkit/auto-catalog/internal/config"
	"github.com/ocpkit/auto-catalog/internal/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const defaultTimeout = 30 * time.Second

// HTTPFetcher fetches spec documents and decodes JSON or YAML bodies into
// a generic document map.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a new HTTPFetcher honoring the configured fetch
// timeout.
func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	timeout := defaultTimeout
	if cfg != nil && cfg.Discovery.FetchTimeout > 0 {
		timeout = cfg.Discovery.FetchTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetTimeout sets the timeout for the HTTP client
func (f *HTTPFetcher) SetTimeout(timeout time.Duration) {
	f.client.Timeout = timeout
}

// Fetch retrieves the document at url. It fails on network errors, non-2xx
// statuses, and bodies that decode as neither JSON nor YAML.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build spec request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spec from %s: %w", url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close spec response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching spec from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec body: %w", err)
	}

	return decodeDocument(body)
}

// decodeDocument tries JSON first, then YAML. yaml.v3 decodes string-keyed
// mappings into map[string]any, the shape the engine operates on.
func decodeDocument(body []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("spec body is neither valid JSON nor YAML: %w", err)
	}
	return doc, nil
}
