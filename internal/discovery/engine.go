package discovery

import (
	"context"
	"strings"
	"sync"

	"github.com/ocpkit/auto-catalog/internal/logger"
	"go.uber.org/zap"
)

// Fetcher retrieves a spec document. Implementations fail on network
// errors, non-2xx statuses and undecodable bodies.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (map[string]any, error)
}

// Validator checks the structural shape of a fetched document before the
// engine commits to parsing it.
type Validator interface {
	Validate(doc map[string]any) error
}

// Engine is the discovery façade: fetch, validate, detect, parse, cache,
// filter. Specs are cached per raw URL for the engine's lifetime; only
// ClearCache evicts them.
type Engine struct {
	fetcher   Fetcher
	validator Validator

	mu    sync.Mutex
	cache map[string]*Spec
}

// NewEngine creates a discovery engine with its own empty spec cache.
func NewEngine(fetcher Fetcher, validator Validator) *Engine {
	return &Engine{
		fetcher:   fetcher,
		validator: validator,
		cache:     make(map[string]*Spec),
	}
}

type discoverOptions struct {
	baseURL          string
	includeResources []string
	pathPrefix       string
}

// DiscoverOption customizes a single DiscoverAPI call.
type DiscoverOption func(*discoverOptions)

// WithBaseURL overrides the base URL extracted from the document.
func WithBaseURL(baseURL string) DiscoverOption {
	return func(o *discoverOptions) { o.baseURL = baseURL }
}

// WithIncludeResources restricts the returned catalog to tools whose first
// path segment matches one of the given resource names.
func WithIncludeResources(resources ...string) DiscoverOption {
	return func(o *discoverOptions) { o.includeResources = resources }
}

// WithPathPrefix strips a shared prefix from tool paths before resource
// matching (e.g. "/api/v3").
func WithPathPrefix(prefix string) DiscoverOption {
	return func(o *discoverOptions) { o.pathPrefix = prefix }
}

// DiscoverAPI discovers the catalog for specURL, reusing the cached Spec
// when the URL was seen before. Resource filtering derives a new Spec; the
// cache keeps the unfiltered one.
func (e *Engine) DiscoverAPI(ctx context.Context, specURL string, opts ...DiscoverOption) (*Spec, error) {
	var o discoverOptions
	for _, opt := range opts {
		opt(&o)
	}

	e.mu.Lock()
	spec, cached := e.cache[specURL]
	e.mu.Unlock()

	if !cached {
		doc, err := e.fetcher.Fetch(ctx, specURL)
		if err != nil {
			return nil, NewError(KindFetch, specURL, err)
		}
		if err := e.validator.Validate(doc); err != nil {
			return nil, NewError(KindInvalidDocument, specURL, err)
		}
		dialect, err := DetectDialect(doc)
		if err != nil {
			return nil, NewError(KindInvalidDocument, specURL, err)
		}
		spec = ParseDocument(doc, dialect, o.baseURL)
		logger.Info("Discovered API",
			zap.String("url", specURL),
			zap.String("dialect", dialect.String()),
			zap.Int("tools", len(spec.Tools)))

		e.mu.Lock()
		e.cache[specURL] = spec
		e.mu.Unlock()
	}

	if len(o.includeResources) > 0 {
		return FilterByResources(spec, o.includeResources, o.pathPrefix), nil
	}
	return spec, nil
}

// ClearCache empties the spec cache. Previously returned Specs are
// immutable snapshots and remain valid.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	e.cache = make(map[string]*Spec)
	e.mu.Unlock()
}

// FilterByResources derives a new Spec keeping only tools whose first path
// segment (after stripping pathPrefix and parameter placeholders)
// case-insensitively equals one of the resource names. This is a
// first-segment exact match: "repos" keeps /repos/{owner} but neither
// /user/repos nor /repositories.
func FilterByResources(spec *Spec, includeResources []string, pathPrefix string) *Spec {
	derived := &Spec{
		BaseURL:     spec.BaseURL,
		Title:       spec.Title,
		Version:     spec.Version,
		Description: spec.Description,
		RawSpec:     spec.RawSpec,
	}
	if len(includeResources) == 0 {
		derived.Tools = append(derived.Tools, spec.Tools...)
		return derived
	}

	for _, tool := range spec.Tools {
		segments := resourceSegments(tool.Path, pathPrefix)
		if len(segments) == 0 {
			continue
		}
		for _, resource := range includeResources {
			if strings.EqualFold(segments[0], resource) {
				derived.Tools = append(derived.Tools, tool)
				break
			}
		}
	}
	return derived
}

func resourceSegments(path, pathPrefix string) []string {
	if pathPrefix != "" && len(path) >= len(pathPrefix) &&
		strings.EqualFold(path[:len(pathPrefix)], pathPrefix) {
		path = path[len(pathPrefix):]
	}
	var segments []string
	for _, segment := range strings.Split(strings.ReplaceAll(path, ".", "/"), "/") {
		if segment == "" || strings.HasPrefix(segment, "{") {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// GetToolsByTag returns the tools carrying the exact tag.
func GetToolsByTag(spec *Spec, tag string) []Tool {
	var matches []Tool
	for _, tool := range spec.Tools {
		for _, t := range tool.Tags {
			if t == tag {
				matches = append(matches, tool)
				break
			}
		}
	}
	return matches
}

// SearchTools returns tools whose name or description contains the query,
// case-insensitively, preserving catalog order.
func SearchTools(spec *Spec, query string) []Tool {
	query = strings.ToLower(query)
	var matches []Tool
	for _, tool := range spec.Tools {
		if strings.Contains(strings.ToLower(tool.Name), query) ||
			strings.Contains(strings.ToLower(tool.Description), query) {
			matches = append(matches, tool)
		}
	}
	return matches
}
