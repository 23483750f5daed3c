package discovery

// Package discovery turns OpenAPI/Swagger documents into a normalized,
// searchable catalog of callable operations.

// Fixed fallbacks used when the document's info block is incomplete.
const (
	DefaultAPITitle   = "Unknown API"
	DefaultAPIVersion = "1.0.0"
)

// Parameter location constants, as declared by the source document.
const (
	LocationQuery  = "query"
	LocationPath   = "path"
	LocationHeader = "header"
	LocationCookie = "cookie"
	LocationBody   = "body"
)

// Parameter describes one input of a discovered tool.
type Parameter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Enum        []any  `json:"enum,omitempty"`
	Format      string `json:"format,omitempty"`
}

// Tool represents a discovered API operation. Parameters keep declaration
// order: query/path/header/cookie parameters first, then body fields.
type Tool struct {
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Method         string      `json:"method"`
	Path           string      `json:"path"`
	Parameters     []Parameter `json:"parameters"`
	ResponseSchema any         `json:"response_schema,omitempty"`
	OperationID    string      `json:"operation_id,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
}

// Param returns the parameter with the given name, if present.
func (t Tool) Param(name string) (Parameter, bool) {
	for _, p := range t.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Spec is an immutable snapshot of a parsed API specification. Filtering
// produces a new Spec; cached entries are never mutated.
type Spec struct {
	BaseURL     string         `json:"base_url"`
	Title       string         `json:"title"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Tools       []Tool         `json:"tools"`
	RawSpec     map[string]any `json:"-"`
}

// Tool returns the tool with the given name, if present.
func (s *Spec) Tool(name string) (Tool, bool) {
	for _, t := range s.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
