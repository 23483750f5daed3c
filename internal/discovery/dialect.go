package discovery

import (
	"fmt"
	"strings"
)

// Dialect tags the spec version for a parse session. Every version-specific
// extraction consults this single value rather than re-probing the document.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectSwagger2
	DialectOpenAPI30
	DialectOpenAPI31
	DialectOpenAPI32
)

func (d Dialect) String() string {
	switch d {
	case DialectSwagger2:
		return "swagger_2"
	case DialectOpenAPI30:
		return "openapi_3.0"
	case DialectOpenAPI31:
		return "openapi_3.1"
	case DialectOpenAPI32:
		return "openapi_3.2"
	default:
		return "unknown"
	}
}

// DetectDialect inspects the document's version field. Detection failure is
// fatal to discovery: downstream extraction is dialect-dependent and there
// is no safe default.
func DetectDialect(doc map[string]any) (Dialect, error) {
	if raw, ok := doc["swagger"]; ok {
		version, ok := raw.(string)
		if !ok || !strings.HasPrefix(version, "2.") {
			return DialectUnknown, fmt.Errorf("unsupported Swagger version: %v", raw)
		}
		return DialectSwagger2, nil
	}
	if raw, ok := doc["openapi"]; ok {
		version, ok := raw.(string)
		if !ok {
			return DialectUnknown, fmt.Errorf("unsupported OpenAPI version: %v", raw)
		}
		switch {
		case strings.HasPrefix(version, "3.0"):
			return DialectOpenAPI30, nil
		case strings.HasPrefix(version, "3.1"):
			return DialectOpenAPI31, nil
		case strings.HasPrefix(version, "3.2"):
			return DialectOpenAPI32, nil
		default:
			return DialectUnknown, fmt.Errorf("unsupported OpenAPI version: %s", version)
		}
	}
	return DialectUnknown, fmt.Errorf("document is missing 'swagger' or 'openapi' version field")
}

// baseURL extracts the API base URL for the dialect. Swagger 2.0 composes
// {scheme}://{host}{basePath} from the first scheme (https when absent);
// OpenAPI 3.x takes the first server URL. Absent host/servers yield "".
func (d Dialect) baseURL(doc map[string]any) string {
	if d == DialectSwagger2 {
		host, _ := doc["host"].(string)
		if host == "" {
			return ""
		}
		scheme := "https"
		if schemes, ok := doc["schemes"].([]any); ok && len(schemes) > 0 {
			if s, ok := schemes[0].(string); ok && s != "" {
				scheme = s
			}
		}
		basePath, _ := doc["basePath"].(string)
		return fmt.Sprintf("%s://%s%s", scheme, host, basePath)
	}

	servers, ok := doc["servers"].([]any)
	if !ok || len(servers) == 0 {
		return ""
	}
	first, ok := servers[0].(map[string]any)
	if !ok {
		return ""
	}
	url, _ := first["url"].(string)
	return url
}

// bodySchema extracts the JSON request-body schema for an operation.
// Swagger 2.0 carries it as a parameter entry with in == "body"; OpenAPI
// 3.x under requestBody.content["application/json"]. Other media types are
// ignored.
func (d Dialect) bodySchema(operation map[string]any) (any, bool) {
	if d == DialectSwagger2 {
		params, ok := operation["parameters"].([]any)
		if !ok {
			return nil, false
		}
		for _, raw := range params {
			param, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if in, _ := param["in"].(string); in == LocationBody {
				if schema, ok := param["schema"]; ok {
					return schema, true
				}
			}
		}
		return nil, false
	}

	body, ok := operation["requestBody"].(map[string]any)
	if !ok {
		return nil, false
	}
	return jsonContentSchema(body)
}

// responseSchema extracts the declared schema from one response object.
func (d Dialect) responseSchema(response map[string]any) (any, bool) {
	if d == DialectSwagger2 {
		schema, ok := response["schema"]
		return schema, ok
	}
	return jsonContentSchema(response)
}

// parameterSchema returns the schema object describing a non-body
// parameter. Swagger 2.0 simple parameters carry type/enum/format on the
// parameter itself; a "schema" key wins in both dialects when present.
func (d Dialect) parameterSchema(param map[string]any) map[string]any {
	if schema, ok := param["schema"].(map[string]any); ok {
		return schema
	}
	if d != DialectSwagger2 {
		return nil
	}
	schema := make(map[string]any)
	for _, key := range []string{"type", "enum", "format"} {
		if v, ok := param[key]; ok {
			schema[key] = v
		}
	}
	if len(schema) == 0 {
		return nil
	}
	return schema
}

func jsonContentSchema(holder map[string]any) (any, bool) {
	content, ok := holder["content"].(map[string]any)
	if !ok {
		return nil, false
	}
	media, ok := content["application/json"].(map[string]any)
	if !ok {
		return nil, false
	}
	schema, ok := media["schema"]
	return schema, ok
}
