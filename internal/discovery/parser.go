package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ocpkit/auto-catalog/internal/logger"
	"go.uber.org/zap"
)

// supportedMethods is the fixed walk order for operations under a path.
// Other keys (options, head, path-level parameters) are ignored.
var supportedMethods = []string{"get", "post", "put", "patch", "delete"}

func methodHasBody(method string) bool {
	return method == "POST" || method == "PUT" || method == "PATCH"
}

// ParseDocument walks a dialect-tagged document and produces a flat Spec.
// One resolver memo is shared across the whole session so schema references
// repeated across operations reuse resolved structures. Operations that
// yield no valid tool name are skipped, never fatal.
func ParseDocument(doc map[string]any, dialect Dialect, baseURLOverride string) *Spec {
	info, _ := doc["info"].(map[string]any)
	spec := &Spec{
		Title:       stringOr(info, "title", DefaultAPITitle),
		Version:     stringOr(info, "version", DefaultAPIVersion),
		Description: stringOr(info, "description", ""),
		BaseURL:     baseURLOverride,
		RawSpec:     doc,
	}
	if spec.BaseURL == "" {
		spec.BaseURL = dialect.baseURL(doc)
	}

	resolver := newRefResolver(doc, nil)
	paths, _ := doc["paths"].(map[string]any)
	seen := make(map[string]bool)

	for _, path := range sortedKeys(paths) {
		pathItem, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		operations := make(map[string]map[string]any, len(pathItem))
		for key, value := range pathItem {
			if op, ok := value.(map[string]any); ok {
				operations[strings.ToLower(key)] = op
			}
		}
		for _, method := range supportedMethods {
			operation, ok := operations[method]
			if !ok {
				continue
			}
			tool, ok := buildTool(path, strings.ToUpper(method), operation, dialect, resolver)
			if !ok {
				continue
			}
			if seen[tool.Name] {
				logger.Warn("Skipping operation: duplicate tool name",
					zap.String("name", tool.Name),
					zap.String("method", tool.Method),
					zap.String("path", tool.Path))
				continue
			}
			seen[tool.Name] = true
			spec.Tools = append(spec.Tools, tool)
		}
	}

	return spec
}

func buildTool(path, method string, operation map[string]any, dialect Dialect, resolver *refResolver) (Tool, bool) {
	operationID, _ := operation["operationId"].(string)
	name := deriveToolName(operationID, method, path)
	if name == "" {
		logger.Warn("Skipping operation: unable to generate valid tool name",
			zap.String("method", method),
			zap.String("path", path))
		return Tool{}, false
	}

	description := stringOr(operation, "summary", "")
	if description == "" {
		description = stringOr(operation, "description", "")
	}
	if description == "" {
		description = fmt.Sprintf("%s %s", method, path)
	}

	tool := Tool{
		Name:        name,
		Description: description,
		Method:      method,
		Path:        path,
		OperationID: operationID,
		Parameters:  parseParameters(operation, dialect),
		Tags:        parseTags(operation),
	}

	if methodHasBody(method) {
		if schema, ok := dialect.bodySchema(operation); ok {
			tool.Parameters = append(tool.Parameters, parseBodyFields(resolver.Resolve(schema))...)
		}
	}

	if schema, ok := pickResponseSchema(operation, dialect); ok {
		tool.ResponseSchema = resolver.Resolve(schema)
	}

	return tool, true
}

// deriveToolName prefers the declared operationId; otherwise falls back to
// the method plus the path with separators collapsed. Returns "" when
// neither yields a valid name.
func deriveToolName(operationID, method, path string) string {
	if operationID != "" {
		if name := NormalizeName(operationID); IsValidName(name) {
			return name
		}
	}
	clean := strings.NewReplacer("/", "_", "{", "", "}", "").Replace(path)
	if name := NormalizeName(strings.ToLower(method) + clean); IsValidName(name) {
		return name
	}
	return ""
}

// parseParameters reads the operation's declared query/path/header/cookie
// parameters in declaration order. Unnamed entries are dropped; Swagger 2.0
// body entries are handled by parseBodyFields instead.
func parseParameters(operation map[string]any, dialect Dialect) []Parameter {
	raw, ok := operation["parameters"].([]any)
	if !ok {
		return nil
	}
	var params []Parameter
	for _, entry := range raw {
		param, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := param["name"].(string)
		if name == "" {
			continue
		}
		location := stringOr(param, "in", LocationQuery)
		if location == LocationBody {
			continue
		}
		required, _ := param["required"].(bool)
		descriptor := Parameter{
			Name:        name,
			Description: stringOr(param, "description", ""),
			Required:    required,
			Location:    location,
			Type:        "string",
		}
		applySchema(&descriptor, dialect.parameterSchema(param))
		params = append(params, descriptor)
	}
	return params
}

// parseBodyFields flattens a resolved object schema into body parameters.
// Property names are walked in sorted order so output is deterministic.
func parseBodyFields(schema any) []Parameter {
	obj, ok := schema.(map[string]any)
	if !ok {
		return nil
	}
	properties, ok := obj["properties"].(map[string]any)
	if !ok {
		return nil
	}
	if t, ok := obj["type"].(string); ok && t != "object" {
		return nil
	}

	requiredSet := make(map[string]bool)
	if required, ok := obj["required"].([]any); ok {
		for _, field := range required {
			if name, ok := field.(string); ok {
				requiredSet[name] = true
			}
		}
	}

	var fields []Parameter
	for _, name := range sortedKeys(properties) {
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		descriptor := Parameter{
			Name:        name,
			Description: stringOr(prop, "description", ""),
			Required:    requiredSet[name],
			Location:    LocationBody,
			Type:        "string",
		}
		applySchema(&descriptor, prop)
		fields = append(fields, descriptor)
	}
	return fields
}

// pickResponseSchema selects the lowest 2xx response that declares a JSON
// schema for the session's dialect.
func pickResponseSchema(operation map[string]any, dialect Dialect) (any, bool) {
	responses, ok := operation["responses"].(map[string]any)
	if !ok {
		return nil, false
	}
	for _, status := range sortedKeys(responses) {
		if !strings.HasPrefix(status, "2") {
			continue
		}
		response, ok := responses[status].(map[string]any)
		if !ok {
			continue
		}
		if schema, ok := dialect.responseSchema(response); ok {
			return schema, true
		}
	}
	return nil, false
}

func parseTags(operation map[string]any) []string {
	raw, ok := operation["tags"].([]any)
	if !ok {
		return nil
	}
	var tags []string
	for _, t := range raw {
		if tag, ok := t.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func applySchema(descriptor *Parameter, schema map[string]any) {
	if schema == nil {
		return
	}
	if t, ok := schema["type"].(string); ok && t != "" {
		descriptor.Type = t
	}
	if enum, ok := schema["enum"].([]any); ok {
		descriptor.Enum = enum
	}
	if format, ok := schema["format"].(string); ok {
		descriptor.Format = format
	}
}

func stringOr(obj map[string]any, key, fallback string) string {
	if obj != nil {
		if value, ok := obj[key].(string); ok && value != "" {
			return value
		}
	}
	return fallback
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
