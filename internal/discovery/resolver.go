package discovery

import (
	"slices"
	"strings"
)

// refResolver expands internal "$ref" pointers within a single document.
// The memo map is shared across one parse session so repeated references to
// the same definition resolve once and share structure. The resolution
// stack is threaded explicitly through each call, keeping the resolver
// reentrant.
type refResolver struct {
	root map[string]any
	memo map[string]any
}

func newRefResolver(root map[string]any, memo map[string]any) *refResolver {
	if memo == nil {
		memo = make(map[string]any)
	}
	return &refResolver{root: root, memo: memo}
}

func circularPlaceholder() map[string]any {
	return map[string]any{"type": "object", "description": "Circular reference"}
}

func unresolvedPlaceholder() map[string]any {
	return map[string]any{"type": "object", "description": "Unresolved reference"}
}

// Resolve returns node with all internal refs expanded. Refs to documents
// outside "#/" are returned unchanged; dangling internal refs degrade to a
// placeholder fragment so the rest of the document still parses.
func (r *refResolver) Resolve(node any) any {
	return r.resolve(node, nil, false)
}

func (r *refResolver) resolve(node any, stack []string, insidePolymorphic bool) any {
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := refPath(v); ok {
			return r.resolveRef(v, ref, stack, insidePolymorphic)
		}
		return r.resolveObject(v, stack)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = r.resolve(item, stack, false)
		}
		return out
	default:
		return node
	}
}

func (r *refResolver) resolveRef(node map[string]any, ref string, stack []string, insidePolymorphic bool) any {
	if !strings.HasPrefix(ref, "#/") {
		// External document refs are out of scope for resolution.
		return node
	}

	// Inside anyOf/oneOf/allOf an object-typed target keeps its ref so
	// variant identity survives for downstream consumers.
	if insidePolymorphic {
		if target, ok := r.lookup(ref); ok && isObjectSchema(target) {
			return node
		}
	}

	if resolved, ok := r.memo[ref]; ok {
		return resolved
	}
	if slices.Contains(stack, ref) {
		return circularPlaceholder()
	}
	target, ok := r.lookup(ref)
	if !ok {
		return unresolvedPlaceholder()
	}

	resolved := r.resolve(target, append(stack, ref), false)
	r.memo[ref] = resolved
	return resolved
}

func (r *refResolver) resolveObject(node map[string]any, stack []string) map[string]any {
	polymorphic := hasCombinator(node)
	out := make(map[string]any, len(node))
	for key, value := range node {
		if polymorphic && isCombinatorKey(key) {
			if variants, ok := value.([]any); ok {
				resolved := make([]any, len(variants))
				for i, variant := range variants {
					resolved[i] = r.resolve(variant, stack, true)
				}
				out[key] = resolved
				continue
			}
		}
		out[key] = r.resolve(value, stack, false)
	}
	return out
}

// lookup walks the root document segment by segment ("#/a/b/c" visits
// root["a"]["b"]["c"]). Any missing segment fails the lookup.
func (r *refResolver) lookup(ref string) (any, bool) {
	var current any = r.root
	for _, segment := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// refPath reports whether node is a pure reference: an object whose only
// key is "$ref" with a string value.
func refPath(node map[string]any) (string, bool) {
	if len(node) != 1 {
		return "", false
	}
	ref, ok := node["$ref"].(string)
	return ref, ok
}

func isCombinatorKey(key string) bool {
	return key == "anyOf" || key == "oneOf" || key == "allOf"
}

func hasCombinator(node map[string]any) bool {
	for key := range node {
		if isCombinatorKey(key) {
			return true
		}
	}
	return false
}

func isObjectSchema(target any) bool {
	obj, ok := target.(map[string]any)
	if !ok {
		return false
	}
	if t, ok := obj["type"].(string); ok && t == "object" {
		return true
	}
	_, ok = obj["properties"]
	return ok
}
