// Package validator checks the structural shape of fetched spec documents
// before the discovery engine commits to parsing them.
package validator

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi3"
)

// StructureValidator round-trips the raw document through kin-openapi's
// typed model for the matching dialect family. This catches shape errors
// (paths not an object, parameters not an array) while staying lenient
// about unresolved refs, which the engine degrades to placeholders itself.
type StructureValidator struct{}

// NewStructureValidator creates a new StructureValidator instance
func NewStructureValidator() *StructureValidator {
	return &StructureValidator{}
}

// Validate returns an error when the document cannot be a well-formed
// OpenAPI/Swagger structure. Version support itself is not checked here;
// that is dialect detection's job.
func (v *StructureValidator) Validate(doc map[string]any) error {
	if doc == nil {
		return fmt.Errorf("document is empty")
	}
	if raw, ok := doc["paths"]; ok {
		if _, ok := raw.(map[string]any); !ok {
			return fmt.Errorf("'paths' must be an object")
		}
	}
	if raw, ok := doc["info"]; ok {
		if _, ok := raw.(map[string]any); !ok {
			return fmt.Errorf("'info' must be an object")
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("document is not serializable: %w", err)
	}

	if _, ok := doc["swagger"]; ok {
		var swagger2Doc openapi2.T
		if err := json.Unmarshal(data, &swagger2Doc); err != nil {
			return fmt.Errorf("document does not match the Swagger 2.0 structure: %w", err)
		}
		return nil
	}
	if _, ok := doc["openapi"]; ok {
		var openapi3Doc openapi3.T
		if err := json.Unmarshal(data, &openapi3Doc); err != nil {
			return fmt.Errorf("document does not match the OpenAPI 3.x structure: %w", err)
		}
	}
	return nil
}
