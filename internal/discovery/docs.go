package discovery

import (
	"fmt"
	"strings"
)

// ToolDocumentation renders a deterministic, human-readable description of
// a tool: name heading, method, path, parameter list with required/optional
// and location annotations, and tags.
func ToolDocumentation(tool Tool) string {
	lines := []string{
		fmt.Sprintf("## %s", tool.Name),
		fmt.Sprintf("**Method:** %s", tool.Method),
		fmt.Sprintf("**Path:** %s", tool.Path),
		fmt.Sprintf("**Description:** %s", tool.Description),
		"",
	}

	if len(tool.Parameters) > 0 {
		lines = append(lines, "### Parameters:")
		for _, param := range tool.Parameters {
			requirement := " (optional)"
			if param.Required {
				requirement = " (required)"
			}
			lines = append(lines, fmt.Sprintf("- **%s**%s [%s]: %s",
				param.Name, requirement, param.Location, param.Description))
		}
		lines = append(lines, "")
	}

	if len(tool.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("**Tags:** %s", strings.Join(tool.Tags, ", ")), "")
	}

	return strings.Join(lines, "\n")
}
