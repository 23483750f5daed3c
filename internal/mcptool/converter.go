// Package mcptool renders discovered catalog tools as MCP tool
// definitions. The definitions describe endpoints only; nothing here calls
// the underlying API.
package mcptool

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ocpkit/auto-catalog/internal/discovery"
)

// ConvertSpec converts every tool in the catalog.
func ConvertSpec(spec *discovery.Spec) []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(spec.Tools))
	for _, tool := range spec.Tools {
		tools = append(tools, ConvertTool(tool))
	}
	return tools
}

// ConvertTool builds an mcp.Tool whose input schema mirrors the discovered
// parameters, body fields included.
func ConvertTool(tool discovery.Tool) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf("%s %s \n %s", tool.Method, tool.Path, tool.Description)),
	}
	for _, param := range tool.Parameters {
		opts = append(opts, parameterOption(param))
	}
	return mcp.NewTool(tool.Name, opts...)
}

func parameterOption(param discovery.Parameter) mcp.ToolOption {
	baseOpts := []mcp.PropertyOption{
		mcp.Description(parameterDescription(param)),
	}
	if param.Required {
		baseOpts = append(baseOpts, mcp.Required())
	}

	switch param.Type {
	case "integer", "number":
		return mcp.WithNumber(param.Name, baseOpts...)
	case "boolean":
		return mcp.WithBoolean(param.Name, baseOpts...)
	case "array":
		return mcp.WithArray(param.Name, baseOpts...)
	case "object":
		return mcp.WithObject(param.Name, baseOpts...)
	default:
		if enum := stringEnum(param.Enum); len(enum) > 0 {
			baseOpts = append(baseOpts, mcp.Enum(enum...))
		}
		return mcp.WithString(param.Name, baseOpts...)
	}
}

func parameterDescription(param discovery.Parameter) string {
	if param.Description != "" {
		return param.Description
	}
	switch param.Location {
	case discovery.LocationPath:
		return fmt.Sprintf("Path parameter: %s", param.Name)
	case discovery.LocationBody:
		return fmt.Sprintf("Body field: %s", param.Name)
	default:
		return fmt.Sprintf("%s parameter: %s", capitalizeLocation(param.Location), param.Name)
	}
}

func capitalizeLocation(location string) string {
	switch location {
	case discovery.LocationQuery:
		return "Query"
	case discovery.LocationHeader:
		return "Header"
	case discovery.LocationCookie:
		return "Cookie"
	default:
		return location
	}
}

func stringEnum(values []any) []string {
	var enum []string
	for _, value := range values {
		if s, ok := value.(string); ok {
			enum = append(enum, s)
		}
	}
	return enum
}
