package models

import (
	"fmt"
	"strings"

	"github.com/ocpkit/auto-catalog/internal/discovery"
)

// ToolItem wraps a discovered Tool for display in the list
// Implements list.Item
type ToolItem struct {
	Tool discovery.Tool
}

func (i ToolItem) Title() string {
	return fmt.Sprintf("%s  %s %s", i.Tool.Name, i.Tool.Method, i.Tool.Path)
}

func (i ToolItem) Description() string {
	return i.Tool.Description
}

// FilterValue feeds the list's live filter: name, path, description and
// tags are all searchable.
func (i ToolItem) FilterValue() string {
	return strings.Join([]string{
		i.Tool.Name,
		i.Tool.Path,
		i.Tool.Description,
		strings.Join(i.Tool.Tags, " "),
	}, " ")
}
