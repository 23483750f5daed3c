package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// newItemDelegate returns a list.DefaultDelegate with the browser's extra
// help entries.
func newItemDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	open := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "View documentation"),
	)
	help := []key.Binding{open}

	d.ShortHelpFunc = func() []key.Binding {
		return help
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}

	return d
}
