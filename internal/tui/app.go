// Package tui implements an interactive browser over a discovered API
// catalog: a filterable tool list with a documentation pane.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ocpkit/auto-catalog/internal/discovery"
	"github.com/ocpkit/auto-catalog/internal/tui/models"
)

// appKeyMap holds key bindings for the browser
type appKeyMap struct {
	open key.Binding
	back key.Binding
	quit key.Binding
}

func newAppKeyMap() *appKeyMap {
	return &appKeyMap{
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "View documentation"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to list"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
	}
}

// AppModel is the root model: a tool list page and a documentation page
type AppModel struct {
	spec *discovery.Spec
	list list.Model
	keys *appKeyMap

	page     string // "list" or "docs"
	selected *discovery.Tool
	width    int
	height   int
}

// NewAppModel creates the browser for a discovered catalog
func NewAppModel(spec *discovery.Spec) AppModel {
	items := make([]list.Item, 0, len(spec.Tools))
	for _, tool := range spec.Tools {
		items = append(items, models.ToolItem{Tool: tool})
	}

	delegate := newItemDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = fmt.Sprintf("%s (%s) — %d tools", spec.Title, spec.Version, len(spec.Tools))
	l.Styles.Title = titleStyle

	return AppModel{
		spec: spec,
		list: l,
		keys: newAppKeyMap(),
		page: "list",
	}
}

// Init initializes the AppModel
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles key and window messages and delegates to the list
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.open) && m.page == "list" && !m.list.SettingFilter():
			if item, ok := m.list.SelectedItem().(models.ToolItem); ok {
				tool := item.Tool
				m.selected = &tool
				m.page = "docs"
			}
			return m, nil

		case key.Matches(msg, m.keys.back) && m.page == "docs":
			m.page = "list"
			m.selected = nil
			return m, nil
		}
	}

	if m.page == "list" {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the current page
func (m AppModel) View() string {
	if m.page == "docs" && m.selected != nil {
		header := docsHeaderStyle.Render(fmt.Sprintf("%s %s", m.selected.Method, m.selected.Path))
		body := docsBodyStyle.Width(max(20, m.width-6)).
			Render(discovery.ToolDocumentation(*m.selected))
		help := helpStyle.Render("esc: back to list • ctrl+c: quit")
		return docStyle.Render(header + "\n" + body + "\n" + help)
	}
	return docStyle.Render(m.list.View())
}
