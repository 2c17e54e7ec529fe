package ui

import "github.com/charmbracelet/bubbles/key"

// PaneKeyMap holds the bindings of a scrolling line pane.
type PaneKeyMap struct {
	LineUp   key.Binding
	LineDown key.Binding
	GotoTop  key.Binding
	GotoEnd  key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Filter   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

// DefaultPaneKeyMap returns vim-style bindings plus / for filtering.
func DefaultPaneKeyMap() PaneKeyMap {
	return PaneKeyMap{
		LineUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		LineDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "go to top"),
		),
		GotoEnd: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u/pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d/pgdn", "page down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear filter"),
		),
	}
}

func (k PaneKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.LineUp, k.LineDown}
}

func (k PaneKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Filter, k.Confirm, k.Cancel},
		{k.LineUp, k.LineDown, k.PageUp, k.PageDown},
		{k.GotoTop, k.GotoEnd},
	}
}

// noKeys is the help.KeyMap of a page without bindings of its own.
type noKeys struct{}

func (noKeys) ShortHelp() []key.Binding  { return nil }
func (noKeys) FullHelp() [][]key.Binding { return nil }
