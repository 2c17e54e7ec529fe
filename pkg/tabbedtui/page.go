package tabbedtui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is a single tab of a Model.
type Page interface {
	tea.Model

	// Name is shown in the tab bar.
	Name() string

	// KeyMap returns the page's own bindings for the help footer.
	KeyMap() help.KeyMap

	// FooterView is rendered above the help footer. Empty means no footer.
	FooterView() string

	// IsCapturingInput reports whether the page wants every key, e.g. while a
	// filter is being typed. Global bindings are skipped while it returns true.
	IsCapturingInput() bool
}
