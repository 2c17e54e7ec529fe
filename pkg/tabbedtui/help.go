package tabbedtui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// helpBar is the full key reference shown under the active page. It takes no rows until
// toggled on.
type helpBar struct {
	model help.Model
	shown bool
}

func newHelpBar(styles Styles) helpBar {
	m := help.New()
	m.ShowAll = true
	m.Styles.FullKey = styles.HelpKey
	m.Styles.FullDesc = styles.HelpDesc
	m.Styles.FullSeparator = styles.HelpSeparator
	return helpBar{model: m}
}

func (b helpBar) render(keys help.KeyMap, width int) string {
	if !b.shown {
		return ""
	}
	b.model.Width = width
	return b.model.View(keys)
}

// joinedKeys lists the container bindings first, then those of the active page.
type joinedKeys []help.KeyMap

func (j joinedKeys) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, km := range j {
		if km != nil {
			out = append(out, km.ShortHelp()...)
		}
	}
	return out
}

func (j joinedKeys) FullHelp() [][]key.Binding {
	var out [][]key.Binding
	for _, km := range j {
		if km != nil {
			out = append(out, km.FullHelp()...)
		}
	}
	return out
}
