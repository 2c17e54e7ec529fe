package ui

import (
	"strings"

	"github.com/bjartek/tether/pkg/logs"
	tea "github.com/charmbracelet/bubbletea"
)

// NewLogsView shows the host's own log output.
func NewLogsView(maxLines, wrapWidth int) *Pane {
	return newPane("Logs", maxLines, wrapWidth, func(msg tea.Msg) (paneLine, bool) {
		m, ok := msg.(logs.LogLineMsg)
		if !ok || m.Line == "" {
			return paneLine{}, false
		}
		return paneLine{text: strings.TrimRight(m.Line, "\r\n")}, true
	})
}
