package ui

import (
	"fmt"

	"github.com/bjartek/tether/pkg/backend"
	"github.com/bjartek/tether/pkg/events"
	tea "github.com/charmbracelet/bubbletea"
)

// NewBackendView shows the backend's stdout and stderr interleaved in arrival order, with
// stderr highlighted and lifecycle notices dimmed.
func NewBackendView(maxLines, wrapWidth int) *Pane {
	return newPane("Backend", maxLines, wrapWidth, classifyBackend)
}

func classifyBackend(msg tea.Msg) (paneLine, bool) {
	switch msg := msg.(type) {
	case events.BackendLineMsg:
		if msg.Origin == backend.OriginStderr {
			return paneLine{text: msg.Line, style: lineStderr}, true
		}
		return paneLine{text: msg.Line}, true
	case events.BackendStartedMsg:
		return paneLine{text: fmt.Sprintf("── started pid %d ──", msg.Pid), style: lineNotice}, true
	case events.BackendExitedMsg:
		text := fmt.Sprintf("── pid %d exited ──", msg.Pid)
		if msg.Err != nil {
			text = fmt.Sprintf("── pid %d exited: %v ──", msg.Pid, msg.Err)
		}
		return paneLine{text: text, style: lineNotice}, true
	}
	return paneLine{}, false
}
