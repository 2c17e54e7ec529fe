// Package ui is the host window: a tab per backend output, host logs and process status.
package ui

import (
	"github.com/bjartek/tether/pkg/config"
	"github.com/bjartek/tether/pkg/tabbedtui"
)

// NewModel builds the host window. Quitting it with q or ctrl+c is the host's signal to
// shut down.
func NewModel(cfg config.UIConfig) tabbedtui.Model {
	pages := []tabbedtui.Page{
		NewBackendView(cfg.MaxLogLines, cfg.WrapWidth),
		NewLogsView(cfg.MaxLogLines, cfg.WrapWidth),
		NewStatusView(),
	}
	return tabbedtui.NewModel(pages,
		tabbedtui.WithStyles(TabStyles()),
		tabbedtui.WithTitle("tether"),
	)
}
