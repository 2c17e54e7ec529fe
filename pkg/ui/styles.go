package ui

import (
	"github.com/bjartek/tether/pkg/tabbedtui"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Solarized Dark
	base01 = lipgloss.Color("#586e75")
	base1  = lipgloss.Color("#93a1a1")

	solarBlue   = lipgloss.Color("#268bd2")
	solarCyan   = lipgloss.Color("#2aa198")
	solarGreen  = lipgloss.Color("#859900")
	solarOrange = lipgloss.Color("#cb4b16")
	solarRed    = lipgloss.Color("#dc322f")

	primaryColor   = solarBlue
	secondaryColor = solarCyan
	accentColor    = base1
	mutedColor     = base01
	successColor   = solarGreen
	errorColor     = solarRed
	warningColor   = solarOrange

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	valueStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	dimStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	stderrStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	filterStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)

// TabStyles returns the tab bar styles in the host theme.
func TabStyles() tabbedtui.Styles {
	return tabbedtui.NewStyles(tabbedtui.Palette{
		Primary: primaryColor,
		Accent:  accentColor,
		Muted:   mutedColor,
	})
}
