package tabbedtui

import "github.com/charmbracelet/lipgloss"

// Styles holds the styling of the tab bar and help footer.
type Styles struct {
	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	TabGap        lipgloss.Style
	Help          lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// Palette names the three colors the container uses.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

// DefaultPalette is Solarized Dark.
var DefaultPalette = Palette{
	Primary: lipgloss.Color("#268bd2"),
	Accent:  lipgloss.Color("#93a1a1"),
	Muted:   lipgloss.Color("#586e75"),
}

var (
	activeTabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      " ",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┘",
		BottomRight: "└",
	}

	tabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┴",
		BottomRight: "┴",
	}
)

// NewStyles builds Styles from the first palette given, or from DefaultPalette.
func NewStyles(p ...Palette) Styles {
	palette := DefaultPalette
	if len(p) > 0 {
		palette = p[0]
	}

	return Styles{
		Tab: lipgloss.NewStyle().
			Border(tabBorder, true).
			BorderForeground(palette.Muted).
			Padding(0, 1).
			Foreground(palette.Muted),
		ActiveTab: lipgloss.NewStyle().
			Border(activeTabBorder, true).
			BorderForeground(palette.Primary).
			Padding(0, 1).
			Foreground(palette.Primary).
			Bold(true),
		TabGap: lipgloss.NewStyle().
			BorderBottom(true).
			BorderForeground(palette.Muted),
		Help: lipgloss.NewStyle().
			Foreground(palette.Muted).
			Padding(0, 2),
		HelpKey: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(palette.Accent),
		HelpSeparator: lipgloss.NewStyle().
			Foreground(palette.Muted),
	}
}
