// Package tabbedtui is a small tab container for Bubble Tea pages.
package tabbedtui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap holds the bindings handled by the container itself.
type KeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Jump    []key.Binding
	Quit    key.Binding
	Help    key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	out := append([]key.Binding{k.NextTab, k.PrevTab}, k.Jump...)
	return append(out, k.Quit, k.Help)
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		append([]key.Binding{k.NextTab, k.PrevTab}, k.Jump...),
		{k.Quit, k.Help},
	}
}

func defaultKeyMap(pages []Page) KeyMap {
	jump := make([]key.Binding, len(pages))
	for i, page := range pages {
		n := strconv.Itoa(i + 1)
		jump[i] = key.NewBinding(key.WithKeys(n), key.WithHelp(n, "tab: "+page.Name()))
	}
	return KeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→/l", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←/h", "previous tab")),
		Jump:    jump,
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	}
}

// Model shows one page at a time under a tab bar.
type Model struct {
	pages  []Page
	active int
	title  string
	keys   KeyMap
	styles Styles
	help   helpBar

	width, height int
	ready         bool
}

// Option configures a Model.
type Option func(*Model)

// WithStyles sets the styles for the tab bar and help footer.
func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
	}
}

// WithTitle shows title at the right end of the tab bar.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// NewModel creates a tabbed model over pages. Number keys 1..n jump to a page.
func NewModel(pages []Page, opts ...Option) Model {
	m := Model{
		pages:  pages,
		keys:   defaultKeyMap(pages),
		styles: NewStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help = newHelpBar(m.styles)
	return m
}

// Active returns the index of the visible page.
func (m Model) Active() int {
	return m.active
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.pages))
	for _, page := range m.pages {
		cmds = append(cmds, page.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resizePages()
		return m, nil
	}

	// Lifecycle and data messages go to every page, visible or not.
	var cmds []tea.Cmd
	for i := range m.pages {
		if cmd := m.send(i, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c quits even while a page is capturing input.
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.pages[m.active].IsCapturingInput() {
		return m.send(m.active, msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.active = (m.active + 1) % len(m.pages)
	case key.Matches(msg, m.keys.PrevTab):
		m.active = (m.active + len(m.pages) - 1) % len(m.pages)
	case key.Matches(msg, m.keys.Help):
		m.help.shown = !m.help.shown
		m.resizePages()
	default:
		for i, jump := range m.keys.Jump {
			if key.Matches(msg, jump) {
				m.active = i
				return nil
			}
		}
		return m.send(m.active, msg)
	}
	return nil
}

func (m *Model) send(i int, msg tea.Msg) tea.Cmd {
	updated, cmd := m.pages[i].Update(msg)
	m.pages[i] = updated.(Page)
	return cmd
}

// resizePages gives every page the rows left between the tab bar and the help.
func (m *Model) resizePages() {
	rows := m.height - lipgloss.Height(m.tabBar()) - heightOf(m.help.render(m.helpKeys(), m.width))
	size := tea.WindowSizeMsg{Width: m.width, Height: max(1, rows)}
	for i := range m.pages {
		m.send(i, size)
	}
}

func (m Model) helpKeys() help.KeyMap {
	return joinedKeys{m.keys, m.pages[m.active].KeyMap()}
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	bar := m.tabBar()
	pageFooter := m.pages[m.active].FooterView()
	helpFooter := m.help.render(m.helpKeys(), m.width)

	body := m.pages[m.active].View()
	if rows := m.height - lipgloss.Height(bar) - heightOf(pageFooter) - heightOf(helpFooter); rows > 0 {
		body = lipgloss.NewStyle().Height(rows).MaxHeight(rows).Render(body)
	}

	parts := []string{bar, body}
	for _, footer := range []string{pageFooter, helpFooter} {
		if footer != "" {
			parts = append(parts, footer)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Top, parts...)
}

func heightOf(s string) int {
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}

func (m Model) tabBar() string {
	tabs := make([]string, len(m.pages))
	for i, page := range m.pages {
		style := m.styles.Tab
		if i == m.active {
			style = m.styles.ActiveTab
		}
		tabs[i] = style.Render(page.Name() + " (" + strconv.Itoa(i+1) + ")")
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	hint := "? help"
	if m.title != "" {
		hint = m.title + " • " + hint
	}
	fill := max(0, m.width-lipgloss.Width(row)-lipgloss.Width(hint)-4)
	row = lipgloss.JoinHorizontal(lipgloss.Bottom, row, m.styles.TabGap.Render(strings.Repeat(" ", fill)))

	return row + m.styles.Help.Render(hint)
}
