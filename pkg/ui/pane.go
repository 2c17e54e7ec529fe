package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type paneLine struct {
	text  string
	style int
}

const (
	lineNormal = iota
	lineStderr
	lineNotice
)

// classifyFunc turns a message into a line for the pane. ok is false for messages the
// pane ignores.
type classifyFunc func(msg tea.Msg) (line paneLine, ok bool)

// Pane is a scrolling, filterable list of output lines, capped at a maximum length.
type Pane struct {
	name     string
	classify classifyFunc

	viewport    viewport.Model
	filterInput textinput.Model
	keys        PaneKeyMap

	lines     []paneLine
	maxLines  int
	wrapWidth int

	// rendered holds the wrapped and styled form of every line passing the filter.
	// It is rebuilt only when the width or the filter changes.
	rendered []string

	filterMode bool
	filterText string
	matchCount int
	ready      bool
	width      int
	height     int
}

func newPane(name string, maxLines, wrapWidth int, classify classifyFunc) *Pane {
	filterInput := textinput.New()
	filterInput.Placeholder = "Filter lines..."
	filterInput.CharLimit = 100
	filterInput.Width = 50

	if maxLines < 1 {
		maxLines = 1
	}

	return &Pane{
		name:        name,
		classify:    classify,
		filterInput: filterInput,
		keys:        DefaultPaneKeyMap(),
		maxLines:    maxLines,
		wrapWidth:   wrapWidth,
	}
}

// Init implements tea.Model
func (p *Pane) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p *Pane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		if !p.ready {
			p.viewport = viewport.New(msg.Width, msg.Height)
			p.viewport.KeyMap = viewport.KeyMap{
				PageDown: p.keys.PageDown,
				PageUp:   p.keys.PageUp,
				Down:     p.keys.LineDown,
				Up:       p.keys.LineUp,
			}
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = msg.Height
		}
		p.refresh()
		return p, nil

	case tea.KeyMsg:
		if p.filterMode {
			switch {
			case key.Matches(msg, p.keys.Confirm):
				p.filterMode = false
				p.filterInput.Blur()
				p.filterText = p.filterInput.Value()
				p.refresh()
				p.viewport.GotoBottom()
				return p, nil
			case key.Matches(msg, p.keys.Cancel):
				p.filterMode = false
				p.filterInput.Blur()
				p.filterInput.SetValue(p.filterText)
				return p, nil
			default:
				var cmd tea.Cmd
				p.filterInput, cmd = p.filterInput.Update(msg)
				return p, cmd
			}
		}

		switch {
		case key.Matches(msg, p.keys.Filter):
			p.filterMode = true
			return p, p.filterInput.Focus()
		case key.Matches(msg, p.keys.Cancel) && p.filterText != "":
			p.filterText = ""
			p.filterInput.SetValue("")
			p.refresh()
			return p, nil
		case key.Matches(msg, p.keys.GotoTop):
			p.viewport.GotoTop()
			return p, nil
		case key.Matches(msg, p.keys.GotoEnd):
			p.viewport.GotoBottom()
			return p, nil
		}

	default:
		if line, ok := p.classify(msg); ok {
			p.append(line)
			return p, nil
		}
	}

	if !p.ready {
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *Pane) append(line paneLine) {
	follow := !p.ready || p.viewport.AtBottom()
	changed := false

	p.lines = append(p.lines, line)
	if len(p.lines) > p.maxLines {
		dropped := p.lines[0]
		p.lines = p.lines[1:]
		if p.matches(dropped) {
			p.matchCount--
			if p.ready && len(p.rendered) > 0 {
				p.rendered = p.rendered[1:]
				changed = true
			}
		}
	}

	if p.matches(line) {
		p.matchCount++
		if p.ready {
			p.rendered = append(p.rendered, renderLine(line, p.lineWidth()))
			changed = true
		}
	}

	if !changed {
		return
	}
	p.viewport.SetContent(strings.Join(p.rendered, "\n"))
	if follow {
		p.viewport.GotoBottom()
	}
}

func (p *Pane) matches(line paneLine) bool {
	if p.filterText == "" {
		return true
	}
	return strings.Contains(strings.ToLower(line.text), strings.ToLower(p.filterText))
}

func (p *Pane) lineWidth() int {
	if p.wrapWidth > 0 {
		return p.wrapWidth
	}
	return p.width
}

// visible returns the lines passing the current filter, case-insensitively.
func (p *Pane) visible() []paneLine {
	if p.filterText == "" {
		return p.lines
	}
	var out []paneLine
	for _, line := range p.lines {
		if p.matches(line) {
			out = append(out, line)
		}
	}
	return out
}

// refresh re-renders every visible line. Called when the width or the filter changes.
func (p *Pane) refresh() {
	lines := p.visible()
	p.matchCount = len(lines)
	if !p.ready {
		p.rendered = nil
		return
	}

	width := p.lineWidth()
	p.rendered = make([]string, 0, len(lines))
	for _, line := range lines {
		p.rendered = append(p.rendered, renderLine(line, width))
	}
	p.viewport.SetContent(strings.Join(p.rendered, "\n"))
}

func renderLine(line paneLine, width int) string {
	text := wrapText(line.text, width)
	switch line.style {
	case lineStderr:
		return stderrStyle.Render(text)
	case lineNotice:
		return dimStyle.Render(text)
	default:
		return text
	}
}

// View implements tea.Model
func (p *Pane) View() string {
	if !p.ready {
		return "Initializing..."
	}
	if len(p.lines) == 0 {
		return dimStyle.Render("Waiting for output...")
	}
	return p.viewport.View()
}

// Lines returns the raw text of all retained lines, oldest first.
func (p *Pane) Lines() []string {
	out := make([]string, len(p.lines))
	for i, line := range p.lines {
		out[i] = line.text
	}
	return out
}

func (p *Pane) Name() string {
	return p.name
}

func (p *Pane) KeyMap() help.KeyMap {
	return p.keys
}

func (p *Pane) FooterView() string {
	if p.filterMode {
		return filterStyle.Render("Filter: ") + p.filterInput.View()
	}
	if p.filterText != "" {
		return dimStyle.Render(fmt.Sprintf("Filter: '%s' (%d/%d lines) • Press / to edit, Esc to clear",
			p.filterText, p.matchCount, len(p.lines)))
	}
	return ""
}

func (p *Pane) IsCapturingInput() bool {
	return p.filterMode
}
