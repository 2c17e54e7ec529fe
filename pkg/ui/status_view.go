package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bjartek/tether/pkg/events"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusView summarizes the backend process: whether it runs, its pid, command line and
// the ports it listens on.
type StatusView struct {
	state   string
	pid     int
	command string
	entry   string
	started time.Time
	exitErr error
	ports   []string
	width   int
}

func NewStatusView() *StatusView {
	return &StatusView{state: "starting"}
}

// Init implements tea.Model
func (v *StatusView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *StatusView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
	case events.BackendStartedMsg:
		v.state = "running"
		v.pid = msg.Pid
		v.command = commandLine(msg.Path, msg.Args)
		v.entry = msg.Entry
		v.started = time.Now()
		v.exitErr = nil
		v.ports = nil
	case events.BackendExitedMsg:
		if msg.Pid == v.pid {
			v.state = "exited"
			v.exitErr = msg.Err
		}
	case events.BackendPortMsg:
		v.addPort(msg.Port)
	}
	return v, nil
}

func (v *StatusView) addPort(port string) {
	for _, p := range v.ports {
		if p == port {
			return
		}
	}
	v.ports = append(v.ports, port)
	sort.Strings(v.ports)
}

// View implements tea.Model
func (v *StatusView) View() string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("State", v.stateView())
	if v.pid != 0 {
		row("PID", valueStyle.Render(fmt.Sprintf("%d", v.pid)))
	}
	if v.entry != "" {
		row("Entry", valueStyle.Render(v.entry))
	}
	if v.command != "" {
		row("Command", valueStyle.Render(wrapText(v.command, max(0, v.width-11))))
	}
	if !v.started.IsZero() {
		row("Started", valueStyle.Render(v.started.Format("15:04:05")))
	}

	ports := dimStyle.Render("none detected")
	if len(v.ports) > 0 {
		ports = valueStyle.Render(strings.Join(v.ports, ", "))
	}
	row("Ports", ports)

	if v.exitErr != nil {
		row("Exit", lipgloss.NewStyle().Foreground(errorColor).Render(v.exitErr.Error()))
	}

	return b.String()
}

func (v *StatusView) stateView() string {
	switch v.state {
	case "running":
		return lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(v.state)
	case "exited":
		return lipgloss.NewStyle().Foreground(errorColor).Bold(true).Render(v.state)
	default:
		return dimStyle.Render(v.state)
	}
}

func (v *StatusView) Name() string {
	return "Status"
}

func (v *StatusView) KeyMap() help.KeyMap {
	return noKeys{}
}

func (v *StatusView) FooterView() string {
	return ""
}

func (v *StatusView) IsCapturingInput() bool {
	return false
}
