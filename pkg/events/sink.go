package events

import (
	"github.com/bjartek/tether/pkg/backend"
	tea "github.com/charmbracelet/bubbletea"
)

// Sender is the part of *tea.Program used to deliver messages.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink forwards backend lines into a Bubble Tea program as BackendLineMsg.
type ProgramSink struct {
	program Sender
}

// NewProgramSink returns a backend.Sink that delivers lines to program.
func NewProgramSink(program Sender) *ProgramSink {
	return &ProgramSink{program: program}
}

func (s *ProgramSink) Line(origin backend.Origin, line string) {
	s.program.Send(BackendLineMsg{Origin: origin, Line: line})
}
