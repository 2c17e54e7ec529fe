package events

import (
	"testing"

	"github.com/bjartek/tether/pkg/backend"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type sendFunc func(tea.Msg)

func (f sendFunc) Send(msg tea.Msg) { f(msg) }

func TestProgramSink(t *testing.T) {
	var got []tea.Msg
	var sink backend.Sink = NewProgramSink(sendFunc(func(msg tea.Msg) {
		got = append(got, msg)
	}))

	sink.Line(backend.OriginStdout, "A")
	sink.Line(backend.OriginStderr, "E")

	assert.Equal(t, []tea.Msg{
		BackendLineMsg{Origin: backend.OriginStdout, Line: "A"},
		BackendLineMsg{Origin: backend.OriginStderr, Line: "E"},
	}, got)
}
