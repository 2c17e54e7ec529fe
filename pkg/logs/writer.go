package logs

import (
	"bytes"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// LogLineMsg carries one complete line of host log output to the UI.
type LogLineMsg struct {
	Line string
}

// Sender is the part of *tea.Program the writer needs.
type Sender interface {
	Send(msg tea.Msg)
}

// LogWriter is an io.Writer that sends complete log lines to a Bubble Tea program, so
// logging never writes over the alternate screen.
type LogWriter struct {
	program Sender
	buffer  bytes.Buffer
	mu      sync.Mutex
}

// NewLogWriter creates a new log writer that sends lines to the Bubble Tea program.
func NewLogWriter(program Sender) *LogWriter {
	return &LogWriter{
		program: program,
	}
}

// Write implements io.Writer. Incomplete trailing data is kept until its newline arrives.
func (w *LogWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err = w.buffer.Write(p)
	if err != nil {
		return n, err
	}

	for {
		data := w.buffer.Bytes()
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		line := string(data[:idx])
		w.buffer.Next(idx + 1)
		if w.program != nil {
			w.program.Send(LogLineMsg{Line: line})
		}
	}

	return n, nil
}
