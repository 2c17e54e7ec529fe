package backend

import (
	"github.com/rs/zerolog"
)

// Origin identifies which stream of the backend a line came from.
type Origin string

const (
	OriginStdout Origin = "stdout"
	OriginStderr Origin = "stderr"
)

// Label is attached to every forwarded line so backend output can be told apart from
// host output.
const Label = "backend"

// Sink receives complete lines read from the backend. Implementations must be safe for
// concurrent use: the stdout and stderr forwarders call Line independently.
type Sink interface {
	Line(origin Origin, line string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(origin Origin, line string)

func (f SinkFunc) Line(origin Origin, line string) {
	f(origin, line)
}

// MultiSink delivers every line to each of the given sinks in order.
func MultiSink(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return multiSink(filtered)
}

type multiSink []Sink

func (m multiSink) Line(origin Origin, line string) {
	for _, s := range m {
		s.Line(origin, line)
	}
}

// LogSink writes backend lines to a zerolog logger. Stdout lines are logged at info,
// stderr lines at warn.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink returns a sink that tags lines with component=backend and the stream name.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{
		logger: logger.With().Str("component", Label).Logger(),
	}
}

func (s *LogSink) Line(origin Origin, line string) {
	evt := s.logger.Info()
	if origin == OriginStderr {
		evt = s.logger.Warn()
	}
	evt.Str("stream", string(origin)).Msg(line)
}
