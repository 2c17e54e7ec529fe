package backend

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// forward drains r line by line into sink until end-of-stream. A read error is logged once
// and ends the forwarder; it is never returned to anyone.
func forward(r io.Reader, origin Origin, sink Sink, logger zerolog.Logger) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			sink.Line(origin, strings.TrimRight(line, "\r\n"))
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) {
			readErr := &StreamReadError{Origin: origin, Err: err}
			logger.Error().Err(readErr).Str("stream", string(origin)).Msg("Error reading backend output")
		}
		return
	}
}
