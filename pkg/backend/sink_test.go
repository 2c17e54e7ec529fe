package backend

import (
	"bytes"
	"testing"

	"github.com/hexops/autogold"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogSink_TagsOrigin(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	sink.Line(OriginStdout, "Server listening on 3001")
	sink.Line(OriginStderr, "DeprecationWarning: punycode")

	autogold.Want("backend log lines", `{"level":"info","component":"backend","stream":"stdout","message":"Server listening on 3001"}
{"level":"warn","component":"backend","stream":"stderr","message":"DeprecationWarning: punycode"}
`).Equal(t, buf.String())
}

func TestMultiSink(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	var seen []string

	sink := MultiSink(first, nil, second, SinkFunc(func(origin Origin, line string) {
		seen = append(seen, string(origin)+":"+line)
	}))

	sink.Line(OriginStdout, "A")
	sink.Line(OriginStderr, "E")

	want := []sinkEntry{{Origin: OriginStdout, Line: "A"}, {Origin: OriginStderr, Line: "E"}}
	assert.Equal(t, want, first.all())
	assert.Equal(t, want, second.all())
	assert.Equal(t, []string{"stdout:A", "stderr:E"}, seen)
}
