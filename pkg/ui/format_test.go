package ui

import (
	"testing"

	"github.com/hexops/autogold"
	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "no width",
			text:  "Server listening on 3001",
			width: 0,
			want:  "Server listening on 3001",
		},
		{
			name:  "fits",
			text:  "ready",
			width: 10,
			want:  "ready",
		},
		{
			name:  "word boundaries",
			text:  "the quick brown fox jumps",
			width: 10,
			want:  "the quick\nbrown fox\njumps",
		},
		{
			name:  "long word is broken",
			text:  "abcdefghijklmnop",
			width: 5,
			want:  "abcde\nfghij\nklmno\np",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width))
		})
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		path string
		args []string
		want autogold.Value
	}{
		{
			name: "plain",
			path: "/usr/bin/node",
			args: []string{"/opt/app/resources/server/index.js", "--port", "3001"},
			want: autogold.Want("plain", "/usr/bin/node /opt/app/resources/server/index.js --port 3001"),
		},
		{
			name: "quoted",
			path: "node",
			args: []string{"/Users/me/My App/index.js", "", "it's"},
			want: autogold.Want("quoted", `node '/Users/me/My App/index.js' '' 'it'\''s'`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Equal(t, commandLine(tt.path, tt.args))
		})
	}
}
