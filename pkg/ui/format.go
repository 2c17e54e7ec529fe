package ui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// wrapText wraps on word boundaries and hard-breaks words longer than width.
// A width below 1 leaves the text alone.
func wrapText(text string, width int) string {
	if width < 1 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}

// commandLine renders path and args the way a shell user would type them.
func commandLine(path string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, part := range append([]string{path}, args...) {
		if part == "" || strings.ContainsAny(part, " \t\"'") {
			part = "'" + strings.ReplaceAll(part, "'", `'\''`) + "'"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}
