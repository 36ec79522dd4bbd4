package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Highlight renders source with NormalStyle and each segment in
// HighlightStyle. Segments are matched in order, each one searched after
// the previous match; a segment that does not occur is skipped.
func Highlight(source string, segments ...string) string {
	return highlightWith(source, NormalStyle, HighlightStyle, segments...)
}

func highlightWith(source string, normal, marked lipgloss.Style, segments ...string) string {
	type span struct{ start, end int }

	var spans []span
	from := 0
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		idx := strings.Index(source[from:], seg)
		if idx < 0 {
			continue
		}
		start := from + idx
		spans = append(spans, span{start: start, end: start + len(seg)})
		from = start + len(seg)
	}

	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			b.WriteString(normal.Render(source[pos:s.start]))
		}
		b.WriteString(marked.Render(source[s.start:s.end]))
		pos = s.end
	}
	if pos < len(source) {
		b.WriteString(normal.Render(source[pos:]))
	}
	return b.String()
}
