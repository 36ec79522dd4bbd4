package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHighlightWith(t *testing.T) {
	t.Parallel()

	// Padding renders under every color profile, so marked spans stay
	// visible in the output even without ANSI support.
	normal := lipgloss.NewStyle()
	marked := lipgloss.NewStyle().Padding(0, 1)

	tests := []struct {
		name     string
		source   string
		segments []string
		want     string
	}{
		{
			name:     "counts in order",
			source:   "Total Item 389 shows 40",
			segments: []string{"389", "40"},
			want:     "Total Item  389  shows  40 ",
		},
		{
			name:     "equal counts match separately",
			source:   "Total Item 40 shows 40",
			segments: []string{"40", "40"},
			want:     "Total Item  40  shows  40 ",
		},
		{
			name:     "whole string",
			source:   `"jazz history"`,
			segments: []string{`"jazz history"`},
			want:     ` "jazz history" `,
		},
		{
			name:     "missing segment skipped",
			source:   "Total Item 5 shows 5",
			segments: []string{"7", "5"},
			want:     "Total Item  5  shows 5",
		},
		{
			name:     "empty segment skipped",
			source:   "abc",
			segments: []string{"", "b"},
			want:     "a b c",
		},
		{
			name:     "segment before previous match is not revisited",
			source:   "one two",
			segments: []string{"two", "one"},
			want:     "one  two ",
		},
		{
			name:   "no segments",
			source: "plain",
			want:   "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, highlightWith(tt.source, normal, marked, tt.segments...))
		})
	}
}

func TestHighlight_KeepsText(t *testing.T) {
	t.Parallel()

	source := "Total Item 389 shows 40"
	assert.Equal(t, source, plain(Highlight(source, "389", "40")))
	assert.Equal(t,
		NormalStyle.Render("Total Item ")+HighlightStyle.Render("389")+
			NormalStyle.Render(" shows ")+HighlightStyle.Render("40"),
		Highlight(source, "389", "40"))
}

func TestTitleStyleFor(t *testing.T) {
	t.Parallel()

	short := "Kind of Blue"
	medium := "The History of Jazz and the Musicians Who Made It Great"
	long := "A Very Long Title About Jazz History That Keeps Going Past Sixty Characters"

	assert.Equal(t, largeTitleStyle.Render(short), titleStyleFor(short).Render(short))
	assert.Equal(t, mediumTitleStyle.Render(medium), titleStyleFor(medium).Render(medium))
	assert.Equal(t, smallTitleStyle.Render(long), titleStyleFor(long).Render(long))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "déjà ...", truncate("déjà vu all over", 8))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestOrDash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-Unknown Date", orDash("  ", "-Unknown Date"))
	assert.Equal(t, "1999", orDash("1999", "-Unknown Date"))
}
