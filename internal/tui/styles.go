package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("170") // Purple
	secondaryColor = lipgloss.Color("39")  // Cyan
	dimColor       = lipgloss.Color("240") // Gray
	surfaceColor   = lipgloss.Color("236") // Card background
	errorColor     = lipgloss.Color("196") // Red
	warningColor   = lipgloss.Color("214") // Orange

	// App bar
	AppBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Normal text style
	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Highlighted segments inside normal text
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	// Dim style for metadata
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// Warning style
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// Book card in the grid
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Background(surfaceColor).
			Padding(0, 1)

	// Book card under the cursor
	SelectedCardStyle = CardStyle.Copy().
				BorderForeground(primaryColor)

	// Box style for dialogs and the description card
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(1, 2)

	// Category chip
	ChipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(0, 1)

	// Category chip with focus
	SelectedChipStyle = ChipStyle.Copy().
				BorderForeground(primaryColor).
				Foreground(primaryColor)

	// Button style
	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Disabled button style
	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(dimColor)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			MarginTop(1)
)

// Detail title styles, chosen by title length
var (
	largeTitleStyle  = TitleStyle.Copy().Underline(true)
	mediumTitleStyle = TitleStyle.Copy()
	smallTitleStyle  = lipgloss.NewStyle().Bold(true)
)

// titleStyleFor picks a heading style so long titles stay readable.
func titleStyleFor(title string) lipgloss.Style {
	switch n := len([]rune(title)); {
	case n <= 45:
		return largeTitleStyle
	case n <= 60:
		return mediumTitleStyle
	default:
		return smallTitleStyle
	}
}

// truncate shortens s to at most maxLen runes, ending with "..."
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// orDash returns fallback when s is blank
func orDash(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
