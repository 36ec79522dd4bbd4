package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "title, genres, author, etc"
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = "> "
	return ti
}

// searchView renders the search dialog. The Search button is disabled
// while the input is blank.
func (m App) searchView() string {
	button := ButtonStyle.Render("[ Search ]")
	if strings.TrimSpace(m.input.Value()) == "" {
		button = DisabledButtonStyle.Render("[ Search ]")
	}

	hint := ""
	if m.hint != "" {
		hint = WarningStyle.Render(m.hint)
	}

	dialog := BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Search Books"),
		"",
		m.input.View(),
		hint,
		lipgloss.JoinHorizontal(lipgloss.Top, DimStyle.Render("[ Cancel ]"), "  ", button),
	))
	return m.centered(dialog)
}
