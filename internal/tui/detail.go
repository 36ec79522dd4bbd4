package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/billmal071/bookshelf/internal/books"
)

// detailModel shows a single book with a scrollable description
type detailModel struct {
	detail   books.Detail
	viewport viewport.Model
	chip     int // focused category
	width    int
	height   int
}

func newDetailModel(d books.Detail, width, height int) detailModel {
	m := detailModel{
		detail:   d,
		viewport: viewport.New(width, 1),
	}
	m.resize(width, height)
	return m
}

func (m *detailModel) resize(width, height int) {
	m.width, m.height = width, height

	// header, chips, description label and help
	used := lipgloss.Height(m.header()) + lipgloss.Height(m.chips()) + 4
	m.viewport.Width = max(10, width-2)
	m.viewport.Height = max(3, height-used)

	body := orDash(m.detail.Description, "-")
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width - 2).Render(body))
}

func (m *detailModel) nextChip(delta int) {
	n := len(m.detail.Categories)
	if n == 0 {
		return
	}
	m.chip = (m.chip + delta + n) % n
}

func (m detailModel) selectedCategory() (string, bool) {
	if m.chip < 0 || m.chip >= len(m.detail.Categories) {
		return "", false
	}
	c := strings.TrimSpace(m.detail.Categories[m.chip])
	return c, c != ""
}

func (m detailModel) header() string {
	d := m.detail
	width := max(20, m.width-2)

	lines := []string{
		titleStyleFor(d.Title).Width(width).Render(orDash(d.Title, "-")),
		NormalStyle.Render(orDash(strings.Join(d.Authors, ", "), "-")),
		DimStyle.Render(orDash(d.Publisher, "-Unknown Publisher")),
		DimStyle.Render(orDash(d.PublishedDate, "-Unknown Date")),
	}
	if d.Thumbnail != "" {
		lines = append(lines, DimStyle.Render(truncate(d.Thumbnail, width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m detailModel) chips() string {
	if len(m.detail.Categories) == 0 {
		return ""
	}
	chips := make([]string, 0, len(m.detail.Categories))
	for i, c := range m.detail.Categories {
		style := ChipStyle
		if i == m.chip {
			style = SelectedChipStyle
		}
		chips = append(chips, style.Render(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m detailModel) View() string {
	parts := []string{m.header()}
	if chips := m.chips(); chips != "" {
		parts = append(parts, chips)
	}
	parts = append(parts, TitleStyle.Render("Description :"), m.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
