package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/billmal071/bookshelf/internal/books"
)

const (
	cardWidth  = 26 // content width, without border and padding
	cardOuter  = cardWidth + 4
	cardHeight = 6 // rendered height including border

	// app bar, query header, help
	chromeHeight = 6
)

func (m App) columns() int {
	return max(1, m.width/cardOuter)
}

func (m App) visibleRows() int {
	return max(1, (m.height-chromeHeight)/cardHeight)
}

// ensureVisible scrolls the grid so the cursor row is on screen
func (m *App) ensureVisible() {
	row := m.cursor / m.columns()
	rows := m.visibleRows()
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m App) queryHeader() string {
	total := strconv.Itoa(m.state.TotalItems)
	shown := strconv.Itoa(len(m.state.Items))

	quoted := fmt.Sprintf("%q", m.state.Query)
	summary := fmt.Sprintf("Total Item %s shows %s", total, shown)

	return lipgloss.JoinVertical(lipgloss.Left,
		" "+Highlight(quoted, quoted),
		" "+Highlight(summary, total, shown),
	)
}

func (m App) resultsView() string {
	var view strings.Builder
	view.WriteString(m.queryHeader())
	view.WriteString("\n")

	items := m.state.Items
	if len(items) == 0 {
		view.WriteString(m.centered(DimStyle.Render("No books found")))
		return view.String()
	}

	cols := m.columns()
	start := m.offset * cols
	end := min(len(items), start+m.visibleRows()*cols)

	var rows []string
	for i := start; i < end; i += cols {
		var cards []string
		for j := i; j < min(i+cols, end); j++ {
			cards = append(cards, renderCard(items[j], j == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	view.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if totalRows := (len(items) + cols - 1) / cols; totalRows > m.visibleRows() {
		view.WriteString("\n")
		view.WriteString(DimStyle.Render(fmt.Sprintf(" %d/%d", m.cursor+1, len(items))))
	}
	return view.String()
}

func renderCard(b books.Book, selected bool) string {
	style := CardStyle
	title := NormalStyle.Render(truncate(orDash(b.Title, "-"), cardWidth))
	if selected {
		style = SelectedCardStyle
		title = TitleStyle.Render(truncate(orDash(b.Title, "-"), cardWidth))
	}

	authors := truncate(orDash(strings.Join(b.Authors, ", "), "-"), cardWidth)
	published := truncate(orDash(b.PublishedDate, "-"), cardWidth)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		DimStyle.Render(authors),
		"",
		DimStyle.Render(published),
	)
	return style.Width(cardWidth + 2).Render(content)
}
