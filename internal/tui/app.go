package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/shelf"
)

type screen int

const (
	screenShelf screen = iota
	screenDetail
)

// stateMsg carries a controller snapshot into the program
type stateMsg shelf.State

// updatesClosedMsg is sent once the controller subscription ends
type updatesClosedMsg struct{}

// fetchDoneMsg is sent when a Load issued by the app returns
type fetchDoneMsg struct{}

// App is the Bubble Tea model for the book browser
type App struct {
	ctx     context.Context
	ctrl    *shelf.Controller
	updates <-chan shelf.State
	stop    func()
	query   string

	state  shelf.State
	screen screen
	cursor int
	offset int // first visible grid row

	width  int
	height int

	spinner spinner.Model
	input   textinput.Model
	detail  detailModel
	help    help.Model
	keys    keyMap

	sorted   bool // Sort has been applied to the current results
	hint     string
	quitting bool
}

// NewApp creates the browser model. query is loaded when the program starts.
func NewApp(ctx context.Context, ctrl *shelf.Controller, query string) App {
	updates, stop := ctrl.Subscribe()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = TitleStyle

	return App{
		ctx:     ctx,
		ctrl:    ctrl,
		updates: updates,
		stop:    stop,
		query:   query,
		state:   ctrl.State(),
		width:   80,
		height:  24,
		spinner: s,
		input:   newSearchInput(),
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
}

func (m App) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForState(m.updates), m.load(m.query))
}

// waitForState blocks on the subscription and delivers the next snapshot
func waitForState(updates <-chan shelf.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return updatesClosedMsg{}
		}
		return stateMsg(s)
	}
}

func (m App) load(query string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.Load(ctx, query)
		return fetchDoneMsg{}
	}
}

func (m App) retry() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.Retry(ctx)
		return fetchDoneMsg{}
	}
}

func (m App) search(query string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		_, _ = ctrl.Search(ctx, query)
		return fetchDoneMsg{}
	}
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(50, max(10, msg.Width-16))
		if m.screen == screenDetail {
			m.detail.resize(msg.Width, msg.Height)
		}
		m.ensureVisible()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateMsg:
		// The message is a wakeup; the controller holds the newest snapshot
		return m.applyState(m.ctrl.State()), waitForState(m.updates)

	case updatesClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case fetchDoneMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch {
		case m.state.SearchOpen:
			return m.updateSearch(msg)
		case m.screen == screenDetail:
			return m.updateDetail(msg)
		default:
			return m.updateShelf(msg)
		}
	}

	if m.state.SearchOpen {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m App) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.stop()
	return m, tea.Quit
}

// applyState adopts a snapshot, resetting the grid position for new results
func (m App) applyState(s shelf.State) App {
	prev := m.state
	m.state = s
	m.query = s.Query

	if s.Seq != prev.Seq {
		m.cursor, m.offset = 0, 0
		m.sorted = false
		if m.screen == screenDetail && !s.Success() {
			m.screen = screenShelf
		}
	}
	if m.cursor >= len(s.Items) {
		m.cursor = max(0, len(s.Items)-1)
	}
	if s.SearchOpen && !prev.SearchOpen {
		m.input.SetValue(s.Query)
		m.input.CursorEnd()
		m.input.Focus()
	}
	if !s.SearchOpen {
		m.input.Blur()
		m.hint = ""
	}
	m.ensureVisible()
	return m
}

func (m App) updateShelf(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "esc":
		return m.quit()

	case key.Matches(msg, m.keys.Sort):
		m = m.applyState(m.ctrl.Sort())
		if m.state.Success() {
			m.sorted = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m = m.applyState(m.ctrl.OpenSearch())
		if m.state.SearchOpen {
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.state.Failed() {
			return m, m.retry()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.state.Success() && m.cursor < len(m.state.Items) {
			m.detail = newDetailModel(books.NewDetail(m.state.Items[m.cursor]), m.width, m.height)
			m.screen = screenDetail
		}
		return m, nil
	}

	if m.state.Success() {
		m.moveCursor(msg)
	}
	return m, nil
}

func (m *App) moveCursor(msg tea.KeyMsg) {
	n := len(m.state.Items)
	if n == 0 {
		return
	}
	cols := m.columns()

	next := m.cursor
	switch {
	case key.Matches(msg, m.keys.Left):
		next--
	case key.Matches(msg, m.keys.Right):
		next++
	case key.Matches(msg, m.keys.Up):
		next -= cols
	case key.Matches(msg, m.keys.Down):
		next += cols
	case msg.String() == "home":
		next = 0
	case msg.String() == "end":
		next = n - 1
	default:
		return
	}

	m.cursor = min(max(next, 0), n-1)
	m.ensureVisible()
}

func (m App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.applyState(m.ctrl.CancelSearch()), nil

	case key.Matches(msg, m.keys.Submit):
		query := shelf.NormalizeQuery(m.input.Value())
		if query == "" {
			m.hint = "Type something to search"
			return m, nil
		}
		m = m.applyState(m.ctrl.CancelSearch())
		m.screen = screenShelf
		return m, m.search(query)
	}

	m.hint = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenShelf
		return m, nil

	case key.Matches(msg, m.keys.NextChip):
		m.detail.nextChip(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevChip):
		m.detail.nextChip(-1)
		return m, nil

	case key.Matches(msg, m.keys.Pick):
		if category, ok := m.detail.selectedCategory(); ok {
			m.screen = screenShelf
			return m, m.search(category)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	return m, cmd
}

func (m App) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenDetail && !m.state.SearchOpen {
		return m.detail.View() + "\n" + m.helpView(m.keys.detailHelp(len(m.detail.detail.Categories) > 0))
	}

	var view strings.Builder
	view.WriteString(m.appBar())
	view.WriteString("\n")

	switch {
	case m.state.SearchOpen:
		view.WriteString(m.searchView())
		view.WriteString("\n")
		view.WriteString(m.helpView(m.keys.searchHelp()))
		return view.String()
	case m.state.Loading():
		view.WriteString(m.centered(m.spinner.View() + " Loading..."))
	case m.state.Failed():
		view.WriteString(m.centered(errorView()))
	default:
		view.WriteString(m.resultsView())
	}

	view.WriteString("\n")
	view.WriteString(m.helpView(m.keys.shelfHelp(m.state.Failed())))
	return view.String()
}

func (m App) appBar() string {
	bar := AppBarStyle.Render("BookShelf")
	if !m.state.Success() || !m.sorted {
		return bar
	}
	if m.state.SortAscending {
		return bar + DimStyle.Render(" sorted A→Z")
	}
	return bar + DimStyle.Render(" sorted Z→A")
}

func errorView() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		ErrorStyle.Render("No Internet Connection."),
		"",
		ButtonStyle.Render("TRY AGAIN (r)"),
	)
}

func (m App) centered(content string) string {
	return lipgloss.Place(m.width, max(3, m.height/2), lipgloss.Center, lipgloss.Center, content)
}

func (m App) helpView(bindings []key.Binding) string {
	return HelpStyle.Render("  " + m.help.ShortHelpView(bindings))
}

// Run starts the interactive browser and blocks until the user quits
func Run(ctx context.Context, ctrl *shelf.Controller, query string) error {
	p := tea.NewProgram(NewApp(ctx, ctrl, query), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
