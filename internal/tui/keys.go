package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Open   key.Binding
	Sort   key.Binding
	Search key.Binding
	Retry  key.Binding
	Quit   key.Binding

	Back     key.Binding
	NextChip key.Binding
	PrevChip key.Binding
	Pick     key.Binding

	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by title")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "try again")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Back:     key.NewBinding(key.WithKeys("esc", "backspace", "q"), key.WithHelp("esc", "back")),
		NextChip: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next category")),
		PrevChip: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev category")),
		Pick:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search category")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) shelfHelp(failed bool) []key.Binding {
	if failed {
		return []key.Binding{k.Retry, k.Search, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Open, k.Sort, k.Search, k.Quit}
}

func (k keyMap) detailHelp(hasChips bool) []key.Binding {
	if hasChips {
		return []key.Binding{k.Up, k.Down, k.NextChip, k.Pick, k.Back}
	}
	return []key.Binding{k.Up, k.Down, k.Back}
}

func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
