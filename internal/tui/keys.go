package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search    key.Binding
	Category  key.Binding
	Favorites key.Binding
	ViewMode  key.Binding
	Reload    key.Binding
	Reset     key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Favorite  key.Binding
	Delete    key.Binding
	Open      key.Binding
	Edit      key.Binding
	New       key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Category:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	Favorites: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorites only")),
	ViewMode:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid/list")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Reset:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset filters")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Favorite:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "favorite")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new item")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Category, k.Favorites, k.ViewMode, k.Favorite, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Category, k.Favorites, k.ViewMode, k.Reset, k.Reload},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Favorite, k.Delete, k.Open, k.Edit, k.New},
		{k.Back, k.Help, k.Quit},
	}
}

type formKeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Cycle     key.Binding
	CycleBack key.Binding
	Favorite  key.Binding
	ClearImg  key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

var formKeys = formKeyMap{
	Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Cycle:     key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "category")),
	CycleBack: key.NewBinding(key.WithKeys("left")),
	Favorite:  key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "toggle favorite")),
	ClearImg:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear image")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// ShortHelp implements help.KeyMap.
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Cycle, k.Favorite, k.ClearImg, k.Save, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
