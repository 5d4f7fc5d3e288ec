package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the navigator key bindings.
type KeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	First    key.Binding
	Last     key.Binding
	Jump     key.Binding
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Follow   key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous panel")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next panel")),
		First:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first panel")),
		Last:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last panel")),
		Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to panel")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		Follow:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open link")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find panel")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Search, k.Follow, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap. Groups are navigation, scrolling and
// actions.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last, k.Jump},
		{k.Down, k.Up, k.PageDown, k.PageUp},
		{k.Follow, k.Search, k.Help, k.Quit},
	}
}
