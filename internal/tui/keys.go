package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the roadmap browser.
type KeyMap struct {
	All      key.Binding
	Learning key.Binding
	Projects key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		All: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all items"),
		),
		Learning: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "learning path"),
		),
		Projects: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "major projects"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev link"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next link"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.All, k.Learning, k.Projects, k.Open, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.All, k.Learning, k.Projects},
		{k.Up, k.Down, k.Open},
		{k.Prev, k.Next, k.Back},
		{k.Help, k.Quit},
	}
}
