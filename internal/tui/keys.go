// Package tui runs a practice session in the terminal using Bubble Tea.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the practice key bindings.
type KeyMap struct {
	Enter  key.Binding
	Peek   key.Binding
	Remove key.Binding
	Finish key.Binding
	Quit   key.Binding
}

// DefaultKeyMap provides the default key bindings.
var DefaultKeyMap = KeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "check / next"),
	),
	Peek: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "show answer"),
	),
	Remove: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "remove word"),
	),
	Finish: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "finish"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "pause and quit"),
	),
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Enter, k.Peek, k.Remove, k.Finish, k.Quit}
}
