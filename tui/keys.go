package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the control keys. Move keys come from the game keymap and
// are checked first, so a control key never shadows a move key.
type KeyMap struct {
	Undo      key.Binding
	Redo      key.Binding
	Locate    key.Binding
	Pause     key.Binding
	NewGame   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Stats     key.Binding
	Help      key.Binding
	Redraw    key.Binding
}

// DefaultKeyMap returns the control keys
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
		Locate:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "locate a card")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		NewGame: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Stats:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "stats")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Redraw:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "redraw")),

		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit now")),
	}
}

// Bindings lists the control keys in help order
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Undo, k.Redo, k.Locate, k.Pause, k.NewGame, k.Stats, k.Help, k.Redraw, k.Quit}
}
