package playground

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the playground key bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Prev      key.Binding
	Next      key.Binding
	Component key.Binding
	Back      key.Binding
	Explain   key.Binding
	Reset     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "variant")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "variant")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "value")),
		Next:      key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/l", "value")),
		Component: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "component")),
		Back:      key.NewBinding(key.WithKeys("shift+tab")),
		Explain:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "explain")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// footer lists the bindings shown in the help line.
func (k KeyMap) footer() []key.Binding {
	return []key.Binding{k.Up, k.Prev, k.Component, k.Explain, k.Reset, k.Quit}
}
