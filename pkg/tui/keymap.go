package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the closed set of logical actions the UI reacts to. Each
// screen's handler consults only the bindings that apply to it.
type keyMap struct {
	Submit      key.Binding
	NetworkUp   key.Binding
	NetworkDown key.Binding
	TabNext     key.Binding
	TabPrev     key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	Reset       key.Binding
	Copy        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "submit")),
		NetworkUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "network")),
		NetworkDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "network")),
		TabNext:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "next tab")),
		TabPrev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-Tab", "prev tab")),
		ScrollUp:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		ScrollDown:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "page down")),
		Home:        key.NewBinding(key.WithKeys("home"), key.WithHelp("Home", "top")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new query")),
		Copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy id")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}
