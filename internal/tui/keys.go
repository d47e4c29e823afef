package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the TUI reacts to.
type keyMap struct {
	// Welcome screen
	NewSession key.Binding
	Demo       key.Binding
	Open       key.Binding
	Exit       key.Binding

	// Session screen
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Left   key.Binding
	Right  key.Binding
	Delete key.Binding
	Edit   key.Binding
	Save   key.Binding
	Load   key.Binding
	Close  key.Binding

	// Everywhere
	Cancel key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NewSession: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		Demo:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "demo session")),
		Open:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load file")),
		Exit:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),

		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add movie")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous genre")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next genre")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Load:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "load")),
		Close:  key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close session")),

		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:   key.NewBinding(key.WithKeys("f1", "?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
