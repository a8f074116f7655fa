package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevCountry key.Binding
	NextCountry key.Binding
	Filing      key.Binding
	Edit        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	PrevCountry: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev country")),
	NextCountry: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next country")),
	Filing:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "single/married")),
	Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit salary")),
	Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
	Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
