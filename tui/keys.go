package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New           key.Binding
	Toggle        key.Binding
	Delete        key.Binding
	Generate      key.Binding
	ExportTodos   key.Binding
	ExportSummary key.Binding
	Reconnect     key.Binding
	Quit          key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		New:           key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Toggle:        key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Delete:        key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Generate:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "ai summary")),
		ExportTodos:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "todos pdf")),
		ExportSummary: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary pdf")),
		Reconnect:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reconnect")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Delete, k.Generate, k.ExportTodos, k.ExportSummary, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Reconnect}}
}
