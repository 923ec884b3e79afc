package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Count   key.Binding
	Reset   key.Binding
	Save    key.Binding
	SaveAny key.Binding
	Credits key.Binding
	Edit    key.Binding
	Done    key.Binding
	Quit    key.Binding
	Back    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Count:   key.NewBinding(key.WithKeys("+", " ", "c"), key.WithHelp("+/c", "count")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Save:    key.NewBinding(key.WithKeys("x", "ctrl+s"), key.WithHelp("x", "exit & save")),
		SaveAny: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "exit & save")),
		Credits: key.NewBinding(key.WithKeys("m", "f1"), key.WithHelp("m", "credits")),
		Edit:    key.NewBinding(key.WithKeys("tab", "e"), key.WithHelp("tab", "edit name")),
		Done:    key.NewBinding(key.WithKeys("enter", "tab", "esc"), key.WithHelp("enter", "done")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:    key.NewBinding(key.WithKeys("esc", "q", "backspace", "enter"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp implements help.KeyMap for the main screen.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Count, k.Reset, k.Save, k.Edit, k.Credits, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type editingKeys struct{ keyMap }

func (k editingKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.SaveAny}
}

type creditsKeys struct{ keyMap }

func (k creditsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back}
}
