package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Edit   key.Binding
	Done   key.Binding
	Delete key.Binding
	Grab   key.Binding
	Drop   key.Binding
	Cancel key.Binding
	Scheme key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding

	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Done:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "complete")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Grab:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Drop:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Scheme: key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "light/dark")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Done, k.Delete, k.Grab, k.Scheme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reload},
		{k.New, k.Edit, k.Done, k.Delete},
		{k.Grab, k.Drop, k.Cancel},
		{k.Scheme, k.Help, k.Quit},
	}
}

// formKeys is the help shown while the modal is open.
type formKeys keyMap

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.Cancel, k.Scheme}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// dragKeys is the help shown while a task is grabbed.
type dragKeys keyMap

func (k dragKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Drop, k.Cancel}
}

func (k dragKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
