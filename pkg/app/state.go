package app

import "tableflip.dev/taskboard/pkg/task"

// Scheme is the light or dark display mode.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// Toggle flips between light and dark.
func (s Scheme) Toggle() Scheme {
	if s == SchemeDark {
		return SchemeLight
	}
	return SchemeDark
}

// ParseScheme accepts "light" or "dark"; anything else is ok=false.
func ParseScheme(s string) (Scheme, bool) {
	switch Scheme(s) {
	case SchemeLight, SchemeDark:
		return Scheme(s), true
	default:
		return SchemeLight, false
	}
}

// State is everything the user interface renders.
type State struct {
	Tasks  []task.Task
	Form   Form
	Drag   Drag
	Scheme Scheme

	// Loaded is false until the first load finished, successfully or not.
	Loaded bool
	Status string
	Err    error
}

// NewState returns the state before the first load.
func NewState(scheme Scheme) State {
	if scheme == "" {
		scheme = SchemeLight
	}
	return State{Tasks: []task.Task{}, Scheme: scheme}
}

// Visible is the list as displayed, including a reorder in progress.
func (s State) Visible() []task.Task {
	return s.Drag.Preview(s.Tasks)
}
