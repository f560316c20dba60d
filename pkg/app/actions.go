package app

import "tableflip.dev/taskboard/pkg/task"

// Action is one event fed to Reduce.
type Action interface {
	action()
}

// LoadTasks asks for a full reload.
type LoadTasks struct{}

// TasksLoaded carries the list after a successful store operation.
type TasksLoaded struct {
	Op    string
	Tasks []task.Task
}

// OperationFailed carries a failed store operation and the list as the
// store still holds it.
type OperationFailed struct {
	Op    string
	Err   error
	Tasks []task.Task
}

// OpenCreate opens the form for a new task.
type OpenCreate struct{}

// OpenUpdate opens the form for the referenced task.
type OpenUpdate struct {
	Ref task.Ref
}

// CloseForm cancels the form.
type CloseForm struct{}

// SetField edits the buffer.
type SetField struct {
	Field Field
	Value string
}

// SubmitForm submits the buffer.
type SubmitForm struct{}

// CompleteTask marks a task done.
type CompleteTask struct {
	Ref task.Ref
}

// DeleteTask removes a task.
type DeleteTask struct {
	Ref task.Ref
}

// DragStart picks up the task at Index.
type DragStart struct {
	Index int
}

// DragOver moves the drop target during a drag.
type DragOver struct {
	Index int
}

// DragEnd drops the picked up task at Dest; a nil Dest cancels.
type DragEnd struct {
	Dest *int
}

// ToggleScheme flips the display mode.
type ToggleScheme struct{}

// SetScheme applies a display mode without saving it, e.g. the stored
// preference at startup.
type SetScheme struct {
	Scheme Scheme
}

// SchemeSaved reports the outcome of persisting the display mode.
type SchemeSaved struct {
	Err error
}

func (LoadTasks) action()       {}
func (TasksLoaded) action()     {}
func (OperationFailed) action() {}
func (OpenCreate) action()      {}
func (OpenUpdate) action()      {}
func (CloseForm) action()       {}
func (SetField) action()        {}
func (SubmitForm) action()      {}
func (CompleteTask) action()    {}
func (DeleteTask) action()      {}
func (DragStart) action()       {}
func (DragOver) action()        {}
func (DragEnd) action()         {}
func (ToggleScheme) action()    {}
func (SetScheme) action()       {}
func (SchemeSaved) action()     {}
