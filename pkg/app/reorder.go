package app

import (
	"fmt"

	"tableflip.dev/taskboard/pkg/task"
)

// Move removes the task at from and reinserts it at to. It is not a swap:
// Move([A B C D], 0, 2) is [B C A D].
func Move(tasks []task.Task, from, to int) ([]task.Task, error) {
	if from < 0 || from >= len(tasks) {
		return tasks, fmt.Errorf("%w: source position %d", ErrNotFound, from)
	}
	if to < 0 || to >= len(tasks) {
		return tasks, fmt.Errorf("%w: destination position %d", ErrNotFound, to)
	}
	out := task.Clone(tasks)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]task.Task{moved}, out[to:]...)...)
	return out, nil
}

// Drag tracks a reorder gesture from pick up to drop. ID is the picked up
// task, so the gesture can follow it when the list is reloaded.
type Drag struct {
	Active bool
	ID     string
	Source int
	Target int
}

// Start picks up the task at index.
func (d Drag) Start(index int) Drag {
	return Drag{Active: true, Source: index, Target: index}
}

// Over moves the drop target, clamped to the list.
func (d Drag) Over(index, n int) Drag {
	if !d.Active || n == 0 {
		return d
	}
	if index < 0 {
		index = 0
	}
	if index > n-1 {
		index = n - 1
	}
	d.Target = index
	return d
}

// Follow re-finds the picked up task in a reloaded list. The drag is
// cancelled when the task is gone.
func (d Drag) Follow(tasks []task.Task) Drag {
	if !d.Active {
		return d
	}
	source := d.Source
	if d.ID != "" {
		source = task.IndexOf(tasks, d.ID)
	}
	if source < 0 || source >= len(tasks) {
		return Drag{}
	}
	d.Source = source
	d.Target = min(d.Target, len(tasks)-1)
	return d
}

// End drops the task. A nil destination means the gesture was cancelled and
// nothing moves; ok reports whether a reorder should happen.
func (d Drag) End(dest *int) (from, to int, ok bool) {
	if !d.Active || dest == nil {
		return 0, 0, false
	}
	return d.Source, *dest, true
}

// Preview returns tasks as they would look if dropped at the current target.
func (d Drag) Preview(tasks []task.Task) []task.Task {
	if !d.Active {
		return tasks
	}
	moved, err := Move(tasks, d.Source, d.Target)
	if err != nil {
		return tasks
	}
	return moved
}
