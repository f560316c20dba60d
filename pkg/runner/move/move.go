// Package move provides the runner logic for reordering tasks.
package move

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/printers"
	"tableflip.dev/taskboard/pkg/task"
)

// Move moves a task to a 1-based position. The store must persist order,
// or the move would vanish with the process.
type Move struct {
	Store    *app.Store
	Ref      string
	Position int

	JSON bool
	Out  io.Writer
}

// Do removes the task and reinserts it at Position.
func (m *Move) Do(ctx context.Context) error {
	if m.Store == nil {
		return errors.New("can not move, no task store")
	}
	tasks, err := m.Store.Load(ctx)
	if err != nil {
		return err
	}
	ref, err := task.ParseRef(tasks, m.Ref)
	if err != nil {
		return err
	}
	from := ref.Resolve(tasks)
	if from < 0 {
		return &app.OpError{Op: "reorder", Ref: m.Ref, Err: app.ErrNotFound}
	}
	if m.Position < 1 || m.Position > len(tasks) {
		return &app.OpError{Op: "reorder", Ref: m.Ref,
			Err: fmt.Errorf("%w: position %d is outside 1..%d", app.ErrNotFound, m.Position, len(tasks))}
	}

	tasks, err = m.Store.Reorder(ctx, from, m.Position-1)
	if err != nil {
		return err
	}
	if m.JSON {
		jp := printers.JSONPrint{Out: m.Out}
		return jp.Tasks(tasks)
	}
	pp := printers.PrettyPrint{Out: m.Out}
	pp.Title("My Tasks")
	pp.Tasks(tasks)
	return nil
}
