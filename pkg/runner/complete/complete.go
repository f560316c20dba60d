// Package complete provides the runner logic for marking tasks complete.
package complete

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/printers"
	"tableflip.dev/taskboard/pkg/task"
)

// Complete marks a task as done.
type Complete struct {
	Store *app.Store
	Ref   string

	JSON bool
	Out  io.Writer
}

// Do completes the referenced task and prints the resulting list.
func (n *Complete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not complete, no task store")
	}
	tasks, err := n.Store.Load(ctx)
	if err != nil {
		return err
	}
	ref, err := task.ParseRef(tasks, n.Ref)
	if err != nil {
		return err
	}
	tasks, err = n.Store.Complete(ctx, ref)
	if err != nil {
		return err
	}

	if n.JSON {
		jp := printers.JSONPrint{Out: n.Out}
		return jp.Tasks(tasks)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title("My Tasks")
	pp.Tasks(tasks)
	return nil
}
