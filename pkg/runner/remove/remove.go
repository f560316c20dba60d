// Package remove provides the runner logic for deleting tasks.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/printers"
	"tableflip.dev/taskboard/pkg/prompt"
	"tableflip.dev/taskboard/pkg/task"
)

// Remove deletes a task.
type Remove struct {
	Store *app.Store
	Ref   string

	// Prompter asks for confirmation when set.
	Prompter *prompt.Prompter

	JSON bool
	Out  io.Writer
}

// Do deletes the referenced task. A declined confirmation is not an error.
func (r *Remove) Do(ctx context.Context) error {
	if r.Store == nil {
		return errors.New("can not delete, no task store")
	}
	tasks, err := r.Store.Load(ctx)
	if err != nil {
		return err
	}
	ref, err := task.ParseRef(tasks, r.Ref)
	if err != nil {
		return err
	}
	i := ref.Resolve(tasks)
	if i >= 0 && r.Prompter != nil {
		ok, err := r.Prompter.Confirm(fmt.Sprintf("Delete %q", tasks[i].Title))
		if err != nil || !ok {
			return err
		}
	}

	tasks, err = r.Store.Delete(ctx, ref)
	if err != nil {
		return err
	}
	if r.JSON {
		jp := printers.JSONPrint{Out: r.Out}
		return jp.Tasks(tasks)
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.Title("My Tasks")
	pp.Tasks(tasks)
	return nil
}
