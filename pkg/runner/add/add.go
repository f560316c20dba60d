// Package add provides the runner logic for creating tasks.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/printers"
	"tableflip.dev/taskboard/pkg/prompt"
	"tableflip.dev/taskboard/pkg/task"
)

// Add appends a task to the list.
type Add struct {
	Store   *app.Store
	Title   string
	Summary string

	// Prompter asks for the fields when set.
	Prompter *prompt.Prompter

	JSON bool
	Out  io.Writer
}

// Do validates the fields like the task form does, then creates the task.
func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not add, no task store")
	}
	if n.Prompter != nil {
		title, summary, err := n.Prompter.TaskFields(n.Title, n.Summary)
		if err != nil {
			return err
		}
		n.Title, n.Summary = title, summary
	}

	form := app.Form{}.OpenCreate().
		Set(app.FieldTitle, n.Title).
		Set(app.FieldSummary, n.Summary)
	_, intent, err := form.Submit()
	if err != nil {
		return err
	}

	if _, err := n.Store.Load(ctx); err != nil {
		return err
	}
	created, tasks, err := n.Store.Append(ctx, intent.Title, intent.Summary)
	if err != nil {
		return err
	}
	if i := task.IndexOf(tasks, created.ID); i >= 0 {
		created = tasks[i]
	} else if created.ID == "" {
		return &app.OpError{Op: "create", Err: errors.New("created task has no id")}
	}

	if n.JSON {
		jp := printers.JSONPrint{Out: n.Out}
		return jp.Task(created)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Task("created", created)
	return nil
}
