// Package edit provides the runner logic for changing a task's text.
package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/printers"
	"tableflip.dev/taskboard/pkg/prompt"
	"tableflip.dev/taskboard/pkg/task"
)

// Edit overwrites the title and summary of one task.
type Edit struct {
	Store *app.Store
	Ref   string

	// Title and Summary replace the current values when their Set flag is on.
	Title      string
	SetTitle   bool
	Summary    string
	SetSummary bool

	// Prompter asks for the fields, prefilled with the current values.
	Prompter *prompt.Prompter

	JSON bool
	Out  io.Writer
}

// Do opens the task in the form, applies the changes and saves it.
func (e *Edit) Do(ctx context.Context) error {
	if e.Store == nil {
		return errors.New("can not edit, no task store")
	}
	tasks, err := e.Store.Load(ctx)
	if err != nil {
		return err
	}
	ref, err := task.ParseRef(tasks, e.Ref)
	if err != nil {
		return err
	}
	form, err := app.Form{}.OpenUpdate(tasks, ref)
	if err != nil {
		return &app.OpError{Op: "edit", Ref: e.Ref, Err: err}
	}

	if e.SetTitle {
		form = form.Set(app.FieldTitle, e.Title)
	}
	if e.SetSummary {
		form = form.Set(app.FieldSummary, e.Summary)
	}
	if e.Prompter != nil {
		title, summary, err := e.Prompter.TaskFields(form.Buffer.Title, form.Buffer.Summary)
		if err != nil {
			return err
		}
		form = form.Set(app.FieldTitle, title).Set(app.FieldSummary, summary)
	}

	_, intent, err := form.Submit()
	if err != nil {
		return err
	}
	tasks, err = e.Store.Update(ctx, intent.Ref, intent.Title, intent.Summary)
	if err != nil {
		return err
	}
	i := task.IndexOf(tasks, intent.Ref.ID)
	if i < 0 {
		return &app.OpError{Op: "edit", Ref: e.Ref, Err: app.ErrNotFound}
	}
	updated := tasks[i]

	if e.JSON {
		jp := printers.JSONPrint{Out: e.Out}
		return jp.Task(updated)
	}
	pp := printers.PrettyPrint{Out: e.Out}
	pp.Task("updated", updated)
	return nil
}
