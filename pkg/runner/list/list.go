// Package list provides the runner logic for printing the task list.
package list

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/printers"
)

// List prints every task in display order.
type List struct {
	Store  *app.Store
	ShowID bool
	JSON   bool
	Out    io.Writer
}

// Do loads and prints the list.
func (l *List) Do(ctx context.Context) error {
	if l.Store == nil {
		return errors.New("can not list, no task store")
	}
	tasks, err := l.Store.Load(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		jp := printers.JSONPrint{Out: l.Out}
		return jp.Tasks(tasks)
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	pp.TitleWithCount("My Tasks", tasks)
	pp.Tasks(tasks)
	return nil
}
