// Package printers renders task lists for the command line.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/taskboard/pkg/task"
)

const (
	emptyList      = "You have no tasks"
	missingSummary = "No summary was provided for this task"
	summaryWidth   = 60
)

// PrettyPrint writes colored tables.
type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, tasks []task.Task) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	open := 0
	for _, tk := range tasks {
		if !tk.Done {
			open++
		}
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d open, %d total\n", open, len(tasks))
}

// Tasks prints one row per task: position, optional id, status, title and
// summary.
func (pp *PrettyPrint) Tasks(tasks []task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(pp.out(), " %s\n\n", emptyList)
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = summaryWidth
	tbl.Wrap = true

	for i, tk := range tasks {
		mark, title := "[ ]", bold.Sprint(tk.Title)
		if tk.Done {
			mark, title = "[x]", done.Sprint(tk.Title)
		}
		summary := tk.Summary
		if summary == "" {
			summary = faint.Sprint(missingSummary)
		}
		row := []interface{}{strconv.Itoa(i+1) + ".", mark}
		if pp.ShowID {
			row = append(row, y.Sprint(tk.ID))
		}
		row = append(row, title, summary)
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Task prints a one line confirmation for a single task.
func (pp *PrettyPrint) Task(verb string, t task.Task) {
	c := color.New(color.FgGreen)
	_, _ = c.Fprintf(pp.out(), "%s ", verb)
	_, _ = fmt.Fprintf(pp.out(), "%s %s\n", t.ID, truncate.StringWithTail(t.Title, summaryWidth, "…"))
}

// JSONPrint writes machine readable output.
type JSONPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (jp *JSONPrint) Tasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return jp.encode(map[string]interface{}{"data": tasks})
}

func (jp *JSONPrint) Task(t task.Task) error {
	return jp.encode(t)
}

func (jp *JSONPrint) encode(v interface{}) error {
	out := jp.Out
	if out == nil {
		out = color.Output
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
