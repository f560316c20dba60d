package app

import (
	"strings"

	"tableflip.dev/taskboard/pkg/task"
)

// Mode says what submitting the form does.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Field names an input of the task form.
type Field int

const (
	FieldTitle Field = iota
	FieldSummary
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldSummary:
		return "Summary"
	default:
		return "Unknown"
	}
}

// EditBuffer is the scratch copy of the task being created or edited.
type EditBuffer struct {
	Title   string
	Summary string
	Ref     task.Ref
}

// Form is the modal controller: closed or open, in create or update mode,
// with a single edit buffer.
type Form struct {
	Open   bool
	Mode   Mode
	Buffer EditBuffer
	Errors map[Field]string
}

// Intent is what a valid submit asks the task store to do.
type Intent struct {
	Mode    Mode
	Ref     task.Ref
	Title   string
	Summary string
}

// OpenCreate opens the form with an empty buffer.
func (f Form) OpenCreate() Form {
	return Form{Open: true, Mode: ModeCreate}
}

// OpenUpdate opens the form with the buffer filled from the referenced task.
func (f Form) OpenUpdate(tasks []task.Task, ref task.Ref) (Form, error) {
	i := ref.Resolve(tasks)
	if i < 0 {
		return f, ErrNotFound
	}
	t := tasks[i]
	return Form{
		Open: true,
		Mode: ModeUpdate,
		Buffer: EditBuffer{
			Title:   t.Title,
			Summary: t.Summary,
			Ref:     task.Ref{ID: t.ID, Index: i},
		},
	}, nil
}

// Close hides the form. The buffer is kept until the next open.
func (f Form) Close() Form {
	f.Open = false
	f.Errors = nil
	return f
}

// Set writes value into a field and clears that field's error.
func (f Form) Set(field Field, value string) Form {
	switch field {
	case FieldTitle:
		f.Buffer.Title = value
	case FieldSummary:
		f.Buffer.Summary = value
	}
	if f.Errors != nil {
		errs := make(map[Field]string, len(f.Errors))
		for k, v := range f.Errors {
			if k != field {
				errs[k] = v
			}
		}
		f.Errors = errs
	}
	return f
}

// Validate checks that title and summary are not blank.
func (f Form) Validate() error {
	errs := map[Field]string{}
	if msg := ValidateTitle(f.Buffer.Title); msg != "" {
		errs[FieldTitle] = msg
	}
	if msg := ValidateSummary(f.Buffer.Summary); msg != "" {
		errs[FieldSummary] = msg
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Submit validates the buffer. On failure the form stays open with field
// messages; on success it closes and returns the store intent.
func (f Form) Submit() (Form, Intent, error) {
	if !f.Open {
		return f, Intent{}, ErrFormClosed
	}
	if err := f.Validate(); err != nil {
		f.Errors = err.(*ValidationError).Fields
		return f, Intent{}, err
	}
	in := Intent{
		Mode:    f.Mode,
		Ref:     f.Buffer.Ref,
		Title:   f.Buffer.Title,
		Summary: f.Buffer.Summary,
	}
	return f.Close(), in, nil
}

// Heading is the modal title.
func (f Form) Heading() string {
	if f.Mode == ModeUpdate {
		return "Update Task"
	}
	return "New Task"
}

// SubmitLabel is the label of the confirm button.
func (f Form) SubmitLabel() string {
	if f.Mode == ModeUpdate {
		return "Update Task"
	}
	return "Create Task"
}

// ValidateTitle returns the field message for an invalid title, or "".
func ValidateTitle(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Title is required"
	}
	return ""
}

// ValidateSummary returns the field message for an invalid summary, or "".
func ValidateSummary(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Summary is required"
	}
	return ""
}
