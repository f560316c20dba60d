package app

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/taskboard/pkg/task"
)

func TestFormSubmitRejectsBlankFields(t *testing.T) {
	tests := map[string]struct {
		title, summary string
		want           map[Field]string
	}{
		"both empty": {want: map[Field]string{
			FieldTitle:   "Title is required",
			FieldSummary: "Summary is required",
		}},
		"blank title":   {title: "   ", summary: "s", want: map[Field]string{FieldTitle: "Title is required"}},
		"blank summary": {title: "t", summary: "\t", want: map[Field]string{FieldSummary: "Summary is required"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := Form{}.OpenCreate().Set(FieldTitle, tc.title).Set(FieldSummary, tc.summary)
			got, _, err := f.Submit()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !got.Open {
				t.Fatalf("form must stay open after a failed submit")
			}
			if diff := cmp.Diff(tc.want, got.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormSetClearsFieldError(t *testing.T) {
	f, _, _ := Form{}.OpenCreate().Submit()
	f = f.Set(FieldTitle, "Buy milk")
	if _, ok := f.Errors[FieldTitle]; ok {
		t.Fatalf("title error should be cleared")
	}
	if _, ok := f.Errors[FieldSummary]; !ok {
		t.Fatalf("summary error should remain")
	}
}

func TestFormCreateIntent(t *testing.T) {
	f := Form{}.OpenCreate().Set(FieldTitle, "Buy milk").Set(FieldSummary, "2%")
	if f.Heading() != "New Task" || f.SubmitLabel() != "Create Task" {
		t.Fatalf("unexpected labels %q / %q", f.Heading(), f.SubmitLabel())
	}
	got, in, err := f.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Open {
		t.Fatalf("form should close after a valid submit")
	}
	want := Intent{Mode: ModeCreate, Title: "Buy milk", Summary: "2%"}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Fatalf("intent mismatch (-want +got):\n%s", diff)
	}
}

func TestFormUpdateCarriesTaskIdentity(t *testing.T) {
	tasks := abcd()
	tasks[2].Summary = "see"

	f, err := Form{}.OpenUpdate(tasks, task.ByID("id-3"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if f.Heading() != "Update Task" || f.SubmitLabel() != "Update Task" {
		t.Fatalf("unexpected labels %q / %q", f.Heading(), f.SubmitLabel())
	}
	if f.Buffer.Title != "C" || f.Buffer.Summary != "see" {
		t.Fatalf("buffer not filled: %+v", f.Buffer)
	}

	_, in, err := f.Set(FieldTitle, "C2").Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := Intent{Mode: ModeUpdate, Ref: task.Ref{ID: "id-3", Index: 2}, Title: "C2", Summary: "see"}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Fatalf("intent mismatch (-want +got):\n%s", diff)
	}

	if _, err := (Form{}).OpenUpdate(tasks, task.At(9)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFormSubmitClosed(t *testing.T) {
	if _, _, err := (Form{}).Submit(); !errors.Is(err, ErrFormClosed) {
		t.Fatalf("expected ErrFormClosed, got %v", err)
	}
}
