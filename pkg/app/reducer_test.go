package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/task"
)

func loaded(tasks []task.Task) State {
	s, _ := Reduce(NewState(SchemeLight), TasksLoaded{Op: "load", Tasks: tasks})
	return s
}

func TestReduceInvalidSubmitKeepsModalOpen(t *testing.T) {
	s := loaded(abcd())
	s, _ = Reduce(s, OpenCreate{})
	s, _ = Reduce(s, SetField{Field: FieldSummary, Value: "no title"})

	s, eff := Reduce(s, SubmitForm{})
	if !eff.None() {
		t.Fatalf("invalid submit must not emit an effect, got %+v", eff)
	}
	if !s.Form.Open {
		t.Fatalf("modal should stay open")
	}
	if s.Form.Errors[FieldTitle] != "Title is required" {
		t.Fatalf("missing title error: %v", s.Form.Errors)
	}
	if len(s.Tasks) != 4 {
		t.Fatalf("list changed: %v", titles(s.Tasks))
	}
}

func TestReduceSubmitEmitsStoreEffects(t *testing.T) {
	s := loaded(abcd())
	s, _ = Reduce(s, OpenCreate{})
	s, _ = Reduce(s, SetField{Field: FieldTitle, Value: "Buy milk"})
	s, _ = Reduce(s, SetField{Field: FieldSummary, Value: "2%"})
	s, eff := Reduce(s, SubmitForm{})
	if s.Form.Open {
		t.Fatalf("modal should close")
	}
	if diff := cmp.Diff(Effect{Kind: EffectCreate, Title: "Buy milk", Summary: "2%"}, eff); diff != "" {
		t.Fatalf("effect mismatch (-want +got):\n%s", diff)
	}

	s, _ = Reduce(s, OpenUpdate{Ref: task.At(1)})
	s, _ = Reduce(s, SetField{Field: FieldSummary, Value: "bee"})
	_, eff = Reduce(s, SubmitForm{})
	want := Effect{Kind: EffectUpdate, Ref: task.Ref{ID: "id-2", Index: 1}, Title: "B", Summary: "bee"}
	if diff := cmp.Diff(want, eff); diff != "" {
		t.Fatalf("effect mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceOpenUpdateMissing(t *testing.T) {
	s, eff := Reduce(loaded(abcd()), OpenUpdate{Ref: task.ByID("gone")})
	if s.Form.Open || !eff.None() {
		t.Fatalf("missing task must not open the form")
	}
}

func TestReduceDrag(t *testing.T) {
	s := loaded(abcd())
	s, _ = Reduce(s, DragStart{Index: 0})
	s, _ = Reduce(s, DragOver{Index: 2})
	if diff := cmp.Diff([]string{"B", "C", "A", "D"}, titles(s.Visible())); diff != "" {
		t.Fatalf("preview mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, titles(s.Tasks)); diff != "" {
		t.Fatalf("drag must not change the list (-want +got):\n%s", diff)
	}

	dest := 2
	s2, eff := Reduce(s, DragEnd{Dest: &dest})
	if diff := cmp.Diff(Effect{Kind: EffectReorder, From: 0, To: 2}, eff); diff != "" {
		t.Fatalf("effect mismatch (-want +got):\n%s", diff)
	}
	if s2.Drag.Active {
		t.Fatalf("drag should end")
	}

	s3, eff := Reduce(s, DragEnd{})
	if !eff.None() || s3.Drag.Active {
		t.Fatalf("drop outside the list must be a no-op")
	}

	same := 0
	if _, eff := Reduce(s, DragEnd{Dest: &same}); !eff.None() {
		t.Fatalf("drop on the source must be a no-op")
	}
}

func TestReduceDragFollowsTaskAcrossReload(t *testing.T) {
	abc := abcd()[:3]
	s := loaded(abc)
	s, _ = Reduce(s, DragStart{Index: 1})

	// Another process deleted A while B was held.
	s, _ = Reduce(s, TasksLoaded{Op: "load", Tasks: []task.Task{abc[1], abc[2]}})
	if !s.Drag.Active || s.Drag.Source != 0 {
		t.Fatalf("drag should follow B to index 0, got %+v", s.Drag)
	}
	dest := 1
	_, eff := Reduce(s, DragEnd{Dest: &dest})
	if diff := cmp.Diff(Effect{Kind: EffectReorder, From: 0, To: 1}, eff); diff != "" {
		t.Fatalf("effect mismatch (-want +got):\n%s", diff)
	}

	s, _ = Reduce(loaded(abc), DragStart{Index: 1})
	s, _ = Reduce(s, TasksLoaded{Op: "load", Tasks: []task.Task{abc[0], abc[2]}})
	if s.Drag.Active {
		t.Fatalf("drag of a removed task should be cancelled")
	}
	if _, eff := Reduce(s, DragEnd{Dest: &dest}); !eff.None() {
		t.Fatalf("drop after cancel must be a no-op, got %+v", eff)
	}
}

func TestReduceOperationFailedKeepsList(t *testing.T) {
	s := loaded(abcd())
	s, _ = Reduce(s, OperationFailed{Op: "delete", Err: &OpError{Op: "delete", Err: ErrNotFound}, Tasks: abcd()})
	if s.Status != "delete: task not found" {
		t.Fatalf("unexpected status %q", s.Status)
	}
	boom := errors.New("boom")
	s, _ = Reduce(s, OperationFailed{Op: "create", Err: boom})
	if s.Status != "create failed: boom" || !errors.Is(s.Err, boom) {
		t.Fatalf("unexpected status %q", s.Status)
	}
	if len(s.Tasks) != 4 {
		t.Fatalf("failure without a list must keep the old one")
	}

	s, _ = Reduce(s, TasksLoaded{Op: "complete", Tasks: abcd()})
	if s.Err != nil || s.Status != "Task completed" {
		t.Fatalf("success should clear the error, got %q %v", s.Status, s.Err)
	}
}

func TestReduceToggleScheme(t *testing.T) {
	s, eff := Reduce(NewState(""), ToggleScheme{})
	if s.Scheme != SchemeDark {
		t.Fatalf("expected dark, got %q", s.Scheme)
	}
	if diff := cmp.Diff(Effect{Kind: EffectSaveScheme, Scheme: SchemeDark}, eff); diff != "" {
		t.Fatalf("effect mismatch (-want +got):\n%s", diff)
	}
	s, _ = Reduce(s, ToggleScheme{})
	if s.Scheme != SchemeLight {
		t.Fatalf("expected light, got %q", s.Scheme)
	}
}

func TestRunnerRoundTrip(t *testing.T) {
	ctx := context.Background()
	local := store.NewLocal(t.TempDir(), nil)
	r := Runner{Store: NewStore(local, nil), Prefs: local}

	s := NewState(SchemeLight)
	s, eff := Reduce(s, LoadTasks{})
	s, _ = Reduce(s, r.Run(ctx, eff))
	if !s.Loaded || len(s.Tasks) != 0 {
		t.Fatalf("expected empty loaded list, got %+v", s)
	}

	s, _ = Reduce(s, OpenCreate{})
	s, _ = Reduce(s, SetField{Field: FieldTitle, Value: "Buy milk"})
	s, _ = Reduce(s, SetField{Field: FieldSummary, Value: "2%"})
	s, eff = Reduce(s, SubmitForm{})
	s, _ = Reduce(s, r.Run(ctx, eff))
	if len(s.Tasks) != 1 || s.Status != "Task created" {
		t.Fatalf("create did not land: %+v", s)
	}

	s, eff = Reduce(s, DeleteTask{Ref: task.ByID("missing")})
	s, _ = Reduce(s, r.Run(ctx, eff))
	if !errors.Is(s.Err, ErrNotFound) || len(s.Tasks) != 1 {
		t.Fatalf("missing delete should fail softly: %+v", s)
	}

	s, eff = Reduce(s, ToggleScheme{})
	if act := r.Run(ctx, eff); act != (SchemeSaved{}) {
		t.Fatalf("unexpected scheme result %#v", act)
	}
	if got, _ := local.Scheme(); got != string(s.Scheme) {
		t.Fatalf("scheme not saved, got %q", got)
	}
}

func TestReduceSetScheme(t *testing.T) {
	s, eff := Reduce(NewState(SchemeLight), SetScheme{Scheme: SchemeDark})
	if s.Scheme != SchemeDark || !eff.None() {
		t.Fatalf("SetScheme should apply without saving, got %q %+v", s.Scheme, eff)
	}
	s, _ = Reduce(s, SetScheme{Scheme: "sepia"})
	if s.Scheme != SchemeDark {
		t.Fatalf("unknown schemes must be ignored, got %q", s.Scheme)
	}
}
