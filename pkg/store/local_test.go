package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/task"
)

func TestLocalLoadMissingIsEmpty(t *testing.T) {
	l := NewLocal(filepath.Join(t.TempDir(), "db"), zap.NewNop())
	got, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
}

func TestLocalSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(t.TempDir(), nil)
	want := []task.Task{
		{ID: "id-3", Title: "C", Summary: "third"},
		{ID: "id-1", Title: "A", Done: true},
		{ID: "id-2", Title: "B", Summary: "second"},
	}
	if err := l.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := l.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalStoresDoneField(t *testing.T) {
	base := t.TempDir()
	l := NewLocal(base, nil)
	if err := l.Save(context.Background(), []task.Task{{ID: "id-1", Title: "A", Done: true}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(base, "tasks"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := `[{"id":"id-1","title":"A","summary":"","done":true}]`; string(raw) != want {
		t.Fatalf("stored %s, want %s", raw, want)
	}
}

func TestLocalCorruptDataIsEmpty(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "tasks"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := NewLocal(base, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
}

func TestLocalCreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	l := NewLocal(base, nil)

	first, err := l.Create(ctx, task.New("Buy milk", "2%"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := l.Create(ctx, task.New("Walk dog", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != "id-1" || second.ID != "id-2" {
		t.Fatalf("unexpected ids %q, %q", first.ID, second.ID)
	}

	if err := l.Remove(ctx, second.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// A fresh handle restores the counter, so the removed id is not reused.
	third, err := NewLocal(base, nil).Create(ctx, task.New("Read", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.ID != "id-3" {
		t.Fatalf("expected id-3 after reopen, got %q", third.ID)
	}
}

func TestLocalCustomIDs(t *testing.T) {
	l := NewLocal(t.TempDir(), nil)
	l.NewID = func(existing []task.Task) string { return "fixed" }
	got, err := l.Create(context.Background(), task.New("A", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "fixed" {
		t.Fatalf("expected custom id, got %q", got.ID)
	}
}

func TestLocalReplaceAndRemoveMissing(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(t.TempDir(), nil)
	created, err := l.Create(ctx, task.New("A", "a"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := l.Replace(ctx, created.ID, task.Task{ID: "ignored", Title: "A2", Summary: "a2", Done: true}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ := l.Load(ctx)
	want := []task.Task{{ID: created.ID, Title: "A2", Summary: "a2", Done: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("replace mismatch (-want +got):\n%s", diff)
	}

	if err := l.Replace(ctx, "id-99", task.Task{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := l.Remove(ctx, "id-99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got, _ := l.Load(ctx); len(got) != 1 {
		t.Fatalf("failed remove changed the list: %#v", got)
	}
}

func TestLocalScheme(t *testing.T) {
	l := NewLocal(t.TempDir(), nil)
	got, err := l.Scheme()
	if err != nil || got != "" {
		t.Fatalf("Scheme() = %q, %v; want empty", got, err)
	}
	if err := l.SetScheme("dark"); err != nil {
		t.Fatalf("SetScheme: %v", err)
	}
	if got, _ := l.Scheme(); got != "dark" {
		t.Fatalf("Scheme() = %q, want dark", got)
	}
}
