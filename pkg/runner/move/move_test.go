package move

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/task"
)

func TestMovePersistsOrder(t *testing.T) {
	ctx := context.Background()
	local := store.NewLocal(t.TempDir(), nil)
	if err := local.Save(ctx, []task.Task{{ID: "id-1", Title: "A"}, {ID: "id-2", Title: "B"}, {ID: "id-3", Title: "C"}}); err != nil {
		t.Fatal(err)
	}
	s := app.NewStore(local, nil)
	s.PersistOrder = true

	m := &Move{Store: s, Ref: "1", Position: 3, Out: &bytes.Buffer{}}
	if err := m.Do(ctx); err != nil {
		t.Fatalf("Do() = %v", err)
	}
	saved, _ := local.Load(ctx)
	got := []string{saved[0].Title, saved[1].Title, saved[2].Title}
	if diff := cmp.Diff([]string{"B", "C", "A"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	m = &Move{Store: s, Ref: "1", Position: 4, Out: &bytes.Buffer{}}
	if err := m.Do(ctx); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
