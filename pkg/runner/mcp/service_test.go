package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/task"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	local := store.NewLocal(t.TempDir(), nil)
	return NewService(app.NewStore(local, nil), nil)
}

func seed(t *testing.T, svc *Service, titles ...string) {
	t.Helper()
	for _, title := range titles {
		if _, err := svc.CreateTask(context.Background(), title, title+" summary"); err != nil {
			t.Fatalf("CreateTask(%q) failed: %v", title, err)
		}
	}
}

func titles(tasks []TaskDTO) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestServiceCreateTask(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.CreateTask(ctx, "Buy milk", "2%")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	want := TaskDTO{ID: "id-1", Position: 1, Title: "Buy milk", Summary: "2%"}
	if diff := cmp.Diff(want, dto); diff != "" {
		t.Fatalf("dto mismatch (-want +got):\n%s", diff)
	}

	_, err = svc.CreateTask(ctx, "", "no title")
	var verr *app.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	tasks, _ := svc.ListTasks(ctx)
	if len(tasks) != 1 {
		t.Fatalf("invalid create must not add a task")
	}
}

func TestServiceUpdateKeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	seed(t, svc, "A", "B")

	if _, err := svc.CompleteTask(ctx, "2"); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	title := "B2"
	dto, err := svc.UpdateTask(ctx, UpdateTaskOptions{Ref: "id-2", Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	want := TaskDTO{ID: "id-2", Position: 2, Title: "B2", Summary: "B summary", Done: true}
	if diff := cmp.Diff(want, dto); diff != "" {
		t.Fatalf("dto mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceDeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	seed(t, svc, "A", "B", "C")

	removed, err := svc.DeleteTask(ctx, "#2")
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if removed.ID != "id-2" {
		t.Fatalf("expected id-2 removed, got %+v", removed)
	}
	if _, err := svc.DeleteTask(ctx, "id-2"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.CompleteTask(ctx, "9"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for position 9, got %v", err)
	}
	tasks, _ := svc.ListTasks(ctx)
	if diff := cmp.Diff([]string{"A", "C"}, titles(tasks)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceMoveTask(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	seed(t, svc, "A", "B", "C", "D")

	tasks, err := svc.MoveTask(ctx, "1", 3)
	if err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "C", "A", "D"}, titles(tasks)); diff != "" {
		t.Fatalf("move mismatch (-want +got):\n%s", diff)
	}
	if tasks[2].Position != 3 {
		t.Fatalf("expected positions to follow the new order")
	}
	if _, err := svc.MoveTask(ctx, "1", 5); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunnerRequiresStore(t *testing.T) {
	if _, err := (Runner{}).NewServer(); err == nil {
		t.Fatalf("expected error without a store")
	}
	srv, err := Runner{Store: app.NewStore(store.NewLocal(t.TempDir(), nil), nil)}.NewServer()
	if err != nil || srv == nil {
		t.Fatalf("NewServer() = %v, %v", srv, err)
	}
}

func TestTemplateArg(t *testing.T) {
	if got := templateArg([]string{"id-1"}); got != "id-1" {
		t.Fatalf("got %q", got)
	}
	if got := templateArg("2"); got != "2" {
		t.Fatalf("got %q", got)
	}
	if got := templateArg(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestHandlerServesOnlyEndpointPath(t *testing.T) {
	r := Runner{Store: app.NewStore(store.NewLocal(t.TempDir(), nil), nil), HTTPEndpointPath: "rpc"}
	srv, err := r.NewServer()
	if err != nil {
		t.Fatal(err)
	}
	if got := r.endpointPath(); got != "/rpc" {
		t.Fatalf("endpointPath() = %q, want /rpc", got)
	}

	rec := httptest.NewRecorder()
	r.Handler(srv).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /elsewhere = %d, want 404", rec.Code)
	}
}

func TestServiceCreateTaskOnNewestFirstRemote(t *testing.T) {
	records := []task.Record{{ID: "3", Title: "Old", Summary: "from before"}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			var body task.Body
			_ = json.NewDecoder(r.Body).Decode(&body)
			rec := task.Record{ID: "7", Title: body.Title, Summary: body.Summary}
			records = append([]task.Record{rec}, records...)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]task.Record{"data": rec})
			return
		}
		_ = json.NewEncoder(w).Encode(task.Envelope{Data: records})
	}))
	defer srv.Close()

	svc := NewService(app.NewStore(store.NewRemote(srv.URL, time.Second, nil), nil), nil)
	got, err := svc.CreateTask(context.Background(), "New", "just now")
	if err != nil {
		t.Fatalf("CreateTask() = %v", err)
	}
	want := TaskDTO{ID: "7", Position: 1, Title: "New", Summary: "just now"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("created task (-want, +got): %s", diff)
	}
}
