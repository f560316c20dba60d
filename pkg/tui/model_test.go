package tui

import (
	"context"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/task"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func newTestModel(t *testing.T, tasks ...task.Task) (Model, *store.Local) {
	t.Helper()
	local := store.NewLocal(t.TempDir(), nil)
	if len(tasks) > 0 {
		if err := local.Save(context.Background(), tasks); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	m := New(context.Background(), Options{
		Store:  app.NewStore(local, nil),
		Prefs:  local,
		Scheme: app.SchemeLight,
	})
	m = settle(t, m, m.Init())
	return m, local
}

// settle runs cmd and every command it leads to, feeding messages back into
// the model the way the Bubble Tea runtime would.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+j":
			msg = tea.KeyMsg{Type: tea.KeyCtrlJ}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = settle(t, next.(Model), cmd)
	}
	return m
}

func titles(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func seed() []task.Task {
	return []task.Task{
		{ID: "id-1", Title: "A", Summary: "first"},
		{ID: "id-2", Title: "B"},
		{ID: "id-3", Title: "C", Summary: "third"},
	}
}

func TestViewEmptyList(t *testing.T) {
	m, _ := newTestModel(t)
	view := stripANSI(m.View())
	if !strings.Contains(view, "My Tasks") {
		t.Fatalf("expected page title; view=%q", view)
	}
	if !strings.Contains(view, "You have no tasks") {
		t.Fatalf("expected empty message; view=%q", view)
	}
}

func TestViewRendersCards(t *testing.T) {
	m, _ := newTestModel(t, seed()...)
	view := stripANSI(m.View())
	for _, want := range []string{"[ ] 1. A", "first", "[ ] 2. B", "No summary was provided for this task", "third"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view; view=%q", want, view)
		}
	}
}

func TestCreateThroughModal(t *testing.T) {
	m, local := newTestModel(t)

	m = press(t, m, "n")
	if !m.State().Form.Open {
		t.Fatalf("expected form to open")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "New Task") || !strings.Contains(view, "Create Task") {
		t.Fatalf("expected create modal; view=%q", view)
	}

	m = press(t, m, "enter")
	if !m.State().Form.Open {
		t.Fatalf("empty submit must keep the form open")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Title is required") {
		t.Fatalf("expected validation message; view=%q", view)
	}

	m = press(t, m, "Buy milk", "tab", "2%", "enter")
	if m.State().Form.Open {
		t.Fatalf("valid submit should close the form")
	}
	want := []task.Task{{ID: "id-1", Title: "Buy milk", Summary: "2%"}}
	if diff := cmp.Diff(want, m.State().Tasks); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	saved, _ := local.Load(context.Background())
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Fatalf("saved mismatch (-want +got):\n%s", diff)
	}
}

func TestEditThroughModal(t *testing.T) {
	m, _ := newTestModel(t, seed()...)

	m = press(t, m, "j", "e")
	f := m.State().Form
	if !f.Open || f.Mode != app.ModeUpdate || f.Buffer.Title != "B" {
		t.Fatalf("expected update form for B, got %+v", f)
	}
	m = press(t, m, "2", "tab", "bee", "enter")
	got := m.State().Tasks[1]
	if got.Title != "B2" || got.Summary != "bee" || got.ID != "id-2" {
		t.Fatalf("unexpected task after edit: %+v", got)
	}
}

func TestCancelFormHasNoEffect(t *testing.T) {
	m, local := newTestModel(t, seed()...)
	m = press(t, m, "n", "Nope", "esc")
	if m.State().Form.Open {
		t.Fatalf("esc should close the form")
	}
	saved, _ := local.Load(context.Background())
	if len(saved) != 3 || len(m.State().Tasks) != 3 {
		t.Fatalf("cancel must not create a task")
	}
}

func TestCompleteAndDelete(t *testing.T) {
	m, _ := newTestModel(t, seed()...)

	m = press(t, m, "x")
	if !m.State().Tasks[0].Done {
		t.Fatalf("expected first task done")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "[x] 1. A") {
		t.Fatalf("expected done marker; view=%q", view)
	}

	m = press(t, m, "j", "j", "d")
	if diff := cmp.Diff([]string{"A", "B"}, titles(m.State().Tasks)); diff != "" {
		t.Fatalf("delete mismatch (-want +got):\n%s", diff)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor should stay on the list, got %d", m.cursor)
	}
}

func TestMoveWithKeys(t *testing.T) {
	m, local := newTestModel(t, seed()...)

	m = press(t, m, "m", "j", "j")
	if !m.State().Drag.Active {
		t.Fatalf("expected a drag in progress")
	}
	if diff := cmp.Diff([]string{"B", "C", "A"}, titles(m.State().Visible())); diff != "" {
		t.Fatalf("preview mismatch (-want +got):\n%s", diff)
	}

	m = press(t, m, "enter")
	if diff := cmp.Diff([]string{"B", "C", "A"}, titles(m.State().Tasks)); diff != "" {
		t.Fatalf("reorder mismatch (-want +got):\n%s", diff)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor should follow the moved task, got %d", m.cursor)
	}

	saved, _ := local.Load(context.Background())
	if diff := cmp.Diff([]string{"A", "B", "C"}, titles(saved)); diff != "" {
		t.Fatalf("order is kept in memory only by default (-want +got):\n%s", diff)
	}

	m = press(t, m, "m", "k", "esc")
	if diff := cmp.Diff([]string{"B", "C", "A"}, titles(m.State().Tasks)); diff != "" {
		t.Fatalf("cancelled move changed the list (-want +got):\n%s", diff)
	}
}

func TestToggleSchemePersists(t *testing.T) {
	m, local := newTestModel(t)

	m = press(t, m, "ctrl+j")
	if m.State().Scheme != app.SchemeDark {
		t.Fatalf("expected dark scheme, got %q", m.State().Scheme)
	}
	if got, _ := local.Scheme(); got != "dark" {
		t.Fatalf("expected stored preference, got %q", got)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "☾ dark") {
		t.Fatalf("expected dark indicator; view=%q", view)
	}

	m = press(t, m, "n", "ctrl+j")
	if m.State().Scheme != app.SchemeLight || !m.State().Form.Open {
		t.Fatalf("toggle should work with the modal open")
	}
}

func TestReloadPicksUpOutsideChanges(t *testing.T) {
	m, local := newTestModel(t, seed()...)
	if err := local.Save(context.Background(), seed()[:1]); err != nil {
		t.Fatal(err)
	}
	m = press(t, m, "r")
	if len(m.State().Tasks) != 1 {
		t.Fatalf("expected reload to pick up the new list, got %v", titles(m.State().Tasks))
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestUntitledAndDoneTasks(t *testing.T) {
	m, local := newTestModel(t,
		task.Task{ID: "id-1", Title: "A", Summary: "first", Done: true},
		task.Task{ID: "id-2", Title: "  ", Summary: "from a remote"},
	)

	view := stripANSI(m.View())
	if !strings.Contains(view, "[ ] 2. Untitled task") {
		t.Fatalf("expected blank title to be marked; view=%q", view)
	}
	if strings.Contains(view, "x complete") {
		t.Fatalf("done task should not offer complete; view=%q", view)
	}

	m = press(t, m, "x")
	if m.State().Status == "Task completed" {
		t.Fatalf("completing a done task should do nothing")
	}

	m = press(t, m, "j")
	if view := stripANSI(m.View()); !strings.Contains(view, "x complete") {
		t.Fatalf("open task should offer complete; view=%q", view)
	}
	m = press(t, m, "x")
	saved, _ := local.Load(context.Background())
	if !saved[1].Done {
		t.Fatalf("expected untitled task completed, got %+v", saved[1])
	}
}
