// Package tui is the Bubble Tea front end of the task board.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/task"
)

// Options wires the UI to a task store.
type Options struct {
	Store *app.Store
	// Prefs persists the display mode; nil keeps it for the session only.
	Prefs store.Prefs
	// Watcher reloads the list when another process changes it; optional.
	Watcher store.Watcher
	// Scheme is the initial display mode.
	Scheme app.Scheme
	Log    *zap.Logger
}

// Model is the Bubble Tea model. All task state lives in app.State and is
// changed only through app.Reduce.
type Model struct {
	ctx     context.Context
	runner  app.Runner
	watcher store.Watcher
	log     *zap.Logger

	state  app.State
	cursor int

	inputs [2]textinput.Model
	focus  app.Field

	keys     keyMap
	help     help.Model
	guide    *guide
	showHelp bool

	width  int
	height int
}

// messages
type actionMsg struct{ action app.Action }
type watchStartedMsg struct {
	events <-chan store.Event
	err    error
}
type storeEventMsg struct {
	event  store.Event
	events <-chan store.Event
}
type watchClosedMsg struct{}

// New creates the UI model. The list is empty until Init's load returns.
func New(ctx context.Context, opts Options) Model {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		ctx:     ctx,
		runner:  app.Runner{Store: opts.Store, Prefs: opts.Prefs},
		watcher: opts.Watcher,
		log:     log,
		state:   app.NewState(opts.Scheme),
		keys:    defaultKeys(),
		help:    help.New(),
		guide:   newGuide(),
		width:   80,
		height:  24,
	}
	m.inputs[app.FieldTitle] = newInput("What needs doing?", 120)
	m.inputs[app.FieldSummary] = newInput("A few words about it", 500)
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Run starts the UI on the terminal and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// State returns the application state being rendered.
func (m Model) State() app.State {
	return m.state
}

// Init loads the list and starts watching for outside changes.
func (m Model) Init() tea.Cmd {
	_, cmd := m.dispatch(app.LoadTasks{})
	return tea.Batch(cmd, m.startWatch())
}

// dispatch reduces a and turns any resulting effect into a command.
func (m Model) dispatch(a app.Action) (Model, tea.Cmd) {
	state, eff := app.Reduce(m.state, a)
	m.state = state
	m.clampCursor()
	if failed, ok := a.(app.OperationFailed); ok {
		m.log.Debug("operation failed", zap.String("op", failed.Op), zap.Error(failed.Err))
	}
	if eff.None() {
		return m, nil
	}
	ctx, runner := m.ctx, m.runner
	return m, func() tea.Msg {
		next := runner.Run(ctx, eff)
		if next == nil {
			return nil
		}
		return actionMsg{action: next}
	}
}

func (m Model) startWatch() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ctx, w := m.ctx, m.watcher
	return func() tea.Msg {
		events, err := w.Watch(ctx)
		return watchStartedMsg{events: events, err: err}
	}
}

func waitForEvent(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return storeEventMsg{event: ev, events: events}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		for i := range m.inputs {
			m.inputs[i].Width = max(min(msg.Width-16, 60), 10)
		}
		return m, nil

	case actionMsg:
		return m.dispatch(msg.action)

	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("watching tasks failed", zap.Error(msg.err))
			return m, nil
		}
		return m, waitForEvent(msg.events)

	case storeEventMsg:
		m.log.Debug("task list changed on disk", zap.Int("event", int(msg.event.Type)))
		next, cmd := m.dispatch(app.LoadTasks{})
		return next, tea.Batch(cmd, waitForEvent(msg.events))

	case watchClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Scheme) {
			return m.dispatch(app.ToggleScheme{})
		}
		switch {
		case m.state.Form.Open:
			return m.updateForm(msg)
		case m.showHelp:
			return m.updateHelp(msg)
		case m.state.Drag.Active:
			return m.updateDrag(msg)
		default:
			return m.updateList(msg)
		}

	case tea.MouseMsg:
		if m.showHelp {
			return m, m.guide.Update(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(app.LoadTasks{})
	case key.Matches(msg, m.keys.New):
		next, cmd := m.dispatch(app.OpenCreate{})
		return next.syncInputs(), cmd
	case key.Matches(msg, m.keys.Edit):
		ref, ok := m.selected()
		if !ok {
			return m, nil
		}
		next, cmd := m.dispatch(app.OpenUpdate{Ref: ref})
		return next.syncInputs(), cmd
	case key.Matches(msg, m.keys.Done):
		if t, ok := m.selectedTask(); ok && !t.Done {
			ref, _ := m.selected()
			return m.dispatch(app.CompleteTask{Ref: ref})
		}
	case key.Matches(msg, m.keys.Delete):
		if ref, ok := m.selected(); ok {
			return m.dispatch(app.DeleteTask{Ref: ref})
		}
	case key.Matches(msg, m.keys.Grab):
		if _, ok := m.selected(); ok {
			return m.dispatch(app.DragStart{Index: m.cursor})
		}
	}
	return m, nil
}

func (m Model) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		next, cmd := m.dispatch(app.DragOver{Index: m.state.Drag.Target - 1})
		next.cursor = next.state.Drag.Target
		return next, cmd
	case key.Matches(msg, m.keys.Down):
		next, cmd := m.dispatch(app.DragOver{Index: m.state.Drag.Target + 1})
		next.cursor = next.state.Drag.Target
		return next, cmd
	case key.Matches(msg, m.keys.Drop):
		dest := m.state.Drag.Target
		next, cmd := m.dispatch(app.DragEnd{Dest: &dest})
		next.cursor = dest
		return next, cmd
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		source := m.state.Drag.Source
		next, cmd := m.dispatch(app.DragEnd{})
		next.cursor = source
		return next, cmd
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.dispatch(app.CloseForm{})
	case key.Matches(msg, m.keys.Submit):
		return m.dispatch(app.SubmitForm{})
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		return m.focusField(1 - m.focus), nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	next, setCmd := m.dispatch(app.SetField{Field: m.focus, Value: m.inputs[m.focus].Value()})
	return next, tea.Batch(cmd, setCmd)
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.showHelp = false
		return m, nil
	}
	return m, m.guide.Update(msg)
}

// syncInputs copies the form buffer into the text inputs after the form
// opened and focuses the title.
func (m Model) syncInputs() Model {
	if !m.state.Form.Open {
		return m
	}
	m.inputs[app.FieldTitle].SetValue(m.state.Form.Buffer.Title)
	m.inputs[app.FieldSummary].SetValue(m.state.Form.Buffer.Summary)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
	return m.focusField(app.FieldTitle)
}

func (m Model) focusField(f app.Field) Model {
	m.focus = f
	for i := range m.inputs {
		if app.Field(i) == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// selected references the task under the cursor by id and position.
func (m Model) selected() (task.Ref, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Tasks) {
		return task.Ref{}, false
	}
	return task.Ref{ID: m.state.Tasks[m.cursor].ID, Index: m.cursor}, true
}

func (m Model) selectedTask() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Tasks) {
		return task.Task{}, false
	}
	return m.state.Tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
