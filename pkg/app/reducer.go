package app

import (
	"errors"
	"fmt"

	"tableflip.dev/taskboard/pkg/task"
)

// EffectKind names the side effect a reduction asks for.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectLoad
	EffectCreate
	EffectUpdate
	EffectComplete
	EffectDelete
	EffectReorder
	EffectSaveScheme
)

// Effect is a store operation to run after a reduction. Its outcome comes
// back as a TasksLoaded or OperationFailed action.
type Effect struct {
	Kind    EffectKind
	Ref     task.Ref
	Title   string
	Summary string
	From    int
	To      int
	Scheme  Scheme
}

// None reports whether there is nothing to run.
func (e Effect) None() bool {
	return e.Kind == EffectNone
}

// Reduce applies a to s. It never performs I/O.
func Reduce(s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case LoadTasks:
		s.Status = "Loading…"
		return s, Effect{Kind: EffectLoad}

	case TasksLoaded:
		s.Tasks = task.Clone(a.Tasks)
		s.Drag = s.Drag.Follow(s.Tasks)
		s.Loaded = true
		s.Err = nil
		s.Status = statusFor(a.Op)

	case OperationFailed:
		if a.Tasks != nil {
			s.Tasks = task.Clone(a.Tasks)
			s.Drag = s.Drag.Follow(s.Tasks)
		}
		s.Loaded = true
		s.Err = a.Err
		if errors.Is(a.Err, ErrNotFound) {
			s.Status = fmt.Sprintf("%s: task not found", a.Op)
		} else {
			s.Status = fmt.Sprintf("%s failed: %v", a.Op, a.Err)
		}

	case OpenCreate:
		s.Form = s.Form.OpenCreate()
		s.Drag = Drag{}

	case OpenUpdate:
		f, err := s.Form.OpenUpdate(s.Tasks, a.Ref)
		if err != nil {
			s.Status = "update: task not found"
			return s, Effect{}
		}
		s.Form = f
		s.Drag = Drag{}

	case CloseForm:
		s.Form = s.Form.Close()

	case SetField:
		s.Form = s.Form.Set(a.Field, a.Value)

	case SubmitForm:
		f, in, err := s.Form.Submit()
		s.Form = f
		if err != nil {
			return s, Effect{}
		}
		if in.Mode == ModeUpdate {
			return s, Effect{Kind: EffectUpdate, Ref: in.Ref, Title: in.Title, Summary: in.Summary}
		}
		return s, Effect{Kind: EffectCreate, Title: in.Title, Summary: in.Summary}

	case CompleteTask:
		return s, Effect{Kind: EffectComplete, Ref: a.Ref}

	case DeleteTask:
		return s, Effect{Kind: EffectDelete, Ref: a.Ref}

	case DragStart:
		if a.Index < 0 || a.Index >= len(s.Tasks) {
			return s, Effect{}
		}
		s.Drag = s.Drag.Start(a.Index)
		s.Drag.ID = s.Tasks[a.Index].ID

	case DragOver:
		s.Drag = s.Drag.Over(a.Index, len(s.Tasks))

	case DragEnd:
		from, to, ok := s.Drag.End(a.Dest)
		s.Drag = Drag{}
		if !ok || from == to {
			return s, Effect{}
		}
		return s, Effect{Kind: EffectReorder, From: from, To: to}

	case ToggleScheme:
		s.Scheme = s.Scheme.Toggle()
		return s, Effect{Kind: EffectSaveScheme, Scheme: s.Scheme}

	case SetScheme:
		if sc, ok := ParseScheme(string(a.Scheme)); ok {
			s.Scheme = sc
		}

	case SchemeSaved:
		if a.Err != nil {
			s.Status = fmt.Sprintf("saving display mode failed: %v", a.Err)
		}
	}
	return s, Effect{}
}

func statusFor(op string) string {
	switch op {
	case "create":
		return "Task created"
	case "update":
		return "Task updated"
	case "complete":
		return "Task completed"
	case "delete":
		return "Task deleted"
	case "reorder":
		return "Task moved"
	default:
		return ""
	}
}
