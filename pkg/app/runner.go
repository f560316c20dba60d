package app

import (
	"context"

	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/task"
)

// Runner executes effects against the task store.
type Runner struct {
	Store *Store
	Prefs store.Prefs
}

// Run performs e and reports its outcome as an action for Reduce.
func (r Runner) Run(ctx context.Context, e Effect) Action {
	var (
		op    string
		tasks []task.Task
		err   error
	)
	switch e.Kind {
	case EffectNone:
		return nil
	case EffectLoad:
		op = "load"
		tasks, err = r.Store.Load(ctx)
	case EffectCreate:
		op = "create"
		tasks, err = r.Store.Create(ctx, e.Title, e.Summary)
	case EffectUpdate:
		op = "update"
		tasks, err = r.Store.Update(ctx, e.Ref, e.Title, e.Summary)
	case EffectComplete:
		op = "complete"
		tasks, err = r.Store.Complete(ctx, e.Ref)
	case EffectDelete:
		op = "delete"
		tasks, err = r.Store.Delete(ctx, e.Ref)
	case EffectReorder:
		op = "reorder"
		tasks, err = r.Store.Reorder(ctx, e.From, e.To)
	case EffectSaveScheme:
		if r.Prefs == nil {
			return SchemeSaved{}
		}
		return SchemeSaved{Err: r.Prefs.SetScheme(string(e.Scheme))}
	default:
		return nil
	}
	if err != nil {
		return OperationFailed{Op: op, Err: err, Tasks: tasks}
	}
	return TasksLoaded{Op: op, Tasks: tasks}
}
