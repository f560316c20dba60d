// Package app is the task list core: the task store that keeps the ordered
// list in memory and mirrors it to a persistence adapter, the form and
// reorder controllers, and the reducer that drives the user interfaces.
package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/store"
	"tableflip.dev/taskboard/pkg/task"
)

// Store keeps the ordered task list and mirrors every change to Adapter.
//
// With a whole-list adapter (store.Saver) a change is applied in memory and
// the full list is saved. With a request adapter the change is sent and the
// full list reloaded, whatever the request's outcome. Failures leave the
// in-memory list as it was and are returned as *OpError.
type Store struct {
	Adapter store.Adapter
	Log     *zap.Logger

	// PersistOrder saves the list after a reorder. Without it the order only
	// lives in memory until the next whole-list save.
	PersistOrder bool

	mu    sync.Mutex
	tasks []task.Task
	seq   *task.Sequence
}

// NewStore creates a store over adapter with an empty list; call Load to
// fill it.
func NewStore(adapter store.Adapter, log *zap.Logger) *Store {
	return &Store{Adapter: adapter, Log: log}
}

// Tasks returns a copy of the current list.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.Clone(s.tasks)
}

// Load replaces the list with the adapter's.
func (s *Store) Load(ctx context.Context) ([]task.Task, error) {
	tasks, err := s.Adapter.Load(ctx)
	if err != nil {
		return s.Tasks(), s.fail("load", "", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = task.Clone(tasks)
	s.logger().Debug("loaded tasks", zap.Int("count", len(tasks)))
	return task.Clone(s.tasks), nil
}

// Create appends an open task. Titles are not checked here; see Form.
func (s *Store) Create(ctx context.Context, title, summary string) ([]task.Task, error) {
	_, tasks, err := s.Append(ctx, title, summary)
	return tasks, err
}

// Append is Create that also returns the new task as stored: with the
// client allocated id locally, or the server's record remotely. Remote
// lists need not keep creation order, so look the task up by id.
func (s *Store) Append(ctx context.Context, title, summary string) (task.Task, []task.Task, error) {
	t := task.New(title, summary)

	if saver, ok := s.Adapter.(store.Saver); ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.ID = s.nextID(s.tasks)
		next := append(task.Clone(s.tasks), t)
		if err := saver.Save(ctx, next); err != nil {
			return task.Task{}, task.Clone(s.tasks), s.fail("create", "", err)
		}
		s.tasks = next
		s.logger().Debug("created task", zap.String("id", t.ID))
		return t, task.Clone(s.tasks), nil
	}

	created, err := s.Adapter.Create(ctx, t)
	if err == nil {
		s.logger().Debug("created task", zap.String("id", created.ID))
	} else {
		created = task.Task{}
	}
	tasks, err := s.reloadAfter(ctx, "create", "", err)
	return created, tasks, err
}

// Update overwrites title and summary of the referenced task. The
// completion flag is untouched.
func (s *Store) Update(ctx context.Context, ref task.Ref, title, summary string) ([]task.Task, error) {
	return s.change(ctx, "update", ref, func(t task.Task) task.Task {
		t.Title = title
		t.Summary = summary
		return t
	})
}

// Complete marks the referenced task done. Completing twice is harmless.
func (s *Store) Complete(ctx context.Context, ref task.Ref) ([]task.Task, error) {
	return s.change(ctx, "complete", ref, func(t task.Task) task.Task {
		t.Done = true
		return t
	})
}

// Delete removes the referenced task.
func (s *Store) Delete(ctx context.Context, ref task.Ref) ([]task.Task, error) {
	return s.change(ctx, "delete", ref, nil)
}

// Reorder moves the task at from to position to. The new order is saved
// only with PersistOrder.
func (s *Store) Reorder(ctx context.Context, from, to int) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Move(s.tasks, from, to)
	if err != nil {
		return task.Clone(s.tasks), s.fail("reorder", "", err)
	}
	if s.PersistOrder {
		saver, ok := s.Adapter.(store.Saver)
		if !ok {
			return task.Clone(s.tasks), s.fail("reorder", "", ErrOrderNotPersisted)
		}
		if err := saver.Save(ctx, next); err != nil {
			return task.Clone(s.tasks), s.fail("reorder", "", err)
		}
	}
	s.tasks = next
	return task.Clone(s.tasks), nil
}

// change applies edit to the referenced task, or removes it when edit is nil.
func (s *Store) change(ctx context.Context, op string, ref task.Ref, edit func(task.Task) task.Task) ([]task.Task, error) {
	if saver, ok := s.Adapter.(store.Saver); ok {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := ref.Resolve(s.tasks)
		if i < 0 {
			return task.Clone(s.tasks), s.fail(op, ref.String(), ErrNotFound)
		}
		next := task.Clone(s.tasks)
		if edit == nil {
			next = append(next[:i], next[i+1:]...)
		} else {
			next[i] = edit(next[i])
		}
		if err := saver.Save(ctx, next); err != nil {
			return task.Clone(s.tasks), s.fail(op, ref.String(), err)
		}
		s.tasks = next
		return task.Clone(s.tasks), nil
	}

	s.mu.Lock()
	i := ref.Resolve(s.tasks)
	var current task.Task
	if i >= 0 {
		current = s.tasks[i]
	}
	s.mu.Unlock()
	if i < 0 {
		return s.Tasks(), s.fail(op, ref.String(), ErrNotFound)
	}

	var err error
	if edit == nil {
		err = s.Adapter.Remove(ctx, current.ID)
	} else {
		err = s.Adapter.Replace(ctx, current.ID, edit(current))
	}
	return s.reloadAfter(ctx, op, current.ID, err)
}

// reloadAfter reloads the full list after a request. The request's error
// wins over the reload's.
func (s *Store) reloadAfter(ctx context.Context, op, ref string, reqErr error) ([]task.Task, error) {
	var failure error
	if reqErr != nil {
		failure = s.fail(op, ref, reqErr)
	}
	tasks, err := s.Adapter.Load(ctx)
	if err != nil {
		loadErr := s.fail("reload", "", err)
		if failure == nil {
			failure = loadErr
		}
		return s.Tasks(), failure
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = task.Clone(tasks)
	return task.Clone(s.tasks), failure
}

func (s *Store) nextID(existing []task.Task) string {
	if alloc, ok := s.Adapter.(store.Allocator); ok {
		return alloc.NextID(existing)
	}
	if s.seq == nil {
		s.seq = task.NewSequence(0)
	}
	return s.seq.Next(existing)
}

// fail logs err and wraps it for the caller.
func (s *Store) fail(op, ref string, err error) error {
	log := s.logger().With(zap.String("op", op))
	if ref != "" {
		log = log.With(zap.String("ref", ref))
	}
	if errors.Is(err, ErrNotFound) {
		log.Info("task not found", zap.Error(err))
	} else {
		log.Error("task store operation failed", zap.Error(err))
	}
	return &OpError{Op: op, Ref: ref, Err: err}
}

func (s *Store) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
