// Package mcp provides the Model Context Protocol server integration for the
// task board.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/task"
)

// Service adapts the task store to the shapes the MCP tools exchange.
type Service struct {
	Store *app.Store
	Log   *zap.Logger
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Done     bool   `json:"done"`
}

// UpdateTaskOptions captures an edit; nil fields keep their current value.
type UpdateTaskOptions struct {
	Ref     string
	Title   *string
	Summary *string
}

// NewService builds a service over the task store.
func NewService(s *app.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: s, Log: log.Named("mcp")}
}

// ListTasks reloads and returns the full ordered list.
func (s *Service) ListTasks(ctx context.Context) ([]TaskDTO, error) {
	tasks, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(tasks), nil
}

// TaskByRef returns a single task by id or 1-based position.
func (s *Service) TaskByRef(ctx context.Context, ref string) (TaskDTO, error) {
	tasks, r, err := s.resolve(ctx, ref)
	if err != nil {
		return TaskDTO{}, err
	}
	i := r.Resolve(tasks)
	return toDTO(tasks[i], i), nil
}

// CreateTask appends a task. Title and summary are required, as in the form.
func (s *Service) CreateTask(ctx context.Context, title, summary string) (TaskDTO, error) {
	if err := validate(title, summary); err != nil {
		return TaskDTO{}, err
	}
	created, tasks, err := s.Store.Append(ctx, title, summary)
	if err != nil {
		return TaskDTO{}, err
	}
	i := task.IndexOf(tasks, created.ID)
	if i < 0 {
		if created.ID == "" {
			return TaskDTO{}, errors.New("created task has no id")
		}
		// Not listed yet; report the server's record without a position.
		return toDTO(created, -1), nil
	}
	s.Log.Debug("created task", zap.String("id", created.ID))
	return toDTO(tasks[i], i), nil
}

// UpdateTask edits title and summary of a task; completion is unchanged.
func (s *Service) UpdateTask(ctx context.Context, opts UpdateTaskOptions) (TaskDTO, error) {
	tasks, r, err := s.resolve(ctx, opts.Ref)
	if err != nil {
		return TaskDTO{}, err
	}
	current := tasks[r.Resolve(tasks)]
	title, summary := current.Title, current.Summary
	if opts.Title != nil {
		title = *opts.Title
	}
	if opts.Summary != nil {
		summary = *opts.Summary
	}
	if err := validate(title, summary); err != nil {
		return TaskDTO{}, err
	}
	tasks, err = s.Store.Update(ctx, task.ByID(current.ID), title, summary)
	if err != nil {
		return TaskDTO{}, err
	}
	return find(tasks, current.ID)
}

// CompleteTask marks a task done.
func (s *Service) CompleteTask(ctx context.Context, ref string) (TaskDTO, error) {
	tasks, r, err := s.resolve(ctx, ref)
	if err != nil {
		return TaskDTO{}, err
	}
	id := tasks[r.Resolve(tasks)].ID
	tasks, err = s.Store.Complete(ctx, task.ByID(id))
	if err != nil {
		return TaskDTO{}, err
	}
	return find(tasks, id)
}

// DeleteTask removes a task and returns what was removed.
func (s *Service) DeleteTask(ctx context.Context, ref string) (TaskDTO, error) {
	tasks, r, err := s.resolve(ctx, ref)
	if err != nil {
		return TaskDTO{}, err
	}
	i := r.Resolve(tasks)
	removed := toDTO(tasks[i], i)
	if _, err := s.Store.Delete(ctx, task.ByID(removed.ID)); err != nil {
		return TaskDTO{}, err
	}
	return removed, nil
}

// MoveTask moves a task to a 1-based position and returns the new list.
func (s *Service) MoveTask(ctx context.Context, ref string, position int) ([]TaskDTO, error) {
	tasks, r, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if position < 1 || position > len(tasks) {
		return nil, fmt.Errorf("%w: position %d is outside 1..%d", app.ErrNotFound, position, len(tasks))
	}
	tasks, err = s.Store.Reorder(ctx, r.Resolve(tasks), position-1)
	if err != nil {
		return nil, err
	}
	return toDTOs(tasks), nil
}

// resolve reloads the list and resolves ref against it.
func (s *Service) resolve(ctx context.Context, ref string) ([]task.Task, task.Ref, error) {
	tasks, err := s.Store.Load(ctx)
	if err != nil {
		return nil, task.Ref{}, err
	}
	r, err := task.ParseRef(tasks, ref)
	if err != nil {
		return nil, task.Ref{}, err
	}
	if r.Resolve(tasks) < 0 {
		return nil, task.Ref{}, fmt.Errorf("%w: %s", app.ErrNotFound, ref)
	}
	return tasks, r, nil
}

func validate(title, summary string) error {
	f := app.Form{Buffer: app.EditBuffer{Title: title, Summary: summary}}
	return f.Validate()
}

func find(tasks []task.Task, id string) (TaskDTO, error) {
	i := task.IndexOf(tasks, id)
	if i < 0 {
		return TaskDTO{}, fmt.Errorf("%w: %s", app.ErrNotFound, id)
	}
	return toDTO(tasks[i], i), nil
}

func toDTO(t task.Task, index int) TaskDTO {
	return TaskDTO{
		ID:       t.ID,
		Position: index + 1,
		Title:    t.Title,
		Summary:  t.Summary,
		Done:     t.Done,
	}
}

func toDTOs(tasks []task.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, toDTO(t, i))
	}
	return out
}
