// Package store holds the persistence strategies behind the task store: a
// local diskv-backed list and a remote REST resource.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/task"
)

// ErrNotFound is returned when the referenced task does not exist in storage.
var ErrNotFound = errors.New("store: task not found")

// Adapter is the persistence contract shared by both strategies.
type Adapter interface {
	// Load returns the full ordered list. Absent storage is an empty list.
	Load(ctx context.Context) ([]task.Task, error)
	// Create stores t and returns it with its assigned id.
	Create(ctx context.Context, t task.Task) (task.Task, error)
	// Replace overwrites the task with the given id.
	Replace(ctx context.Context, id string, t task.Task) error
	// Remove deletes the task with the given id.
	Remove(ctx context.Context, id string) error
}

// Saver is implemented by strategies that persist the whole list in one
// write. The task store mutates in memory and saves when the adapter is a
// Saver, and issues a request followed by a reload otherwise.
type Saver interface {
	Save(ctx context.Context, tasks []task.Task) error
}

// Allocator is implemented by strategies that hand out client side ids.
type Allocator interface {
	NextID(existing []task.Task) string
}

// Prefs stores presentation preferences next to the data.
type Prefs interface {
	Scheme() (string, error)
	SetScheme(scheme string) error
}

// Open creates the adapter selected by cfg.
func Open(cfg Config, log *zap.Logger) (Adapter, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	switch cfg.Backend() {
	case BackendLocal:
		return NewLocal(cfg.BasePath(), log), nil
	case BackendRemote:
		return NewRemote(cfg.RemoteURL(), cfg.RemoteTimeout(), log), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}
