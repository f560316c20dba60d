package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventTasksChanged indicates another writer replaced the stored list.
	EventTasksChanged EventType = iota

	// EventInvalidated signals the watcher could not classify a change and
	// callers should reload.
	EventInvalidated
)

// Event is emitted by Local.Watch when underlying storage changes.
type Event struct {
	Type EventType
}

// Watcher is implemented by adapters that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

var _ Watcher = (*Local)(nil)

// Watch streams change events until ctx is cancelled. Writes made through
// this Local are not reported. The channel is closed once ctx is done or the
// watcher encounters an unrecoverable error.
func (l *Local) Watch(ctx context.Context) (<-chan Event, error) {
	if l.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(l.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				l.log.Warn("watcher close", zap.Error(err))
			}
		})
	}

	if err := watcher.Add(l.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", l.basePath, err)
	}

	events := make(chan Event, 16)
	tasksFile := filepath.Join(l.basePath, tasksKey)

	go func() {
		// The throttle timer may fire after the loop exits, so sends and the
		// final close share a lock.
		var sendMu sync.Mutex
		closed := false
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// A pending event already asks for a reload.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.log.Warn("watcher error", zap.Error(err))
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != tasksFile {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if data, err := os.ReadFile(tasksFile); err == nil && l.ownWrite(data) {
					continue
				}
				throttle.Enqueue(Event{Type: EventTasksChanged}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so the UI reloads once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType := range pending {
		send(Event{Type: eventType})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
