package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/task"
)

const (
	tasksKey  = "tasks"
	seqKey    = "seq"
	schemeKey = "color-scheme"
)

// Local keeps the whole task list as one JSON document in a diskv store.
type Local struct {
	// NewID assigns ids to created tasks. Defaults to the id-<n> sequence.
	NewID func(existing []task.Task) string

	d        *diskv.Diskv
	basePath string
	log      *zap.Logger

	mu          sync.Mutex
	seq         *task.Sequence
	lastWritten []byte
}

var (
	_ Adapter   = (*Local)(nil)
	_ Saver     = (*Local)(nil)
	_ Prefs     = (*Local)(nil)
	_ Allocator = (*Local)(nil)
)

// NewLocal opens (lazily creating) a diskv store rooted at basePath.
func NewLocal(basePath string, log *zap.Logger) *Local {
	if log == nil {
		log = zap.NewNop()
	}
	return &Local{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			Transform: func(string) []string { return []string{} },
			// No read cache: another process may rewrite the list.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		log:      log.Named("local"),
	}
}

// BasePath is the directory holding the store.
func (l *Local) BasePath() string {
	return l.basePath
}

func (l *Local) Load(_ context.Context) ([]task.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(), nil
}

// load never fails observably: absent or unreadable data is an empty list.
func (l *Local) load() []task.Task {
	if !l.d.Has(tasksKey) {
		return []task.Task{}
	}
	val, err := l.d.Read(tasksKey)
	if err != nil {
		l.log.Warn("read task list", zap.Error(err))
		return []task.Task{}
	}
	if len(bytes.TrimSpace(val)) == 0 {
		return []task.Task{}
	}
	var tasks []task.Task
	if err := json.Unmarshal(val, &tasks); err != nil {
		l.log.Warn("decode task list", zap.Error(err), zap.String("path", l.basePath))
		return []task.Task{}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks
}

func (l *Local) Save(_ context.Context, tasks []task.Task) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save(tasks)
}

func (l *Local) save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	if err := l.d.Write(tasksKey, data); err != nil {
		return fmt.Errorf("store: write task list: %w", err)
	}
	l.lastWritten = data

	// Keep the counter ahead of anything saved so ids stay monotonic across runs.
	seq := l.sequence()
	if m := task.MaxSuffix(tasks); m > seq.Last() {
		seq = task.NewSequence(m)
		l.seq = seq
	}
	return l.writeSeq(seq.Last())
}

func (l *Local) Create(_ context.Context, t task.Task) (task.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tasks := l.load()
	if t.ID == "" {
		t.ID = l.nextID(tasks)
	}
	if err := l.save(append(tasks, t)); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (l *Local) Replace(_ context.Context, id string, t task.Task) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tasks := l.load()
	i := task.IndexOf(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t.ID = id
	tasks[i] = t
	return l.save(tasks)
}

func (l *Local) Remove(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tasks := l.load()
	i := task.IndexOf(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l.save(append(tasks[:i], tasks[i+1:]...))
}

// NextID allocates the id for a task about to be appended to existing.
func (l *Local) NextID(existing []task.Task) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextID(existing)
}

func (l *Local) nextID(existing []task.Task) string {
	if l.NewID != nil {
		return l.NewID(existing)
	}
	return l.sequence().Next(existing)
}

// sequence lazily restores the persisted id counter.
func (l *Local) sequence() *task.Sequence {
	if l.seq != nil {
		return l.seq
	}
	last := 0
	if l.d.Has(seqKey) {
		if val, err := l.d.Read(seqKey); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(string(val))); err == nil && n > 0 {
				last = n
			}
		}
	}
	l.seq = task.NewSequence(last)
	return l.seq
}

func (l *Local) writeSeq(n int) error {
	if err := l.d.Write(seqKey, []byte(strconv.Itoa(n))); err != nil {
		return fmt.Errorf("store: write id counter: %w", err)
	}
	return nil
}

// Scheme returns the stored display scheme, "" when none was saved.
func (l *Local) Scheme() (string, error) {
	if !l.d.Has(schemeKey) {
		return "", nil
	}
	val, err := l.d.Read(schemeKey)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(val)), nil
}

func (l *Local) SetScheme(scheme string) error {
	return l.d.Write(schemeKey, []byte(scheme))
}

// ownWrite reports whether data is exactly what this process last wrote.
func (l *Local) ownWrite(data []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastWritten != nil && bytes.Equal(l.lastWritten, data)
}
