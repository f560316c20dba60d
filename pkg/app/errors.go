package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/taskboard/pkg/store"
)

// ErrNotFound is returned when a reference names no task: a missing id or
// an out of range position. The operation is a no-op.
var ErrNotFound = store.ErrNotFound

// ErrOrderNotPersisted is returned by Reorder when order persistence is on
// but the adapter cannot save a whole list.
var ErrOrderNotPersisted = errors.New("app: adapter cannot persist task order")

// ErrFormClosed is returned when submitting a form that is not open.
var ErrFormClosed = errors.New("app: form is not open")

// OpError reports a failed task store operation. The in-memory list is left
// as it was before the operation.
type OpError struct {
	Op  string
	Ref string
	Err error
}

func (e *OpError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("app: %s %s: %v", e.Op, e.Ref, e.Err)
	}
	return fmt.Sprintf("app: %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ValidationError carries one message per invalid form field.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	fields := make([]Field, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e.Fields[f])
	}
	return strings.Join(msgs, "; ")
}
