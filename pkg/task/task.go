// Package task holds the task record shared by the store, the persistence
// adapters and the user interfaces.
package task

import (
	"fmt"
	"strconv"
	"strings"
)

// Task is a titled unit of work with an optional summary and a completion flag.
type Task struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Done    bool   `json:"done"`
}

// New returns an open task with the given title and summary. The id is
// assigned by whoever persists it.
func New(title, summary string) Task {
	return Task{Title: title, Summary: summary}
}

func (t Task) String() string {
	mark := " "
	if t.Done {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s", mark, t.Title)
}

// Clone returns a copy of the list that shares no backing array with tasks.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return []Task{}
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Ref points at a task either by id or by position. ID wins when both are set.
type Ref struct {
	ID    string
	Index int
}

// ByID references a task by its id.
func ByID(id string) Ref {
	return Ref{ID: id, Index: -1}
}

// At references a task by its 0-based position in the list.
func At(index int) Ref {
	return Ref{Index: index}
}

// Resolve returns the index of the referenced task, or -1 when it does not
// exist in tasks.
func (r Ref) Resolve(tasks []Task) int {
	if r.ID != "" {
		return IndexOf(tasks, r.ID)
	}
	if r.Index < 0 || r.Index >= len(tasks) {
		return -1
	}
	return r.Index
}

func (r Ref) String() string {
	if r.ID != "" {
		return r.ID
	}
	return "#" + strconv.Itoa(r.Index+1)
}

// ParseRef reads a command line reference: an existing id first, then a
// 1-based position such as "3" or "#3".
func ParseRef(tasks []Task, s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("task reference required")
	}
	if IndexOf(tasks, s) >= 0 {
		return ByID(s), nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil {
		// Unknown ids still resolve, to a missing task.
		return ByID(s), nil
	}
	if n < 1 {
		return Ref{}, fmt.Errorf("task position out of range: %d", n)
	}
	return At(n - 1), nil
}
