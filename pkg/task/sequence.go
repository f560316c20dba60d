package task

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const idPrefix = "id-"

// Sequence hands out client side ids of the form id-<n>. It is monotonic: an
// id is never handed out twice by the same Sequence, even after the task
// holding it was deleted.
type Sequence struct {
	mu   sync.Mutex
	last int
}

// NewSequence starts a sequence after last.
func NewSequence(last int) *Sequence {
	return &Sequence{last: last}
}

// Next returns the next id for a task appended to tasks.
func (s *Sequence) Next(tasks []Task) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := MaxSuffix(tasks); m > s.last {
		s.last = m
	}
	s.last++
	return FormatID(s.last)
}

// Last reports the most recently allocated counter value.
func (s *Sequence) Last() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// FormatID renders n as a client side id.
func FormatID(n int) string {
	return fmt.Sprintf("%s%d", idPrefix, n)
}

// Suffix extracts n from an id of the form id-<n>.
func Suffix(id string) (int, bool) {
	if !strings.HasPrefix(id, idPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// MaxSuffix is the largest id-<n> suffix in tasks, 0 when there is none.
func MaxSuffix(tasks []Task) int {
	max := 0
	for _, t := range tasks {
		if n, ok := Suffix(t.ID); ok && n > max {
			max = n
		}
	}
	return max
}
