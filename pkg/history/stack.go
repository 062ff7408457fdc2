// Package history provides the bounded snapshot stack behind undo.
package history

import "github.com/agentstation/modeldesk/pkg/constants"

// Stack is a bounded LIFO of snapshots. Every pushed value is cloned, so
// later changes to the caller's state never leak into history. When the
// stack is full the oldest snapshot is evicted.
type Stack[T any] struct {
	entries  []T
	capacity int
	clone    func(T) T
}

// New creates a stack holding at most capacity snapshots. A capacity below
// one falls back to constants.HistoryCapacity. clone may be nil for value
// types that need no deep copy.
func New[T any](capacity int, clone func(T) T) *Stack[T] {
	if capacity < 1 {
		capacity = constants.HistoryCapacity
	}
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Stack[T]{
		entries:  make([]T, 0, capacity),
		capacity: capacity,
		clone:    clone,
	}
}

// Push stores a copy of v, evicting the oldest snapshot on overflow.
func (s *Stack[T]) Push(v T) {
	if len(s.entries) == s.capacity {
		var zero T
		s.entries[0] = zero
		s.entries = append(s.entries[:0], s.entries[1:]...)
	}
	s.entries = append(s.entries, s.clone(v))
}

// Pop removes and returns the most recent snapshot. ok is false when the
// stack is empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	if len(s.entries) == 0 {
		return v, false
	}
	last := len(s.entries) - 1
	v = s.entries[last]

	var zero T
	s.entries[last] = zero
	s.entries = s.entries[:last]
	return v, true
}

// Peek returns a copy of the most recent snapshot without removing it.
func (s *Stack[T]) Peek() (v T, ok bool) {
	if len(s.entries) == 0 {
		return v, false
	}
	return s.clone(s.entries[len(s.entries)-1]), true
}

// Len returns the number of stored snapshots.
func (s *Stack[T]) Len() int { return len(s.entries) }

// Cap returns the maximum number of snapshots.
func (s *Stack[T]) Cap() int { return s.capacity }

// Clear drops every snapshot.
func (s *Stack[T]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

// Entries returns copies of all snapshots, oldest first.
func (s *Stack[T]) Entries() []T {
	out := make([]T, len(s.entries))
	for i, e := range s.entries {
		out[i] = s.clone(e)
	}
	return out
}
