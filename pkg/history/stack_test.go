package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/agentstation/modeldesk/pkg/constants"
)

func TestStack_PushPop(t *testing.T) {
	s := New[int](3, nil)

	_, ok := s.Pop()
	assert.False(t, ok, "empty stack must report nothing to pop")

	s.Push(1)
	s.Push(2)
	assert.Equal(t, 2, s.Len())

	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 0, s.Len())
}

func TestStack_EvictsOldest(t *testing.T) {
	s := New[int](3, nil)
	for i := 1; i <= 5; i++ {
		s.Push(i)
	}

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{3, 4, 5}, s.Entries())
}

func TestStack_DefaultCapacity(t *testing.T) {
	s := New[string](0, nil)
	assert.Equal(t, constants.HistoryCapacity, s.Cap())
	assert.Equal(t, 50, s.Cap())
}

func TestStack_ClonesOnPush(t *testing.T) {
	cloneSlice := func(v []string) []string { return append([]string(nil), v...) }
	s := New[[]string](5, cloneSlice)

	state := []string{"a", "b"}
	s.Push(state)
	state[0] = "changed"

	peek, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, peek)

	peek[1] = "also changed"
	got, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestStack_Clear(t *testing.T) {
	s := New[int](2, nil)
	s.Push(1)
	s.Push(2)
	s.Clear()

	assert.Equal(t, 0, s.Len())
	_, ok := s.Peek()
	assert.False(t, ok)
}

func TestProperty_BoundedToMostRecent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 60).Draw(t, "capacity")
		pushes := rapid.IntRange(0, 200).Draw(t, "pushes")

		s := New[int](capacity, nil)
		for i := 0; i < pushes; i++ {
			s.Push(i)
			if s.Len() > capacity {
				t.Fatalf("len %d exceeds capacity %d", s.Len(), capacity)
			}
		}

		want := min(pushes, capacity)
		entries := s.Entries()
		if len(entries) != want {
			t.Fatalf("got %d entries, want %d", len(entries), want)
		}
		for i, v := range entries {
			if expected := pushes - want + i; v != expected {
				t.Fatalf("entry %d = %d, want %d", i, v, expected)
			}
		}
	})
}
