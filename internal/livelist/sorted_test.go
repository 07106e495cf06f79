package livelist

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(l List[int]) []int {
	out := make([]int, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		out = append(out, l.At(i))
	}
	return out
}

func TestSortedKeepsOrder(t *testing.T) {
	s := NewSorted(cmp.Compare[int])

	for _, v := range []int{30, 10, 50, 20, 40} {
		s.Insert(v)
	}

	assert.Equal(t, []int{10, 20, 30, 40, 50}, snapshot(s))
}

func TestSortedInsertReportsIndex(t *testing.T) {
	s := NewSorted(cmp.Compare[int])
	var changes []Change
	s.AddListener(func(c Change) { changes = append(changes, c) })

	assert.Equal(t, 0, s.Insert(20))
	assert.Equal(t, 0, s.Insert(10))
	assert.Equal(t, 2, s.Insert(30))

	require.Len(t, changes, 3)
	assert.Equal(t, Change{Kind: Inserted, Index: 0}, changes[0])
	assert.Equal(t, Change{Kind: Inserted, Index: 0}, changes[1])
	assert.Equal(t, Change{Kind: Inserted, Index: 2}, changes[2])
}

func TestSortedRemove(t *testing.T) {
	s := NewSorted(cmp.Compare[int])
	for _, v := range []int{10, 20, 30} {
		s.Insert(v)
	}

	var changes []Change
	s.AddListener(func(c Change) { changes = append(changes, c) })

	i, ok := s.Remove(20)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, []int{10, 30}, snapshot(s))
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Kind: Removed, Index: 1}, changes[0])
}

func TestSortedRemoveMissing(t *testing.T) {
	s := NewSorted(cmp.Compare[int])
	s.Insert(10)

	notified := false
	s.AddListener(func(Change) { notified = true })

	i, ok := s.Remove(99)
	assert.False(t, ok)
	assert.Equal(t, -1, i)
	assert.False(t, notified)
	assert.Equal(t, []int{10}, snapshot(s))
}

func TestSortedListenerSeesUpdatedList(t *testing.T) {
	s := NewSorted(cmp.Compare[int])

	s.AddListener(func(c Change) {
		// The list must already reflect the change being reported.
		if c.Kind == Inserted {
			assert.Equal(t, 42, s.At(c.Index))
		}
	})
	s.Insert(42)
}
