package livelist

import (
	"cmp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappedTransformsByIndex(t *testing.T) {
	s := NewSorted(cmp.Compare[int])
	m := NewMapped(s, strconv.Itoa)

	s.Insert(20)
	s.Insert(10)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "10", m.At(0))
	assert.Equal(t, "20", m.At(1))
}

func TestMappedIsLazy(t *testing.T) {
	s := NewSorted(cmp.Compare[int])
	calls := 0
	m := NewMapped(s, func(v int) string {
		calls++
		return strconv.Itoa(v)
	})

	s.Insert(10)
	s.Insert(20)
	assert.Equal(t, 0, calls, "no transform until an element is read")

	_ = m.At(0)
	assert.Equal(t, 1, calls)
	_ = m.At(0)
	assert.Equal(t, 2, calls, "reads are recomputed, not cached")
}

func TestMappedForwardsChanges(t *testing.T) {
	s := NewSorted(cmp.Compare[int])
	m := NewMapped(s, strconv.Itoa)

	var changes []Change
	m.AddListener(func(c Change) { changes = append(changes, c) })

	s.Insert(10)
	s.Insert(5)
	s.Remove(10)

	require.Len(t, changes, 3)
	assert.Equal(t, Change{Kind: Inserted, Index: 0}, changes[0])
	assert.Equal(t, Change{Kind: Inserted, Index: 0}, changes[1])
	assert.Equal(t, Change{Kind: Removed, Index: 1}, changes[2])
}
