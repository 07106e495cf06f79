package livelist

import "slices"

// Sorted mirrors the values of a mapping as a continuously ordered sequence.
// The owner applies each single-key mutation through Insert and Remove as it
// happens; the comparator fixes the order independent of any UI-level sort.
//
// Each change is one binary search plus one slice shift. A bulk load of N
// entries is therefore N individual O(log N)+O(N) operations, which is fine
// at the tens-to-hundreds scale this serves.
type Sorted[T any] struct {
	cmp       func(a, b T) int
	items     []T
	listeners []Listener
}

func NewSorted[T any](cmp func(a, b T) int) *Sorted[T] {
	return &Sorted[T]{cmp: cmp}
}

func (s *Sorted[T]) Len() int { return len(s.items) }

func (s *Sorted[T]) At(i int) T { return s.items[i] }

func (s *Sorted[T]) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Insert places v at its comparator position and reports the insertion.
func (s *Sorted[T]) Insert(v T) int {
	i, _ := slices.BinarySearchFunc(s.items, v, s.cmp)
	s.items = slices.Insert(s.items, i, v)
	s.notify(Change{Kind: Inserted, Index: i})
	return i
}

// Remove drops the element matching v under the comparator. It reports the
// removal index, or -1 and false when no element matched.
func (s *Sorted[T]) Remove(v T) (int, bool) {
	i, found := slices.BinarySearchFunc(s.items, v, s.cmp)
	if !found {
		return -1, false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.notify(Change{Kind: Removed, Index: i})
	return i, true
}

func (s *Sorted[T]) notify(c Change) {
	for _, l := range s.listeners {
		l(c)
	}
}
