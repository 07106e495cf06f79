// Package livelist provides ordered views that stay in sync with a mutating
// source, notifying listeners with index-granular structural changes instead
// of whole-collection refreshes.
package livelist

// ChangeKind identifies the structural change a listener is told about.
type ChangeKind int

const (
	Inserted ChangeKind = iota
	Removed
)

// Change describes one structural change. Index is the position the element
// was inserted at or removed from.
type Change struct {
	Kind  ChangeKind
	Index int
}

// Listener receives changes synchronously, after the list already reflects
// them: reading the list from inside a listener never observes state older
// than the change being reported.
type Listener func(Change)

// List is a live ordered sequence.
type List[T any] interface {
	Len() int
	At(i int) T
	AddListener(l Listener)
}
