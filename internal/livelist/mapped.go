package livelist

// Mapped is a lazy element-wise transform of a live list: element i is
// always fn(source.At(i)). Nothing is precomputed or cached; each read
// applies fn to the current source element. Source changes are forwarded to
// listeners with identical indices, since the transform never reorders.
type Mapped[S, T any] struct {
	source    List[S]
	fn        func(S) T
	listeners []Listener
}

func NewMapped[S, T any](source List[S], fn func(S) T) *Mapped[S, T] {
	m := &Mapped[S, T]{source: source, fn: fn}
	source.AddListener(m.notify)
	return m
}

func (m *Mapped[S, T]) Len() int { return m.source.Len() }

func (m *Mapped[S, T]) At(i int) T { return m.fn(m.source.At(i)) }

func (m *Mapped[S, T]) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

func (m *Mapped[S, T]) notify(c Change) {
	for _, l := range m.listeners {
		l(c)
	}
}
