package cyclic

import "iter"

// An Iterator is a cursor over one iteration pass of a Sequence. It is not
// safe for concurrent use.
type Iterator[T comparable] struct {
	s       *Sequence[T]
	counter int
	current int
	done    bool
}

// Iterate returns a fresh cursor positioned at the start index.
func (s *Sequence[T]) Iterate() *Iterator[T] {
	return &Iterator[T]{s: s, current: s.cfg.startIndex}
}

// Next returns the next value. The second return value is false once the
// pass is exhausted; an exhausted iterator stays exhausted.
func (it *Iterator[T]) Next() (T, bool) {
	var zero T
	if it.done || len(it.s.values) == 0 {
		it.done = true
		return zero, false
	}
	v := it.s.At(it.current)
	limit, bounded := it.s.effectiveLimit()
	it.counter++
	if bounded && it.counter > limit {
		it.done = true
		return zero, false
	}
	it.current = mod(it.current+1, len(it.s.values))
	return v, true
}

// Done reports whether the iterator is exhausted.
func (it *Iterator[T]) Done() bool { return it.done }

// All returns an iterator over one pass of s. Each range over the result
// starts a fresh cursor.
func (s *Sequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := s.Iterate()
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Collect materializes one pass of s.
func (s *Sequence[T]) Collect() ([]T, error) {
	n, ok := s.Len()
	if !ok {
		return nil, ErrUnbounded
	}
	out := make([]T, 0, n)
	for v := range s.All() {
		out = append(out, v)
	}
	return out, nil
}

// take returns the first n items of an unbounded walk from start, moving
// forward through storage order.
func (s *Sequence[T]) take(start, n int) []T {
	out := make([]T, n)
	for k := range out {
		out[k] = s.values[mod(start+k, len(s.values))]
	}
	return out
}
