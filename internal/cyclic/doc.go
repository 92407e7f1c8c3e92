/*
Package cyclic implements finite sequences traversed with wraparound.

A Sequence owns an immutable, non-empty backing slice. It can be read at any
logical index, iterated a configurable number of items or whole cycles, in
either direction and from any start offset, and derived into new sequences by
copying, mapping, slicing or resampling.

The iteration bound is expressed with a Bound, which is either unset,
explicitly unbounded or a concrete count:

	s, _ := cyclic.New([]int{0, 1, 2, 3}, cyclic.WithCycleCount(cyclic.Count(2)))
	for v := range s.All() {
	  fmt.Print(v) // 01230123
	}

When neither a limit nor a cycle count is given a sequence yields exactly one
cycle. Setting both to a non-zero count is a configuration error.

Sequences are safe to share between goroutines. Iterators are not: each call
to Iterate returns a private cursor.
*/
package cyclic
