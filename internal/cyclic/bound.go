package cyclic

import "strconv"

type boundKind uint8

const (
	boundUnset boundKind = iota
	boundUnbounded
	boundCount
)

// A Bound caps the number of items yielded by one iteration pass. The zero
// value is Unset.
type Bound struct {
	kind boundKind
	n    int
}

// Unset returns a Bound that was never specified.
func Unset() Bound { return Bound{} }

// Unbounded returns a Bound that removes the cap altogether.
func Unbounded() Bound { return Bound{kind: boundUnbounded} }

// Count returns a Bound of n.
func Count(n int) Bound { return Bound{kind: boundCount, n: n} }

// IsUnset reports whether b was never specified.
func (b Bound) IsUnset() bool { return b.kind == boundUnset }

// IsUnbounded reports whether b explicitly removes the cap.
func (b Bound) IsUnbounded() bool { return b.kind == boundUnbounded }

// Value returns the count held by b. The second return value is false
// unless b was built with Count.
func (b Bound) Value() (int, bool) {
	return b.n, b.kind == boundCount
}

// meaningful reports whether b carries a non-zero count. Only meaningful
// bounds take part in the limit/cycle count exclusion check.
func (b Bound) meaningful() bool {
	return b.kind == boundCount && b.n != 0
}

func (b Bound) String() string {
	switch b.kind {
	case boundUnbounded:
		return "unbounded"
	case boundCount:
		return strconv.Itoa(b.n)
	}
	return "unset"
}
