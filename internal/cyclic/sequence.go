package cyclic

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// config holds the iteration parameters of a Sequence. The set flags record
// which fields an Option touched, which is what Copy inherits around.
type config struct {
	reverse    bool
	startIndex int
	limit      Bound
	cycleCount Bound

	reverseSet bool
	startSet   bool
}

// An Option configures a Sequence built by New or Copy.
type Option func(*config)

// WithReverse sets whether logical indices walk the values back-to-front.
func WithReverse(reverse bool) Option {
	return func(c *config) {
		c.reverse = reverse
		c.reverseSet = true
	}
}

// WithStartIndex sets the logical index fresh iterators begin at.
func WithStartIndex(i int) Option {
	return func(c *config) {
		c.startIndex = i
		c.startSet = true
	}
}

// WithLimit caps an iteration pass to an absolute number of items.
func WithLimit(b Bound) Option {
	return func(c *config) {
		c.limit = b
	}
}

// WithCycleCount caps an iteration pass to a number of whole cycles.
func WithCycleCount(b Bound) Option {
	return func(c *config) {
		c.cycleCount = b
	}
}

// A Sequence is a non-empty list of values traversed cyclically.
type Sequence[T comparable] struct {
	values []T
	cfg    config

	indexOnce sync.Once
	index     map[T]int
}

// New creates a Sequence over a copy of values.
func New[T comparable](values []T, opts ...Option) (*Sequence[T], error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return newSequence(values, cfg)
}

func newSequence[T comparable](values []T, cfg config) (*Sequence[T], error) {
	if cfg.limit.meaningful() && cfg.cycleCount.meaningful() {
		return nil, ErrAmbiguousBound
	}
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	v := make([]T, len(values))
	copy(v, values)
	cfg.reverseSet, cfg.startSet = false, false
	return &Sequence[T]{values: v, cfg: cfg}, nil
}

// MustNew is like New but panics on error. It is meant for package level
// tables built from literals.
func MustNew[T comparable](values []T, opts ...Option) *Sequence[T] {
	s, err := New(values, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Size returns the number of backing values.
func (s *Sequence[T]) Size() int {
	return len(s.values)
}

// Values returns a copy of the backing values in storage order.
func (s *Sequence[T]) Values() []T {
	v := make([]T, len(s.values))
	copy(v, s.values)
	return v
}

// Reverse reports whether the sequence is traversed back-to-front.
func (s *Sequence[T]) Reverse() bool { return s.cfg.reverse }

// StartIndex returns the configured start index, not normalized.
func (s *Sequence[T]) StartIndex() int { return s.cfg.startIndex }

// Limit returns the configured item limit.
func (s *Sequence[T]) Limit() Bound { return s.cfg.limit }

// CycleCount returns the configured cycle count.
func (s *Sequence[T]) CycleCount() Bound { return s.cfg.cycleCount }

// effectiveLimit resolves the number of items one pass yields. The second
// return value is false when the pass is unbounded.
func (s *Sequence[T]) effectiveLimit() (int, bool) {
	limit, cycles := s.cfg.limit, s.cfg.cycleCount
	if limit.IsUnset() && cycles.IsUnset() {
		cycles = Count(1)
	}
	if n, ok := cycles.Value(); ok {
		return n * len(s.values), true
	}
	return limit.Value()
}

// Len returns the number of items one iteration pass yields. The second
// return value is false when the sequence is unbounded.
func (s *Sequence[T]) Len() (int, bool) {
	n, ok := s.effectiveLimit()
	if ok && n < 0 {
		n = 0
	}
	return n, ok
}

// At returns the value at logical index i. Any integer is accepted: the
// index is mapped through the direction and taken modulo the size.
func (s *Sequence[T]) At(i int) T {
	n := len(s.values)
	if s.cfg.reverse {
		i = n - i - 1
	}
	return s.values[mod(i, n)]
}

// IndexOf returns the first storage position of v, ignoring direction and
// start index.
func (s *Sequence[T]) IndexOf(v T) (int, error) {
	s.indexOnce.Do(func() {
		s.index = make(map[T]int, len(s.values))
		for i, x := range s.values {
			if _, ok := s.index[x]; !ok {
				s.index[x] = i
			}
		}
	})
	i, ok := s.index[v]
	if !ok {
		return -1, fmt.Errorf("%w: %v", ErrNotFound, v)
	}
	return i, nil
}

// Contains reports whether v is one of the backing values.
func (s *Sequence[T]) Contains(v T) bool {
	_, err := s.IndexOf(v)
	return err == nil
}

func (s *Sequence[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sequence[%s](", reflect.TypeOf(s.values[0]))
	for i, v := range s.values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, v)
	}
	switch {
	case !s.cfg.limit.IsUnset():
		fmt.Fprintf(&b, ", limit=%s", s.cfg.limit)
	case !s.cfg.cycleCount.IsUnset():
		fmt.Fprintf(&b, ", cycles=%s", s.cfg.cycleCount)
	}
	if s.cfg.reverse {
		b.WriteString(", reverse")
	}
	if s.cfg.startIndex != 0 {
		fmt.Fprintf(&b, ", start=%d", s.cfg.startIndex)
	}
	b.WriteByte(')')
	return b.String()
}

// mod returns the non-negative remainder of x / n.
func mod(x, n int) int { return (x%n + n) % n }
