package cyclic

import "fmt"

// Copy returns a new Sequence over the same values. Fields not touched by
// opts are inherited from s, bounds included, so setting a limit on a
// sequence that already has a cycle count fails with ErrAmbiguousBound.
// When the resulting sequence is reversed, its start index is remapped once
// to n - start - 1.
func (s *Sequence[T]) Copy(opts ...Option) (*Sequence[T], error) {
	return s.derive(s.values, opts)
}

// CopyWithValues is like Copy but replaces the values.
func (s *Sequence[T]) CopyWithValues(values []T, opts ...Option) (*Sequence[T], error) {
	return s.derive(values, opts)
}

func (s *Sequence[T]) derive(values []T, opts []Option) (*Sequence[T], error) {
	var o config
	for _, opt := range opts {
		opt(&o)
	}
	cfg := s.cfg
	if o.reverseSet {
		cfg.reverse = o.reverse
	}
	if o.startSet {
		cfg.startIndex = o.startIndex
	}
	if !o.limit.IsUnset() {
		cfg.limit = o.limit
	}
	if !o.cycleCount.IsUnset() {
		cfg.cycleCount = o.cycleCount
	}
	if cfg.reverse {
		cfg.startIndex = len(s.values) - cfg.startIndex - 1
	}
	return newSequence(values, cfg)
}

// Map returns a Sequence over fn applied to every value of s. The result
// has the default configuration.
func Map[T, U comparable](s *Sequence[T], fn func(T) U) *Sequence[U] {
	values := make([]U, len(s.values))
	for i, v := range s.values {
		values[i] = fn(v)
	}
	return &Sequence[U]{values: values}
}

// Slice materializes stop items visited from logical index StartIndex+start
// into a new Sequence. A negative stop counts back from the size, so
// Slice(0, -1) drops the last value of a cycle. A zero stop means a whole
// cycle. Note that stop is an item count from the adjusted start, not an
// absolute index. The cycle count of s does not apply to the slice.
func (s *Sequence[T]) Slice(start, stop int) (*Sequence[T], error) {
	n := len(s.values)
	count := n
	switch {
	case stop < 0:
		count = n + stop
	case stop > 0:
		count = stop
	}
	base := &Sequence[T]{values: s.values, cfg: s.cfg}
	base.cfg.cycleCount = Unset()
	view, err := base.Copy(WithStartIndex(s.cfg.startIndex+start), WithLimit(Count(count)))
	if err != nil {
		return nil, err
	}
	values, err := view.Collect()
	if err != nil {
		return nil, err
	}
	return New(values)
}

// SliceFrom materializes one cycle visited from logical index
// StartIndex+start into a new Sequence.
func (s *Sequence[T]) SliceFrom(start int) (*Sequence[T], error) {
	return s.Slice(start, 0)
}

type resampleConfig struct {
	step     int
	stepSet  bool
	hops     []int
	hopsSet  bool
	hopsFrom *Sequence[int]
	opts     []Option
}

// A ResampleOption configures Resample.
type ResampleOption func(*resampleConfig)

// Step keeps every k-th value of the canonical rotation.
func Step(k int) ResampleOption {
	return func(c *resampleConfig) {
		c.step = k
		c.stepSet = true
	}
}

// Intervals walks the canonical rotation by the given hops.
func Intervals(hops ...int) ResampleOption {
	return func(c *resampleConfig) {
		c.hops = hops
		c.hopsSet = true
		c.hopsFrom = nil
	}
}

// IntervalsOf walks the canonical rotation by the hops of one iteration
// pass of seq.
func IntervalsOf(seq *Sequence[int]) ResampleOption {
	return func(c *resampleConfig) {
		c.hopsFrom = seq
		c.hopsSet = true
		c.hops = nil
	}
}

// ResampleStart sets the start index of the resampled sequence.
func ResampleStart(i int) ResampleOption {
	return func(c *resampleConfig) {
		c.opts = append(c.opts, WithStartIndex(i))
	}
}

// ResampleLimit sets the item limit of the resampled sequence.
func ResampleLimit(b Bound) ResampleOption {
	return func(c *resampleConfig) {
		c.opts = append(c.opts, WithLimit(b))
	}
}

// ResampleCycles sets the cycle count of the resampled sequence.
func ResampleCycles(b Bound) ResampleOption {
	return func(c *resampleConfig) {
		c.opts = append(c.opts, WithCycleCount(b))
	}
}

// Rotation returns the canonical rotation of s: one forward cycle of the
// values starting at the start index, regardless of direction and bounds.
func (s *Sequence[T]) Rotation() []T {
	return s.take(s.cfg.startIndex, len(s.values))
}

// Resample derives a Sequence from the canonical rotation of s, either by
// keeping every k-th value (Step) or by walking it with a running sum of
// hops modulo the size (Intervals, IntervalsOf). Without either the
// rotation itself is used. Only the start index and bounds passed as
// options are applied to the result.
func (s *Sequence[T]) Resample(opts ...ResampleOption) (*Sequence[T], error) {
	var rc resampleConfig
	for _, opt := range opts {
		opt(&rc)
	}
	if rc.stepSet && rc.hopsSet {
		return nil, ErrAmbiguousResample
	}

	r := s.Rotation()
	values := r
	switch {
	case rc.stepSet:
		if rc.step < 1 {
			return nil, fmt.Errorf("%w: step %d", ErrConfiguration, rc.step)
		}
		values = make([]T, 0, (len(r)+rc.step-1)/rc.step)
		for i := 0; i < len(r); i += rc.step {
			values = append(values, r[i])
		}
	case rc.hopsSet:
		hops := rc.hops
		if rc.hopsFrom != nil {
			var err error
			if hops, err = rc.hopsFrom.Collect(); err != nil {
				return nil, fmt.Errorf("resample intervals: %w", err)
			}
		}
		values = make([]T, 0, len(hops)+1)
		values = append(values, r[0])
		i := 0
		for _, h := range hops {
			i = mod(i+h, len(r))
			values = append(values, r[i])
		}
	}
	return New(values, rc.opts...)
}
