package cyclic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCyclicBehaviour(t *testing.T) {
	values := digits()
	fifth := values[4]
	cycles := 10
	counter := 0
	for v := range MustNew(values, WithCycleCount(Count(cycles))).All() {
		if v == fifth {
			counter++
		}
	}
	assert.Equal(t, cycles, counter)
}

func TestIterationCounts(t *testing.T) {
	for _, values := range [][]int{{7}, {1, 2}, digits()} {
		for cycles := 1; cycles <= 4; cycles++ {
			got, err := MustNew(values, WithCycleCount(Count(cycles))).Collect()
			require.NoError(t, err)
			require.Len(t, got, cycles*len(values))
			seen := make(map[int]int)
			for i, v := range got {
				require.Equal(t, values[i%len(values)], v, "item %d", i)
				seen[v]++
			}
			for _, v := range values {
				assert.Equal(t, cycles, seen[v])
			}
		}
	}
}

func TestIterate(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []int
	}{
		{"default one cycle", nil, []int{0, 1, 2, 3}},
		{"limit", []Option{WithLimit(Count(6))}, []int{0, 1, 2, 3, 0, 1}},
		{"short limit", []Option{WithLimit(Count(2))}, []int{0, 1}},
		{"start", []Option{WithStartIndex(2)}, []int{2, 3, 0, 1}},
		{"negative start", []Option{WithStartIndex(-1)}, []int{3, 0, 1, 2}},
		{"reverse", []Option{WithReverse(true)}, []int{3, 2, 1, 0}},
		{"reverse start", []Option{WithReverse(true), WithStartIndex(1)}, []int{2, 1, 0, 3}},
		{"zero cycles", []Option{WithCycleCount(Count(0))}, []int{}},
		{"zero limit", []Option{WithLimit(Count(0))}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustNew([]int{0, 1, 2, 3}, tt.opts...).Collect()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIteratorExhaustionIsPermanent(t *testing.T) {
	it := MustNew([]int{1, 2}).Iterate()
	for _, want := range []int{1, 2} {
		v, ok := it.Next()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
	assert.False(t, it.Done())
	for i := 0; i < 3; i++ {
		_, ok := it.Next()
		assert.False(t, ok)
	}
	assert.True(t, it.Done())
}

func TestIteratorsAreIndependent(t *testing.T) {
	s := MustNew([]int{1, 2, 3})
	a := s.Iterate()
	a.Next()
	a.Next()
	b := s.Iterate()
	v, ok := b.Next()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = a.Next()
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestUnbounded(t *testing.T) {
	s := MustNew([]int{1, 2, 3}, WithLimit(Unbounded()))
	var got []int
	for v := range s.All() {
		got = append(got, v)
		if len(got) == 10 {
			break
		}
	}
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3, 1, 2, 3, 1}, got)

	_, err := s.Collect()
	require.ErrorIs(t, err, ErrUnbounded)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestAllRestarts(t *testing.T) {
	s := MustNew([]int{5, 6}, WithStartIndex(1))
	for i := 0; i < 2; i++ {
		var got []int
		for v := range s.All() {
			got = append(got, v)
		}
		assert.Equal(t, []int{6, 5}, got)
	}
}
