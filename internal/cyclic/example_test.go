package cyclic_test

import (
	"fmt"

	"github.com/minikomi/musica/internal/cyclic"
)

func ExampleSequence_Resample() {
	s := cyclic.MustNew([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	stepped, err := s.Resample(cyclic.Step(3))
	if err != nil {
		fmt.Println("Resample failed:", err)
	}
	walked, err := s.Resample(cyclic.Intervals(1, 2, 3, 3))
	if err != nil {
		fmt.Println("Resample failed:", err)
	}

	fmt.Println(stepped.Values())
	fmt.Println(walked.Values())
	// Output:
	// [0 3 6 9]
	// [0 1 3 6 9]
}

func ExampleSequence_Copy() {
	s := cyclic.MustNew([]string{"C", "D", "E", "F"}, cyclic.WithCycleCount(cyclic.Count(2)))

	r, err := s.Copy(cyclic.WithReverse(true), cyclic.WithStartIndex(2))
	if err != nil {
		fmt.Println("Copy failed:", err)
	}
	for v := range r.All() {
		fmt.Print(v, " ")
	}
	// Output: E D C F E D C F
}
