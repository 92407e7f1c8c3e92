package theory

import (
	"fmt"
	"strings"

	"github.com/minikomi/musica/internal/cyclic"
	"github.com/minikomi/musica/internal/note"
)

// Quality is the flavour of a triad.
type Quality int

const (
	MajorTriad Quality = iota
	MinorTriad
	DiminishedTriad
)

var qualityNames = [...]string{"maj", "min", "dim"}

func (q Quality) String() string {
	if q < MajorTriad || q > DiminishedTriad {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

// ParseQuality parses "maj", "min" or "dim".
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range qualityNames {
		if s == name {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("theory: unknown chord quality %q", s)
}

// mode is the scale a triad of quality q is stacked from.
func (q Quality) mode() Mode {
	switch q {
	case MinorTriad:
		return Aeolian
	case DiminishedTriad:
		return Locrian
	}
	return Ionian
}

// A Chord is a root position triad.
type Chord struct {
	Quality Quality
	Notes   [3]note.Label
}

// Root returns the lowest note of c.
func (c Chord) Root() note.Label { return c.Notes[0] }

// Name returns the chord symbol, e.g. "Dmin".
func (c Chord) Name() string { return string(c.Notes[0]) + c.Quality.String() }

func (c Chord) String() string {
	return fmt.Sprintf("%s(%s %s %s)", c.Name(), c.Notes[0], c.Notes[1], c.Notes[2])
}

// Labels returns the notes of c as a slice.
func (c Chord) Labels() []note.Label {
	return c.Notes[:]
}

// Triad stacks the first, third and fifth degree of the scale of root
// matching q.
func Triad(root note.Label, q Quality) (Chord, error) {
	if q < MajorTriad || q > DiminishedTriad {
		return Chord{}, fmt.Errorf("theory: unknown chord quality %d", int(q))
	}
	s, err := ModeScale(root, q.mode())
	if err != nil {
		return Chord{}, err
	}
	return Chord{Quality: q, Notes: [3]note.Label{s.At(0), s.At(2), s.At(4)}}, nil
}

// DiatonicChords returns the triad built on every degree of the major key
// of root. A degree gets a major triad when its minor third is outside the
// key, a diminished triad when both its minor third and diminished fifth
// are inside, and a minor triad otherwise.
func DiatonicChords(root note.Label) ([]Chord, error) {
	key, err := Major(root)
	if err != nil {
		return nil, err
	}
	chords := make([]Chord, 0, key.Size())
	for degree := range key.All() {
		c, err := diatonic(key, degree)
		if err != nil {
			return nil, err
		}
		chords = append(chords, c)
	}
	return chords, nil
}

func diatonic(key Scale, degree note.Label) (Chord, error) {
	major, err := Triad(degree, MajorTriad)
	if err != nil {
		return Chord{}, err
	}
	third, err := Diminish(major.Notes[1])
	if err != nil {
		return Chord{}, err
	}
	if !key.Contains(third) {
		return major, nil
	}
	fifth, err := Diminish(major.Notes[2])
	if err != nil {
		return Chord{}, err
	}
	if key.Contains(fifth) {
		return Triad(degree, DiminishedTriad)
	}
	return Triad(degree, MinorTriad)
}

// CircleOfFifths returns the twelve pitch classes ordered by ascending
// fifths from start.
func CircleOfFifths(start note.Label) (Scale, error) {
	c, err := ChromaticFrom(start)
	if err != nil {
		return nil, err
	}
	fifths, err := cyclic.New([]int{7}, cyclic.WithLimit(cyclic.Count(c.Size()-1)))
	if err != nil {
		return nil, err
	}
	return c.Resample(cyclic.IntervalsOf(fifths))
}

// RelativeMinors returns the relative minor of every key of the circle of
// fifths from start, in the same order.
func RelativeMinors(start note.Label) (Scale, error) {
	outer, err := CircleOfFifths(start)
	if err != nil {
		return nil, err
	}
	inner := make([]note.Label, 0, outer.Size())
	for l := range outer.All() {
		m, err := RelativeMinor(l)
		if err != nil {
			return nil, err
		}
		inner = append(inner, m)
	}
	return cyclic.New(inner)
}
