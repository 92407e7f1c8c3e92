// Package theory derives scales, chords and key relationships from the
// chromatic scale. Every derivation is a handful of Copy, Slice and
// Resample calls on cyclic sequences.
package theory

import (
	"fmt"
	"strings"

	"github.com/minikomi/musica/internal/cyclic"
	"github.com/minikomi/musica/internal/note"
)

// Scale is a finite sequence of pitch classes.
type Scale = *cyclic.Sequence[note.Label]

var (
	// MajorIntervals are the semitone steps of the major scale. Rotating
	// them gives the other modes.
	MajorIntervals = cyclic.MustNew([]int{2, 2, 1, 2, 2, 2, 1})
	BluesIntervals = cyclic.MustNew([]int{3, 2, 1, 1, 3, 2})

	chromatic = cyclic.MustNew(note.Chromatic)
)

// A Mode is a rotation of the major scale.
type Mode int

const (
	Ionian Mode = iota
	Dorian
	Phrygian
	Lydian
	Mixolydian
	Aeolian
	Locrian
)

var modeNames = [...]string{"ionian", "dorian", "phrygian", "lydian", "mixolydian", "aeolian", "locrian"}

func (m Mode) String() string {
	if m < Ionian || m > Locrian {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name. "major" and "minor" are accepted as
// aliases of ionian and aeolian.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "major":
		return Ionian, nil
	case "minor":
		return Aeolian, nil
	}
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("theory: unknown mode %q", s)
}

// ChromaticFrom returns the twelve pitch classes starting at root.
func ChromaticFrom(root note.Label) (Scale, error) {
	l, err := note.Normalize(root)
	if err != nil {
		return nil, err
	}
	i, err := chromatic.IndexOf(l)
	if err != nil {
		return nil, fmt.Errorf("theory: unknown note %q: %w", string(root), err)
	}
	return chromatic.Copy(cyclic.WithStartIndex(i))
}

// ModeScale returns the seven notes of root in mode m.
func ModeScale(root note.Label, m Mode) (Scale, error) {
	if m < Ionian || m > Locrian {
		return nil, fmt.Errorf("theory: unknown mode %d", int(m))
	}
	steps, err := MajorIntervals.Copy(cyclic.WithStartIndex(int(m)))
	if err != nil {
		return nil, err
	}
	return walk(root, steps)
}

// Major returns the major scale of root.
func Major(root note.Label) (Scale, error) { return ModeScale(root, Ionian) }

// Minor returns the natural minor scale of root.
func Minor(root note.Label) (Scale, error) { return ModeScale(root, Aeolian) }

// Blues returns the six note blues scale of root.
func Blues(root note.Label) (Scale, error) { return walk(root, BluesIntervals) }

// ScaleByName returns the scale of root called name, either a mode name or
// "blues".
func ScaleByName(root note.Label, name string) (Scale, error) {
	if strings.EqualFold(strings.TrimSpace(name), "blues") {
		return Blues(root)
	}
	m, err := ParseMode(name)
	if err != nil {
		return nil, err
	}
	return ModeScale(root, m)
}

// walk resamples the chromatic scale of root by every step of steps but
// the last, which only closes the octave.
func walk(root note.Label, steps *cyclic.Sequence[int]) (Scale, error) {
	c, err := ChromaticFrom(root)
	if err != nil {
		return nil, err
	}
	hops, err := steps.Slice(0, -1)
	if err != nil {
		return nil, err
	}
	return c.Resample(cyclic.IntervalsOf(hops))
}

// Diminish returns the pitch class a semitone below l.
func Diminish(l note.Label) (note.Label, error) {
	c, err := ChromaticFrom(l)
	if err != nil {
		return "", err
	}
	down, err := c.Copy(cyclic.WithReverse(true))
	if err != nil {
		return "", err
	}
	return second(down)
}

// Augment returns the pitch class a semitone above l.
func Augment(l note.Label) (note.Label, error) {
	c, err := ChromaticFrom(l)
	if err != nil {
		return "", err
	}
	return second(c)
}

func second(s Scale) (note.Label, error) {
	it := s.Iterate()
	it.Next()
	v, ok := it.Next()
	if !ok {
		return "", fmt.Errorf("theory: sequence %s has fewer than two notes", s)
	}
	return v, nil
}

// Dominant returns the fifth degree of the major scale of root.
func Dominant(root note.Label) (note.Label, error) {
	s, err := Major(root)
	if err != nil {
		return "", err
	}
	return s.At(4), nil
}

// SecondaryDominant returns the dominant of the dominant of root.
func SecondaryDominant(root note.Label) (note.Label, error) {
	d, err := Dominant(root)
	if err != nil {
		return "", err
	}
	return Dominant(d)
}

// RelativeMinor returns the sixth degree of the major scale of root.
func RelativeMinor(root note.Label) (note.Label, error) {
	s, err := Major(root)
	if err != nil {
		return "", err
	}
	return s.At(5), nil
}
