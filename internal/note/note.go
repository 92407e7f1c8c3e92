package note

import (
	"errors"
	"fmt"
	"strings"
)

// NoteModifier is a semitone offset from C. Values above B address the
// keys of the next octave on the keyboard.
type NoteModifier uint8

const (
	C = NoteModifier(iota)
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
	HC
	HCSharp
	HD
	HDSharp
)

// AbsoluteNote is a MIDI note number.
type AbsoluteNote uint8

// Label is a pitch-class symbol such as "C" or "F#".
type Label string

// Chromatic lists the twelve pitch classes in the spelling used throughout
// the theory package, starting from A.
var Chromatic = []Label{"A", "A#", "B", "C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#"}

var ErrUnknownLabel = errors.New("note: unknown label")

var (
	sharps = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flats  = [12]string{"C", "DB", "D", "EB", "E", "F", "GB", "G", "AB", "A", "BB", "B"}
)

var modifiers = func() map[string]NoteModifier {
	m := map[string]NoteModifier{"B#": C, "E#": F, "FB": E, "CB": B}
	for i := range sharps {
		m[sharps[i]] = NoteModifier(i)
		m[flats[i]] = NoteModifier(i)
	}
	return m
}()

// ModifierOf returns the semitone offset of l from C. Flats and sharps are
// accepted in any case ("Eb", "eb", "D#").
func ModifierOf(l Label) (NoteModifier, error) {
	m, ok := modifiers[strings.ToUpper(strings.TrimSpace(string(l)))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, string(l))
	}
	return m, nil
}

// Normalize returns the spelling of l used by Chromatic.
func Normalize(l Label) (Label, error) {
	m, err := ModifierOf(l)
	if err != nil {
		return "", err
	}
	return LabelOf(m), nil
}

// LabelOf returns the Chromatic spelling of m, folding the high keys back
// into one octave.
func LabelOf(m NoteModifier) Label {
	// Chromatic starts on A, three semitones below C.
	return Chromatic[(int(m)%12+3)%12]
}

// Pitch returns the MIDI number of l in the given octave, where octave 4
// holds middle C (60).
func Pitch(l Label, octave int) (AbsoluteNote, error) {
	m, err := ModifierOf(l)
	if err != nil {
		return 0, err
	}
	return absolute(m, octave)
}

func absolute(m NoteModifier, octave int) (AbsoluteNote, error) {
	n := 12*(octave+1) + int(m)
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("note: %s%d is outside the MIDI range", LabelOf(m), octave)
	}
	return AbsoluteNote(n), nil
}

// Ascending returns the MIDI numbers of labels starting in octave, moving
// up an octave every time a label is not above the previous one. A scale
// C D E ... B C played from octave 4 ends on C5.
func Ascending(labels []Label, octave int) ([]AbsoluteNote, error) {
	out := make([]AbsoluteNote, 0, len(labels))
	prev := -1
	for _, l := range labels {
		m, err := ModifierOf(l)
		if err != nil {
			return nil, err
		}
		if prev >= 0 && int(m) <= prev {
			octave++
		}
		prev = int(m)
		n, err := absolute(m, octave)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Octave returns the octave and pitch class of n.
func (n AbsoluteNote) Octave() (int, NoteModifier) {
	return int(n)/12 - 1, NoteModifier(n % 12)
}

func (n AbsoluteNote) String() string {
	o, m := n.Octave()
	return fmt.Sprintf("%s%d", LabelOf(m), o)
}
