// Package keyboard holds the state of the on-screen keyboard: the octave
// being played, the selected key and the notes currently held down.
package keyboard

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/minikomi/musica/internal/config"
	"github.com/minikomi/musica/internal/cyclic"
	"github.com/minikomi/musica/internal/note"
	"github.com/minikomi/musica/internal/theory"
)

const (
	MinOctave = 1
	MaxOctave = 8
)

// Writer receives the notes played on the keyboard.
type Writer interface {
	NoteOn(key, velocity uint8) error
	NoteOff(key uint8) error
}

type Command int

const (
	OctaveDown Command = iota
	OctaveUp
	RootDown
	RootUp
	NextMode
)

var modes = []theory.Mode{
	theory.Ionian, theory.Dorian, theory.Phrygian, theory.Lydian,
	theory.Mixolydian, theory.Aeolian, theory.Locrian,
}

type State struct {
	Octave   int
	Velocity uint8
	Root     note.Label
	Mode     theory.Mode

	scale   theory.Scale
	inScale [12]bool
	modes   *cyclic.Iterator[theory.Mode]
	active  map[int]note.AbsoluteNote

	w      Writer
	logger *zap.Logger
}

// New builds the keyboard for the key in cfg. Octave and velocity are
// clamped to their playable ranges, so a zero velocity still sounds.
func New(logger *zap.Logger, w Writer, cfg config.Config) (*State, error) {
	mode, err := theory.ParseMode(cfg.Mode)
	if err != nil {
		logger.Warn("Keyboard only plays modes, falling back to ionian", zap.String("mode", cfg.Mode))
		mode = theory.Ionian
	}
	s := &State{
		Octave:   clamp(cfg.Octave, MinOctave, MaxOctave),
		Velocity: uint8(clamp(cfg.Velocity, 1, 127)),
		active:   make(map[int]note.AbsoluteNote),
		w:        w,
		logger:   logger,
	}
	if err := s.setScale(note.Label(cfg.Root), mode); err != nil {
		return nil, err
	}
	return s, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *State) setScale(root note.Label, mode theory.Mode) error {
	scale, err := theory.ModeScale(root, mode)
	if err != nil {
		return err
	}
	pitchClasses := cyclic.Map(scale, func(l note.Label) note.NoteModifier {
		// Scale labels always come from the chromatic table.
		m, _ := note.ModifierOf(l)
		return m
	})
	var in [12]bool
	for m := range pitchClasses.All() {
		in[m%12] = true
	}
	cycle, err := cyclic.New(modes, cyclic.WithLimit(cyclic.Unbounded()), cyclic.WithStartIndex(int(mode)+1))
	if err != nil {
		return err
	}
	s.Root, s.Mode, s.scale, s.inScale = scale.At(0), mode, scale, in
	s.modes = cycle.Iterate()
	return nil
}

// Scale returns the selected scale.
func (s *State) Scale() theory.Scale { return s.scale }

// InScale reports whether the pitch class of m belongs to the selected
// scale.
func (s *State) InScale(m note.NoteModifier) bool { return s.inScale[m%12] }

// Absolute returns the MIDI note m plays in the current octave.
func (s *State) Absolute(m note.NoteModifier) note.AbsoluteNote {
	return note.AbsoluteNote(int(m) + 12*(s.Octave+1))
}

// Press starts the note m under key. Notes outside the scale are ignored,
// in which case the second return value is false.
func (s *State) Press(key int, m note.NoteModifier) (note.AbsoluteNote, bool, error) {
	n := s.Absolute(m)
	if !s.InScale(m) {
		s.logger.Debug("Outside scale", zap.Stringer("note", n), zap.Stringer("scale", s.scale))
		return n, false, nil
	}
	if _, held := s.active[key]; held {
		return n, false, nil
	}
	if err := s.w.NoteOn(uint8(n), s.Velocity); err != nil {
		return n, false, fmt.Errorf("pressing %s: %w", n, err)
	}
	s.active[key] = n
	s.logger.Debug("Pressed", zap.Stringer("note", n))
	return n, true, nil
}

// Release stops the note held under key, if any.
func (s *State) Release(key int) error {
	n, ok := s.active[key]
	if !ok {
		return nil
	}
	delete(s.active, key)
	if err := s.w.NoteOff(uint8(n)); err != nil {
		return fmt.Errorf("releasing %s: %w", n, err)
	}
	s.logger.Debug("Released", zap.Stringer("note", n))
	return nil
}

// Active returns the held notes in ascending order.
func (s *State) Active() []note.AbsoluteNote {
	out := make([]note.AbsoluteNote, 0, len(s.active))
	for _, n := range s.active {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Do applies a keyboard command.
func (s *State) Do(cmd Command) error {
	var err error
	switch cmd {
	case OctaveDown:
		s.Octave = clamp(s.Octave-1, MinOctave, MaxOctave)
	case OctaveUp:
		s.Octave = clamp(s.Octave+1, MinOctave, MaxOctave)
	case RootDown:
		var root note.Label
		if root, err = theory.Diminish(s.Root); err == nil {
			err = s.setScale(root, s.Mode)
		}
	case RootUp:
		var root note.Label
		if root, err = theory.Augment(s.Root); err == nil {
			err = s.setScale(root, s.Mode)
		}
	case NextMode:
		mode, _ := s.modes.Next()
		err = s.setScale(s.Root, mode)
	default:
		err = fmt.Errorf("keyboard: unknown command %d", int(cmd))
	}
	if err != nil {
		return err
	}
	s.logger.Info("State changed", zap.Int("octave", s.Octave), zap.Stringer("scale", s.scale))
	return nil
}
