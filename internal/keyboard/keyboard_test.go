package keyboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minikomi/musica/internal/config"
	"github.com/minikomi/musica/internal/note"
	"github.com/minikomi/musica/internal/theory"
)

type event struct {
	on  bool
	key uint8
}

type recorder struct {
	events []event
	err    error
}

func (r *recorder) NoteOn(key, velocity uint8) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event{true, key})
	return nil
}

func (r *recorder) NoteOff(key uint8) error {
	r.events = append(r.events, event{false, key})
	return nil
}

func newState(t *testing.T, mutate func(*config.Config)) (*State, *recorder) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	rec := &recorder{}
	s, err := New(zap.NewNop(), rec, cfg)
	require.NoError(t, err)
	return s, rec
}

func TestNew(t *testing.T) {
	s, _ := newState(t, nil)
	assert.Equal(t, 4, s.Octave)
	assert.Equal(t, note.Label("C"), s.Root)
	assert.Equal(t, theory.Ionian, s.Mode)
	assert.True(t, s.InScale(note.E))
	assert.False(t, s.InScale(note.FSharp))
	assert.True(t, s.InScale(note.HD))

	s, _ = newState(t, func(c *config.Config) {
		c.Root, c.Mode, c.Octave = "d#", "blues", 12
	})
	assert.Equal(t, note.Label("Eb"), s.Root)
	assert.Equal(t, theory.Ionian, s.Mode)
	assert.Equal(t, MaxOctave, s.Octave)

	_, err := New(zap.NewNop(), &recorder{}, config.Config{Root: "H", Mode: "ionian"})
	assert.Error(t, err)
}

func TestNewClampsVelocity(t *testing.T) {
	for cfgVelocity, want := range map[int]uint8{0: 1, -5: 1, 64: 64, 200: 127} {
		s, rec := newState(t, func(c *config.Config) { c.Velocity = cfgVelocity })
		assert.Equal(t, want, s.Velocity, "velocity %d", cfgVelocity)

		_, played, err := s.Press(1, note.C)
		require.NoError(t, err)
		assert.True(t, played)
		require.NoError(t, s.Release(1))
		assert.Equal(t, []event{{true, 60}, {false, 60}}, rec.events)
	}
}

func TestPressRelease(t *testing.T) {
	s, rec := newState(t, nil)

	n, played, err := s.Press(1, note.C)
	require.NoError(t, err)
	assert.True(t, played)
	assert.Equal(t, note.AbsoluteNote(60), n)

	_, played, err = s.Press(2, note.CSharp)
	require.NoError(t, err)
	assert.False(t, played)

	_, played, err = s.Press(3, note.HC)
	require.NoError(t, err)
	assert.True(t, played)

	// Key repeat does not retrigger.
	_, played, err = s.Press(1, note.C)
	require.NoError(t, err)
	assert.False(t, played)

	assert.Equal(t, []note.AbsoluteNote{60, 72}, s.Active())

	require.NoError(t, s.Release(1))
	require.NoError(t, s.Release(2))
	require.NoError(t, s.Release(3))
	assert.Empty(t, s.Active())

	assert.Equal(t, []event{{true, 60}, {true, 72}, {false, 60}, {false, 72}}, rec.events)
}

func TestPressError(t *testing.T) {
	s, rec := newState(t, nil)
	rec.err = errors.New("port closed")
	_, played, err := s.Press(1, note.G)
	require.ErrorIs(t, err, rec.err)
	assert.False(t, played)
	assert.Empty(t, s.Active())
}

func TestReleaseAfterOctaveChange(t *testing.T) {
	s, rec := newState(t, nil)
	_, _, err := s.Press(1, note.A)
	require.NoError(t, err)
	require.NoError(t, s.Do(OctaveUp))
	require.NoError(t, s.Release(1))
	assert.Equal(t, []event{{true, 69}, {false, 69}}, rec.events)
}

func TestOctaveCommands(t *testing.T) {
	s, _ := newState(t, func(c *config.Config) { c.Octave = MinOctave })
	require.NoError(t, s.Do(OctaveDown))
	assert.Equal(t, MinOctave, s.Octave)
	require.NoError(t, s.Do(OctaveUp))
	assert.Equal(t, MinOctave+1, s.Octave)
	assert.Equal(t, note.AbsoluteNote(36), s.Absolute(note.C))
}

func TestRootCommands(t *testing.T) {
	s, _ := newState(t, nil)
	require.NoError(t, s.Do(RootUp))
	assert.Equal(t, note.Label("C#"), s.Root)
	assert.True(t, s.InScale(note.F))
	require.NoError(t, s.Do(RootDown))
	require.NoError(t, s.Do(RootDown))
	assert.Equal(t, note.Label("B"), s.Root)
	assert.Equal(t, "Sequence[note.Label](B, C#, Eb, E, F#, G#, A#)", s.Scale().String())
}

func TestNextMode(t *testing.T) {
	s, _ := newState(t, func(c *config.Config) { c.Mode = "aeolian" })
	require.NoError(t, s.Do(NextMode))
	assert.Equal(t, theory.Locrian, s.Mode)
	require.NoError(t, s.Do(NextMode))
	assert.Equal(t, theory.Ionian, s.Mode)
	require.NoError(t, s.Do(NextMode))
	assert.Equal(t, theory.Dorian, s.Mode)
	assert.False(t, s.InScale(note.E))
	assert.True(t, s.InScale(note.DSharp))

	assert.Error(t, s.Do(Command(42)))
}
