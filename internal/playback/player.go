// Package playback sends scales and chords to a MIDI output.
package playback

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/minikomi/musica/internal/cyclic"
	"github.com/minikomi/musica/internal/note"
	"github.com/minikomi/musica/internal/theory"
)

const (
	DefaultVelocity = 90
	DefaultDuration = 300 * time.Millisecond
)

// A Player plays finite note sequences on a Writer, one note every
// Duration.
type Player struct {
	w        *Writer
	logger   *zap.Logger
	velocity uint8
	duration time.Duration
}

func NewPlayer(logger *zap.Logger, w *Writer, velocity uint8, duration time.Duration) *Player {
	if velocity == 0 {
		velocity = DefaultVelocity
	}
	if duration < 0 {
		duration = DefaultDuration
	}
	return &Player{w: w, logger: logger, velocity: velocity, duration: duration}
}

// PlayScale plays one pass of s upwards from octave. The sequence must be
// bounded.
func (p *Player) PlayScale(ctx context.Context, s *cyclic.Sequence[note.Label], octave int) error {
	labels, err := s.Collect()
	if err != nil {
		return err
	}
	notes, err := note.Ascending(labels, octave)
	if err != nil {
		return err
	}
	p.logger.Debug("Playing scale", zap.Stringer("sequence", s), zap.Int("octave", octave))
	for _, n := range notes {
		if err := p.sound(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// PlayChord sounds every note of c at once, stacked upwards from octave.
func (p *Player) PlayChord(ctx context.Context, c theory.Chord, octave int) error {
	notes, err := note.Ascending(c.Labels(), octave)
	if err != nil {
		return err
	}
	p.logger.Debug("Playing chord", zap.Stringer("chord", c), zap.Int("octave", octave))
	for _, n := range notes {
		if err := p.w.NoteOn(uint8(n), p.velocity); err != nil {
			return errors.Join(err, p.w.AllOff())
		}
	}
	waitErr := p.wait(ctx)
	return errors.Join(waitErr, p.w.AllOff())
}

func (p *Player) sound(ctx context.Context, n note.AbsoluteNote) error {
	if err := p.w.NoteOn(uint8(n), p.velocity); err != nil {
		return err
	}
	p.logger.Debug("Note on", zap.Stringer("note", n))
	waitErr := p.wait(ctx)
	if err := p.w.NoteOff(uint8(n)); err != nil {
		return errors.Join(waitErr, err)
	}
	return waitErr
}

func (p *Player) wait(ctx context.Context) error {
	if p.duration == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
