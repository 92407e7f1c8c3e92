package playback

import (
	"errors"
	"fmt"
	"io"

	"github.com/gomidi/connect"
	"github.com/gomidi/midi"
	"github.com/gomidi/midi/midimessage/channel"
	"github.com/gomidi/midi/midiwriter"
)

var (
	ErrNoteRunning    = errors.New("playback: note already running")
	ErrNoteNotRunning = errors.New("playback: note is not running")
)

type midiWriter struct {
	wr              midi.Writer
	ch              channel.Channel
	chIndex         uint8
	noteState       [16][128]bool
	noConsolidation bool
}

// Writer writes channel messages to a single MIDI channel. Unless
// consolidation is disabled it refuses to start a note that is already
// running or to stop one that is not.
type Writer struct {
	*midiWriter
}

func NewWriter(dest io.Writer, options ...midiwriter.Option) *Writer {
	options = append(
		[]midiwriter.Option{
			midiwriter.NoRunningStatus(),
		}, options...)

	wr := midiwriter.New(dest, options...)
	return &Writer{&midiWriter{wr: wr, ch: channel.Channel0}}
}

// NewRawWriter is like NewWriter without note state checks.
func NewRawWriter(dest io.Writer, options ...midiwriter.Option) *Writer {
	w := NewWriter(dest, options...)
	w.noConsolidation = true
	return w
}

type outWriter struct {
	out connect.Out
}

func (w *outWriter) Write(b []byte) (int, error) {
	return len(b), w.out.Send(b)
}

// WriteTo returns a Writer sending to an opened MIDI out port.
func WriteTo(out connect.Out) *Writer {
	return NewWriter(&outWriter{out})
}

func (w *midiWriter) NoteOn(key, velocity uint8) error {
	return w.Write(w.ch.NoteOn(key, velocity))
}

func (w *midiWriter) NoteOff(key uint8) error {
	return w.Write(w.ch.NoteOff(key))
}

// Running reports whether key is sounding.
func (w *midiWriter) Running(key uint8) bool {
	return key < 128 && w.noteState[w.chIndex][key]
}

// AllOff stops every running note.
func (w *midiWriter) AllOff() error {
	for key, on := range w.noteState[w.chIndex] {
		if !on {
			continue
		}
		if err := w.NoteOff(uint8(key)); err != nil {
			return err
		}
	}
	return nil
}

func (w *midiWriter) Write(msg midi.Message) error {
	if !w.noConsolidation {
		if err := w.track(msg); err != nil {
			return err
		}
	}
	return w.wr.Write(msg)
}

// track updates the note state for msg.
func (w *midiWriter) track(msg midi.Message) error {
	var (
		ch, key uint8
		on      bool
	)
	switch m := msg.(type) {
	case channel.NoteOn:
		ch, key, on = m.Channel(), m.Key(), m.Velocity() > 0
	case channel.NoteOff:
		ch, key = m.Channel(), m.Key()
	case channel.NoteOffVelocity:
		ch, key = m.Channel(), m.Key()
	default:
		return nil
	}
	running := w.noteState[ch][key]
	switch {
	case on && running:
		return fmt.Errorf("%w: %s", ErrNoteRunning, msg)
	case !on && !running:
		return fmt.Errorf("%w: %s", ErrNoteNotRunning, msg)
	}
	w.noteState[ch][key] = on
	return nil
}
