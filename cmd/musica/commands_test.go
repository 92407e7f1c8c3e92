package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gomidi/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOut struct {
	connect.Out
	sent   [][]byte
	closed bool
}

func (o *fakeOut) Number() int    { return 0 }
func (o *fakeOut) String() string { return "Fake Synth" }
func (o *fakeOut) Open() error    { return nil }
func (o *fakeOut) Close() error {
	o.closed = true
	return nil
}
func (o *fakeOut) Send(b []byte) error {
	o.sent = append(o.sent, append([]byte(nil), b...))
	return nil
}

type fakeDriver struct {
	connect.Driver
	out    *fakeOut
	closed bool
}

func (d *fakeDriver) Ins() ([]connect.In, error)   { return nil, nil }
func (d *fakeDriver) Outs() ([]connect.Out, error) { return []connect.Out{d.out}, nil }
func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := a.rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newTestApp(drv *fakeDriver) *app {
	return &app{openDriver: func() (connect.Driver, error) { return drv, nil }}
}

func TestScaleCmd(t *testing.T) {
	out, err := run(t, newTestApp(nil), "scale", "D", "dorian")
	require.NoError(t, err)
	assert.Equal(t, "D E F G A B C\n", out)

	out, err = run(t, newTestApp(nil), "scale")
	require.NoError(t, err)
	assert.Equal(t, "C D E F G A B\n", out)

	out, err = run(t, newTestApp(nil), "scale", "A", "blues")
	require.NoError(t, err)
	assert.Equal(t, "A C D Eb E G\n", out)

	_, err = run(t, newTestApp(nil), "scale", "H")
	assert.Error(t, err)
}

func TestTriadCmd(t *testing.T) {
	out, err := run(t, newTestApp(nil), "triad", "A", "min")
	require.NoError(t, err)
	assert.Equal(t, "Amin(A C E)\n", out)

	_, err = run(t, newTestApp(nil), "triad", "A", "sus4")
	assert.Error(t, err)
}

func TestChordsCmd(t *testing.T) {
	out, err := run(t, newTestApp(nil), "chords", "F")
	require.NoError(t, err)
	assert.Equal(t, "Fmaj(F A C)\nGmin(G A# D)\nAmin(A C E)\nA#maj(A# D F)\nCmaj(C E G)\nDmin(D F A)\nEdim(E G A#)\n", out)
}

func TestFifthsCmd(t *testing.T) {
	out, err := run(t, newTestApp(nil), "fifths")
	require.NoError(t, err)
	assert.Equal(t, "C G D A E B F# C# G# Eb A# F\n", out)

	out, err = run(t, newTestApp(nil), "fifths", "--minors")
	require.NoError(t, err)
	assert.Equal(t, "A E B F# C# G# Eb A# F C G D\n", out)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "musica.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: G\nmode: mixolydian\n"), 0o600))
	out, err := run(t, newTestApp(nil), "--config", path, "scale")
	require.NoError(t, err)
	assert.Equal(t, "G A B C D E F\n", out)

	_, err = run(t, newTestApp(nil), "--config", filepath.Join(t.TempDir(), "nope.yaml"), "scale")
	assert.Error(t, err)
}

func playConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "musica.yaml")
	require.NoError(t, os.WriteFile(path, []byte("note_duration: 0s\nvelocity: 80\n"), 0o600))
	return path
}

func TestPlayCmd(t *testing.T) {
	drv := &fakeDriver{out: &fakeOut{}}
	_, err := run(t, newTestApp(drv), "--config", playConfig(t), "play", "C", "major", "--octave", "3")
	require.NoError(t, err)
	require.Len(t, drv.out.sent, 14)
	assert.Equal(t, []byte{0x90, 48, 80}, drv.out.sent[0])
	assert.Equal(t, []byte{0x90, 59, 80}, drv.out.sent[12])
	assert.True(t, drv.closed)
	assert.True(t, drv.out.closed)
}

func TestPlayChordCmd(t *testing.T) {
	drv := &fakeDriver{out: &fakeOut{}}
	_, err := run(t, newTestApp(drv), "--config", playConfig(t), "play", "E", "--chord", "min", "--repeat", "3")
	require.NoError(t, err)
	require.Len(t, drv.out.sent, 18)
	for i := 0; i < 3; i++ {
		assert.Equal(t, []byte{0x90, 64, 80}, drv.out.sent[i*6])
		assert.Equal(t, []byte{0x90, 67, 80}, drv.out.sent[i*6+1])
		assert.Equal(t, []byte{0x90, 71, 80}, drv.out.sent[i*6+2])
	}
}

func TestPlayCmdRepeat(t *testing.T) {
	drv := &fakeDriver{out: &fakeOut{}}
	_, err := run(t, newTestApp(drv), "--config", playConfig(t), "play", "C", "major", "-r", "2")
	require.NoError(t, err)
	require.Len(t, drv.out.sent, 28)
	assert.Equal(t, drv.out.sent[:14], drv.out.sent[14:])

	for _, r := range []string{"0", "-1"} {
		drv := &fakeDriver{out: &fakeOut{}}
		_, err := run(t, newTestApp(drv), "--config", playConfig(t), "play", "--repeat", r)
		require.Error(t, err, "repeat %s", r)
		assert.Empty(t, drv.out.sent)
		assert.False(t, drv.closed, "driver opened for repeat %s", r)
	}
}

func TestPlayCmdDriverError(t *testing.T) {
	boom := errors.New("no midi")
	a := &app{openDriver: func() (connect.Driver, error) { return nil, boom }}
	_, err := run(t, a, "play")
	require.ErrorIs(t, err, boom)
}

func TestPortsCmd(t *testing.T) {
	drv := &fakeDriver{out: &fakeOut{}}
	out, err := run(t, newTestApp(drv), "ports")
	require.NoError(t, err)
	assert.Equal(t, "MIDI IN Ports\n\n\nMIDI OUT Ports\n[0] Fake Synth\n\n\n", out)
}
