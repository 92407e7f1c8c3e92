package playback

import (
	"fmt"
	"io"

	"github.com/gomidi/connect"
)

// PortLister is the part of a connect.Driver used to find ports.
type PortLister interface {
	Ins() ([]connect.In, error)
	Outs() ([]connect.Out, error)
}

type port interface {
	Number() int
	String() string
}

func printPort(w io.Writer, p port) {
	fmt.Fprintf(w, "[%v] %s\n", p.Number(), p.String())
}

// PrintPorts writes the in and out ports of drv to w.
func PrintPorts(w io.Writer, drv PortLister) error {
	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("listing MIDI in ports: %w", err)
	}
	outs, err := drv.Outs()
	if err != nil {
		return fmt.Errorf("listing MIDI out ports: %w", err)
	}
	fmt.Fprintf(w, "MIDI IN Ports\n")
	for _, p := range ins {
		printPort(w, p)
	}
	fmt.Fprintf(w, "\n\nMIDI OUT Ports\n")
	for _, p := range outs {
		printPort(w, p)
	}
	fmt.Fprintf(w, "\n\n")
	return nil
}

// OpenOut opens the out port with the given number.
func OpenOut(drv PortLister, number int) (connect.Out, error) {
	outs, err := drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI out ports: %w", err)
	}
	for _, out := range outs {
		if out.Number() != number {
			continue
		}
		if err := out.Open(); err != nil {
			return nil, fmt.Errorf("opening MIDI out port %d: %w", number, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("no MIDI out port %d among %d ports", number, len(outs))
}
