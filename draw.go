package main

import (
	"fmt"
	"strconv"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/minikomi/musica/internal/keyboard"
	"github.com/minikomi/musica/internal/note"
)

const octaveWidth = 70

var red = sdl.Color{R: 225, G: 30, B: 30, A: 225}
var gray = sdl.Color{R: 180, G: 180, B: 180, A: 225}
var dark = sdl.Color{R: 50, G: 50, B: 50, A: 255}

// x offsets of the press markers inside one octave.
var whiteOffsets = map[note.NoteModifier]int32{
	note.C: 2, note.D: 12, note.E: 22, note.F: 32, note.G: 42, note.A: 52, note.B: 62,
}

var blackOffsets = map[note.NoteModifier]int32{
	note.CSharp: 8, note.DSharp: 18, note.FSharp: 38, note.GSharp: 48, note.ASharp: 58,
}

func octaveLeft(octave int) int32 {
	return 10 + octaveWidth*int32(octave-keyboard.MinOctave)
}

func drawText(renderer *sdl.Renderer, font *ttf.Font, text string, color sdl.Color, x, y int32) error {
	if font == nil {
		return nil
	}
	solid, err := font.RenderUTF8Solid(text, color)
	if err != nil {
		return err
	}
	defer solid.Free()

	texture, err := renderer.CreateTextureFromSurface(solid)
	if err != nil {
		return err
	}
	defer texture.Destroy()

	rect := sdl.Rect{X: x, Y: y, W: solid.W, H: solid.H}
	return renderer.Copy(texture, nil, &rect)
}

// markKey fills the marker of pitch class m in the octave starting at left.
func markKey(renderer *sdl.Renderer, left int32, m note.NoteModifier, small bool) {
	var rect sdl.Rect
	if off, isBlack := blackOffsets[m]; isBlack {
		rect = sdl.Rect{X: left + off, Y: 12, W: 4, H: 8}
	} else {
		rect = sdl.Rect{X: left + whiteOffsets[m], Y: 40, W: 6, H: 8}
	}
	if small {
		rect.Y += 4
		rect.H = 3
	}
	renderer.FillRect(&rect)
}

func Draw(renderer *sdl.Renderer, font *ttf.Font, kb *keyboard.State) error {
	renderer.SetDrawColor(225, 225, 225, 255)
	renderer.Clear()

	for octave := keyboard.MinOctave; octave <= keyboard.MaxOctave; octave++ {
		left := octaveLeft(octave)

		color := gray
		if octave == kb.Octave {
			color = red
		}
		if err := drawText(renderer, font, strconv.Itoa(octave), color, left, 0); err != nil {
			return err
		}

		// bg
		renderer.SetDrawColor(255, 255, 255, 255)
		renderer.FillRect(&sdl.Rect{X: left, Y: 12, W: octaveWidth, H: 40})

		// keys
		renderer.SetDrawColor(dark.R, dark.G, dark.B, dark.A)
		for j := int32(0); j < 7; j++ {
			renderer.DrawRect(&sdl.Rect{X: left + j*10, Y: 12, W: 10, H: 40})
		}

		// black keys
		for _, j := range []int32{0, 1, 3, 4, 5} {
			renderer.FillRect(&sdl.Rect{X: left + 5 + j*10 + 2, Y: 12, W: 6, H: 20})
		}

		// scale
		renderer.SetDrawColor(gray.R, gray.G, gray.B, gray.A)
		for m := note.C; m <= note.B; m++ {
			if kb.InScale(m) {
				markKey(renderer, left, m, true)
			}
		}

		// active marker
		if octave == kb.Octave {
			renderer.SetDrawColor(red.R, red.G, red.B, red.A)
			width := int32(octaveWidth)
			if octave < keyboard.MaxOctave {
				width += 20
			}
			renderer.FillRect(&sdl.Rect{X: left, Y: 52, W: width, H: 2})
		}
	}

	// pressed keys
	renderer.SetDrawColor(red.R, red.G, red.B, red.A)
	for _, abs := range kb.Active() {
		octave, m := abs.Octave()
		if octave < keyboard.MinOctave || octave > keyboard.MaxOctave {
			continue
		}
		markKey(renderer, octaveLeft(octave), m, false)
	}

	title := fmt.Sprintf("%s %s", kb.Root, kb.Mode)
	if err := drawText(renderer, font, title, dark, octaveLeft(keyboard.MinOctave), 60); err != nil {
		return err
	}

	renderer.Present()
	return nil
}
