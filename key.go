package main

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/minikomi/musica/internal/keyboard"
	"github.com/minikomi/musica/internal/note"
)

var keyToNote = map[sdl.Keycode]note.NoteModifier{
	sdl.K_a: note.C,
	sdl.K_w: note.CSharp,
	sdl.K_s: note.D,
	sdl.K_e: note.DSharp,
	sdl.K_d: note.E,
	sdl.K_f: note.F,
	sdl.K_t: note.FSharp,
	sdl.K_g: note.G,
	sdl.K_y: note.GSharp,
	sdl.K_h: note.A,
	sdl.K_u: note.ASharp,
	sdl.K_j: note.B,
	// high octave
	sdl.K_k: note.HC,
	sdl.K_o: note.HCSharp,
	sdl.K_l: note.HD,
	sdl.K_p: note.HDSharp,
}

var keyToCommand = map[sdl.Keycode]keyboard.Command{
	sdl.K_COMMA:        keyboard.OctaveDown,
	sdl.K_PERIOD:       keyboard.OctaveUp,
	sdl.K_LEFTBRACKET:  keyboard.RootDown,
	sdl.K_RIGHTBRACKET: keyboard.RootUp,
	sdl.K_m:            keyboard.NextMode,
}

func HandleKeyEvent(ev *sdl.KeyboardEvent, kb *keyboard.State, logger *zap.Logger) {
	kc := ev.Keysym.Sym

	noteModifier, notePressed := keyToNote[kc]
	command, commandPressed := keyToCommand[kc]

	switch {
	case notePressed:
		// first keydown = ev.State = 1, ev.Repeat = 0
		switch {
		case ev.State == sdl.PRESSED && ev.Repeat == 0:
			if _, _, err := kb.Press(int(kc), noteModifier); err != nil {
				logger.Warn("Could not play note", zap.Error(err))
			}
		case ev.State == sdl.RELEASED:
			if err := kb.Release(int(kc)); err != nil {
				logger.Warn("Could not release note", zap.Error(err))
			}
		}
	case commandPressed:
		if ev.State == sdl.PRESSED && ev.Repeat == 0 {
			if err := kb.Do(command); err != nil {
				logger.Warn("Command failed", zap.Error(err))
			}
		}
	default:
		logger.Debug("Unmapped key",
			zap.Uint32("timestamp", ev.Timestamp),
			zap.Int("scancode", int(sdl.GetScancodeFromKey(kc))),
			zap.Uint8("state", ev.State))
	}
}
