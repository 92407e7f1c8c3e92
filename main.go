package main

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"go.uber.org/zap"

	driver "github.com/minikomi/rtmididrv"

	"github.com/minikomi/musica/internal/config"
	"github.com/minikomi/musica/internal/keyboard"
	"github.com/minikomi/musica/internal/logging"
	"github.com/minikomi/musica/internal/playback"
)

var winTitle string = "🎹"
var winWidth, winHeight int32 = 600, 90

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [list | config.yaml]\n", os.Args[0])
}

func run() int {
	configPath := ""
	if len(os.Args) == 2 && os.Args[1] != "list" {
		configPath = os.Args[1]
	} else if len(os.Args) > 2 {
		usage()
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %s\n", err)
		return 1
	}
	logger, err := logging.Setup(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %s\n", err)
		return 1
	}
	defer logger.Sync()

	// midi
	drv, err := driver.New()
	if err != nil {
		logger.Error("Failed to open MIDI driver", zap.Error(err))
		return 1
	}
	defer drv.Close()

	if len(os.Args) == 2 && os.Args[1] == "list" {
		if err := playback.PrintPorts(os.Stdout, drv); err != nil {
			logger.Error("Failed to list ports", zap.Error(err))
			return 1
		}
		return 0
	}

	out, err := playback.OpenOut(drv, cfg.Port)
	if err != nil {
		logger.Error("Failed to open MIDI out", zap.Error(err))
		return 1
	}
	defer out.Close()
	wr := playback.WriteTo(out)
	defer wr.AllOff()

	kb, err := keyboard.New(logger, wr, cfg)
	if err != nil {
		logger.Error("Failed to set up keyboard", zap.Error(err))
		return 1
	}

	// window
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		logger.Error("Failed to initialise SDL", zap.Error(err))
		return 1
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(winTitle, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		winWidth, winHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		logger.Error("Failed to create window", zap.Error(err))
		return 1
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		logger.Error("Failed to create renderer", zap.Error(err))
		return 2
	}
	defer renderer.Destroy()

	var font *ttf.Font
	if cfg.Font != "" {
		if err := ttf.Init(); err != nil {
			logger.Error("Failed to initialise fonts", zap.Error(err))
			return 1
		}
		defer ttf.Quit()
		if font, err = ttf.OpenFont(cfg.Font, 12); err != nil {
			logger.Error("Failed to open font", zap.String("font", cfg.Font), zap.Error(err))
			return 1
		}
		defer font.Close()
	}

	logger.Info("Keyboard ready", zap.String("port", out.String()), zap.Stringer("scale", kb.Scale()))

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.KeyboardEvent:
				HandleKeyEvent(ev, kb, logger)
			case *sdl.QuitEvent:
				logger.Info("Quit")
				running = false
			}
		}
		if err := Draw(renderer, font, kb); err != nil {
			logger.Error("Failed to draw", zap.Error(err))
			return 1
		}
		sdl.Delay(16)
	}
	return 0
}

func main() {
	os.Exit(run())
}
