package main

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gomidi/connect"
	driver "github.com/minikomi/rtmididrv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minikomi/musica/internal/config"
	"github.com/minikomi/musica/internal/logging"
	"github.com/minikomi/musica/internal/note"
	"github.com/minikomi/musica/internal/playback"
	"github.com/minikomi/musica/internal/theory"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger

	// openDriver is replaced in tests.
	openDriver func() (connect.Driver, error)
}

func newRootCmd() *cobra.Command {
	a := &app{
		openDriver: func() (connect.Driver, error) { return driver.New() },
	}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "musica",
		Short:        "Scales, chords and the circle of fifths, printed or played over MIDI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		a.scaleCmd(),
		a.triadCmd(),
		a.chordsCmd(),
		a.fifthsCmd(),
		a.playCmd(),
		a.portsCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logger.Level = a.logLevel
	}
	logger, err := logging.Setup(cfg.Logger)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func printLabels(w io.Writer, labels []note.Label) {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

// rootAndScale resolves the optional [root] [scale] arguments against the
// configuration.
func (a *app) rootAndScale(args []string) (theory.Scale, error) {
	root, name := a.cfg.Root, a.cfg.Mode
	if len(args) > 0 {
		root = args[0]
	}
	if len(args) > 1 {
		name = args[1]
	}
	return theory.ScaleByName(note.Label(root), name)
}

func (a *app) scaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scale [root] [mode|blues]",
		Short: "Print the notes of a scale",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.rootAndScale(args)
			if err != nil {
				return err
			}
			printLabels(cmd.OutOrStdout(), s.Values())
			return nil
		},
	}
}

func (a *app) triadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "triad <root> <maj|min|dim>",
		Short: "Print a triad",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := theory.ParseQuality(args[1])
			if err != nil {
				return err
			}
			c, err := theory.Triad(note.Label(args[0]), q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func (a *app) chordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chords [root]",
		Short: "Print the triads of a major key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.Root
			if len(args) > 0 {
				root = args[0]
			}
			chords, err := theory.DiatonicChords(note.Label(root))
			if err != nil {
				return err
			}
			for _, c := range chords {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func (a *app) fifthsCmd() *cobra.Command {
	var minors bool
	cmd := &cobra.Command{
		Use:   "fifths [start]",
		Short: "Print the circle of fifths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := note.Label("C")
			if len(args) > 0 {
				start = note.Label(args[0])
			}
			circle := theory.CircleOfFifths
			if minors {
				circle = theory.RelativeMinors
			}
			s, err := circle(start)
			if err != nil {
				return err
			}
			printLabels(cmd.OutOrStdout(), s.Values())
			return nil
		},
	}
	cmd.Flags().BoolVar(&minors, "minors", false, "print the relative minor of every key instead")
	return cmd
}

func (a *app) playCmd() *cobra.Command {
	var (
		chord   string
		octave  int
		repeats int
	)
	cmd := &cobra.Command{
		Use:   "play [root] [mode|blues]",
		Short: "Play a scale or a triad on a MIDI out port",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("octave") {
				octave = a.cfg.Octave
			}
			if repeats < 1 {
				return fmt.Errorf("--repeat %d must be at least 1", repeats)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			drv, err := a.openDriver()
			if err != nil {
				return fmt.Errorf("opening MIDI driver: %w", err)
			}
			defer drv.Close()
			out, err := playback.OpenOut(drv, a.cfg.Port)
			if err != nil {
				return err
			}
			defer out.Close()

			player := playback.NewPlayer(a.logger, playback.WriteTo(out), uint8(a.cfg.Velocity), a.cfg.NoteDuration)
			a.logger.Info("Playing", zap.String("port", out.String()), zap.Int("octave", octave))

			var play func() error
			if chord != "" {
				q, err := theory.ParseQuality(chord)
				if err != nil {
					return err
				}
				root := a.cfg.Root
				if len(args) > 0 {
					root = args[0]
				}
				c, err := theory.Triad(note.Label(root), q)
				if err != nil {
					return err
				}
				play = func() error { return player.PlayChord(ctx, c, octave) }
			} else {
				s, err := a.rootAndScale(args)
				if err != nil {
					return err
				}
				play = func() error { return player.PlayScale(ctx, s, octave) }
			}
			for i := 0; i < repeats; i++ {
				if err := play(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&chord, "chord", "", "play the maj, min or dim triad of root instead of a scale")
	cmd.Flags().IntVarP(&octave, "octave", "o", 4, "starting octave")
	cmd.Flags().IntVarP(&repeats, "repeat", "r", 1, "number of times to play the scale or chord")
	return cmd
}

func (a *app) portsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List MIDI ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drv, err := a.openDriver()
			if err != nil {
				return fmt.Errorf("opening MIDI driver: %w", err)
			}
			defer drv.Close()
			return playback.PrintPorts(cmd.OutOrStdout(), drv)
		},
	}
}
