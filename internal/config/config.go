// Package config loads the YAML configuration shared by the keyboard and
// the musica command.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/minikomi/musica/internal/note"
	"github.com/minikomi/musica/internal/theory"
)

type LoggerConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Stdout     bool   `yaml:"stdout"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
}

type Config struct {
	Root         string        `yaml:"root"`
	Mode         string        `yaml:"mode"`
	Octave       int           `yaml:"octave"`
	Velocity     int           `yaml:"velocity"`
	NoteDuration time.Duration `yaml:"note_duration"`
	Port         int           `yaml:"port"`
	Font         string        `yaml:"font"`
	Logger       LoggerConfig  `yaml:"logger"`
}

func Default() Config {
	return Config{
		Root:         "C",
		Mode:         theory.Ionian.String(),
		Octave:       4,
		Velocity:     90,
		NoteDuration: 300 * time.Millisecond,
		Logger: LoggerConfig{
			Level:      "info",
			Stdout:     true,
			MaxSize:    100,
			MaxBackups: 3,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := note.Normalize(note.Label(c.Root)); err != nil {
		return fmt.Errorf("config root: %w", err)
	}
	if _, err := theory.ScaleByName(note.Label(c.Root), c.Mode); err != nil {
		return fmt.Errorf("config mode: %w", err)
	}
	if c.Octave < 0 || c.Octave > 9 {
		return fmt.Errorf("config octave %d must be between 0 and 9", c.Octave)
	}
	if c.Velocity < 1 || c.Velocity > 127 {
		return fmt.Errorf("config velocity %d must be between 1 and 127", c.Velocity)
	}
	if c.NoteDuration < 0 {
		return fmt.Errorf("config note_duration %s must not be negative", c.NoteDuration)
	}
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config logger level %q must be one of: debug, info, warn, error", c.Logger.Level)
	}
	return nil
}

// Scale returns the scale selected by Root and Mode.
func (c Config) Scale() (theory.Scale, error) {
	return theory.ScaleByName(note.Label(c.Root), c.Mode)
}
