// Package config handles loading and saving user configuration for parley.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/parley/internal/dialogue"
	"github.com/f3rmion/parley/internal/script"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file inside the config directory.
const FileName = "config.yaml"

// Settings holds all user configuration for the player.
type Settings struct {
	Keys            []string `mapstructure:"keys" yaml:"keys"`                       // Skip keys for dialogues that don't set their own
	HideWhenEmpty   bool     `mapstructure:"hide_when_empty" yaml:"hide_when_empty"` // Hide a dialogue box once it runs out of paragraphs
	FPS             int      `mapstructure:"fps" yaml:"fps"`                         // Frames per second of the update loop
	TypeWriterSpeed float64  `mapstructure:"typewriter_speed" yaml:"typewriter_speed"`
	LogLevel        string   `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	Theme           Theme    `mapstructure:"theme" yaml:"theme"`
}

// Theme holds the player's colors.
type Theme struct {
	Background string `mapstructure:"background" yaml:"background"`
	Border     string `mapstructure:"border" yaml:"border"`
	Help       string `mapstructure:"help" yaml:"help"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Keys:            []string{string(dialogue.KeySpace), string(dialogue.KeyEnter)},
		HideWhenEmpty:   true,
		FPS:             30,
		TypeWriterSpeed: dialogue.DefaultTypeWriterSpeed,
		LogLevel:        "info",
		Theme: Theme{
			Background: "#1a1a2e",
			Border:     "#3d5a80",
			Help:       "#666666",
		},
	}
}

// SetDefaults registers the built-in settings with v.
func SetDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("keys", def.Keys)
	v.SetDefault("hide_when_empty", def.HideWhenEmpty)
	v.SetDefault("fps", def.FPS)
	v.SetDefault("typewriter_speed", def.TypeWriterSpeed)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("theme.background", def.Theme.Background)
	v.SetDefault("theme.border", def.Theme.Border)
	v.SetDefault("theme.help", def.Theme.Help)
}

// Load reads config.yaml from dir through v, on top of the defaults and any
// environment overrides already bound to v. A missing file is not an error.
func Load(v *viper.Viper, dir string) (*Settings, error) {
	SetDefaults(v)
	v.SetConfigFile(filepath.Join(dir, FileName))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) normalize() {
	for i, k := range s.Keys {
		s.Keys[i] = strings.ToLower(strings.TrimSpace(k))
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
}

// Validate checks that s contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func (s *Settings) Validate() error {
	var errs []error
	if s.FPS < 1 || s.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps must be within [1, 240], got %d", s.FPS))
	}
	if s.TypeWriterSpeed < 0 || s.TypeWriterSpeed > 1 {
		errs = append(errs, fmt.Errorf("typewriter_speed must be within [0, 1], got %v", s.TypeWriterSpeed))
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	for i, k := range s.Keys {
		if k == "" {
			errs = append(errs, fmt.Errorf("keys[%d] is empty", i))
		}
	}
	for name, c := range map[string]string{
		"theme.background": s.Theme.Background,
		"theme.border":     s.Theme.Border,
		"theme.help":       s.Theme.Help,
	} {
		if c != "" && !script.ValidColor(c) {
			errs = append(errs, fmt.Errorf("%s: invalid color %q", name, c))
		}
	}
	if len(s.Keys) == 0 {
		slog.Warn("no skip keys configured; dialogues without their own keys will never advance")
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", level)
}

// ScriptDefaults returns what scripts inherit from these settings.
func (s *Settings) ScriptDefaults() script.Defaults {
	keys := make([]dialogue.Key, len(s.Keys))
	for i, k := range s.Keys {
		keys[i] = dialogue.Key(k)
	}
	return script.Defaults{
		Keys:            keys,
		HideWhenEmpty:   s.HideWhenEmpty,
		TypeWriterSpeed: s.TypeWriterSpeed,
	}
}

// Save writes settings to a YAML file.
func Save(path string, s *Settings) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "parley"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
