package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/f3rmion/parley/internal/config"
	"github.com/f3rmion/parley/internal/dialogue"
	"github.com/spf13/viper"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	s, err := config.Load(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	def := config.Default()
	if !slices.Equal(s.Keys, def.Keys) || s.FPS != def.FPS || !s.HideWhenEmpty {
		t.Errorf("Load() = %+v, want defaults %+v", s, def)
	}
	if s.Theme.Background != def.Theme.Background {
		t.Errorf("theme = %+v", s.Theme)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := `
keys: [" Space ", z]
hide_when_empty: false
fps: 60
typewriter_speed: 0.8
log_level: DEBUG
theme:
  background: "#000000"
`
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := config.Load(viper.New(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := []string{"space", "z"}; !slices.Equal(s.Keys, want) {
		t.Errorf("keys = %v, want %v", s.Keys, want)
	}
	if s.HideWhenEmpty || s.FPS != 60 || s.TypeWriterSpeed != 0.8 || s.LogLevel != "debug" {
		t.Errorf("settings = %+v", s)
	}
	if s.Theme.Background != "#000000" || s.Theme.Border != config.Default().Theme.Border {
		t.Errorf("theme = %+v", s.Theme)
	}

	def := s.ScriptDefaults()
	if want := []dialogue.Key{"space", "z"}; !slices.Equal(def.Keys, want) {
		t.Errorf("script keys = %v, want %v", def.Keys, want)
	}
	if def.HideWhenEmpty || def.TypeWriterSpeed != 0.8 {
		t.Errorf("script defaults = %+v", def)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := "fps: 0\ntypewriter_speed: 3\nlog_level: loud\ntheme:\n  border: purple\n"
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := config.Load(viper.New(), dir)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"fps", "typewriter_speed", "log_level", "theme.border"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got: %v", want, err)
		}
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := config.Default()
	want.FPS = 12
	want.Keys = []string{"a"}
	if err := config.Save(filepath.Join(dir, config.FileName), want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := config.Load(viper.New(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.FPS != 12 || !slices.Equal(got.Keys, want.Keys) {
		t.Errorf("Load() = %+v", got)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := config.ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := config.ParseLevel("trace"); err == nil {
		t.Error("ParseLevel(trace) should fail")
	}
}
