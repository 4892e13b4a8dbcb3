package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/parley/internal/config"
	"github.com/f3rmion/parley/internal/dialogue"
	"github.com/f3rmion/parley/internal/script"
)

func TestParsePresses(t *testing.T) {
	t.Parallel()

	got, err := parsePresses([]string{"0:space", "3: Enter", "3:a"})
	if err != nil {
		t.Fatalf("parsePresses() error = %v", err)
	}
	if len(got[0]) != 1 || got[0][0] != dialogue.KeySpace {
		t.Errorf("frame 0 = %v", got[0])
	}
	if len(got[3]) != 2 || got[3][0] != dialogue.KeyEnter || got[3][1] != "a" {
		t.Errorf("frame 3 = %v", got[3])
	}

	for _, bad := range []string{"space", "x:space", "-1:space", "2:"} {
		if _, err := parsePresses([]string{bad}); err == nil {
			t.Errorf("parsePresses(%q) succeeded", bad)
		}
	}
}

func TestSimulateExample(t *testing.T) {
	t.Parallel()

	w, err := exampleWorld(config.Default())
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err = simulate(&out, w, simulation{delta: 0.1, every: dialogue.KeySpace, changes: true})
	if err != nil {
		t.Fatalf("simulate() error = %v\n%s", err, out.String())
	}

	for _, want := range []string{
		`main [paragraph-ready] "It can move itself around."`,
		"! main fired scene:second_dialogue",
		`"multiple running at once!"`,
		"! main fired background:#572268",
		"finished after",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSimulateFixedFrames(t *testing.T) {
	t.Parallel()

	w, err := exampleWorld(config.Default())
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := simulate(&out, w, simulation{frames: 3, delta: 0.1}); err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if n := strings.Count(out.String(), "frame "); n != 3 {
		t.Errorf("printed %d frames, want 3", n)
	}
	if !strings.Contains(out.String(), "side: hidden") {
		t.Errorf("empty side dialogue should be hidden:\n%s", out.String())
	}
}

func TestCheckScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte(script.ExampleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := checkScript(&out, good); err != nil {
		t.Fatalf("checkScript() error = %v", err)
	}
	for _, want := range []string{"A very basic story", "dialogue main", "scene    second_dialogue"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}

	bad := filepath.Join(dir, "bad.yaml")
	src := strings.Replace(script.ExampleYAML, "action: background:#572268", "action: explode", 1)
	if err := os.WriteFile(bad, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	if err := checkScript(&out, bad); err == nil {
		t.Error("checkScript() accepted an unknown action")
	}
}

func TestSetupLoggingClosesLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "parley.log")
	closer, err := setupLogging(config.Default(), path, false)
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	slog.Info("scene started", "scene", "second_dialogue")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := closer.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("second Close() = %v, want os.ErrClosed", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "scene=second_dialogue") {
		t.Errorf("log file missing record:\n%s", data)
	}

	closer, err = setupLogging(config.Default(), "", true)
	if err != nil {
		t.Fatalf("setupLogging(stderr) error = %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("closing the stderr logger = %v, want nil", err)
	}
}
