package script_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/parley/internal/dialogue"
	"github.com/f3rmion/parley/internal/script"
)

func TestExampleLoads(t *testing.T) {
	t.Parallel()

	s, err := script.Example()
	if err != nil {
		t.Fatalf("Example() error = %v", err)
	}
	if len(s.Dialogues) != 2 {
		t.Fatalf("got %d dialogues, want 2", len(s.Dialogues))
	}

	ds, err := script.Build(s, script.DefaultDefaults())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	main := ds[0]
	if main.Name() != "main" || main.Len() != 7 {
		t.Errorf("main = %q with %d paragraphs", main.Name(), main.Len())
	}
	if keys := main.Keys(); len(keys) != 3 || keys[2] != "a" {
		t.Errorf("main keys = %v", keys)
	}
	if !ds[1].IsEmpty() {
		t.Errorf("side should start empty, has %d paragraphs", ds[1].Len())
	}

	ps := main.Paragraphs()
	sentences := ps[1].Sentences()
	if got := sentences[0].Text(); got != "This is a very basic story,\n" {
		t.Errorf("first sentence text = %q", got)
	}
	if sentences[1].Color() != "#ff0000" {
		t.Errorf("color = %q", sentences[1].Color())
	}
	if sentences[2].FontSize() != 64 {
		t.Errorf("size = %v", sentences[2].FontSize())
	}
	if sentences[0].FontSize() != dialogue.DefaultFontSize {
		t.Errorf("default size = %v", sentences[0].FontSize())
	}
	if tw := sentences[5].TypeWriter(); !tw.Active() || tw.Speed() != dialogue.DefaultTypeWriterSpeed {
		t.Errorf("typewriter = active %v speed %v", tw.Active(), tw.Speed())
	}
	if e, ok := ps[2].Position(); !ok || e.Left != dialogue.Px(300) {
		t.Errorf("position = %+v, %v", e, ok)
	}
	if w, ok := ps[3].Width(); !ok || w != dialogue.Percent(25) {
		t.Errorf("width = %+v, %v", w, ok)
	}
	last := ps[6].Sentences()[0].TypeWriter()
	if last.Speed() != 0.7 {
		t.Errorf("speed = %v, want 0.7", last.Speed())
	}

	scene, err := script.BuildScene(s.Scenes["second_dialogue"], script.DefaultDefaults())
	if err != nil || len(scene) != 1 {
		t.Fatalf("BuildScene() = %v, %v", scene, err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := script.LoadFromReader(strings.NewReader(`
dialogues:
  - name: main
    paragraphs:
      - sentences:
          - text: hi
            colour: "#fff"
`))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error should mention the field, got: %v", err)
	}
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "dialogues: []\n"} {
		_, err := script.LoadFromReader(strings.NewReader(in))
		if !errors.Is(err, script.ErrEmptyScript) {
			t.Errorf("LoadFromReader(%q) error = %v, want ErrEmptyScript", in, err)
		}
	}
}

func TestValidateReportsEverything(t *testing.T) {
	t.Parallel()

	_, err := script.LoadFromReader(strings.NewReader(`
dialogues:
  - name: main
    paragraphs:
      - sentences: []
      - width: wide
        position: {top: "1x"}
        sentences:
          - text: hi
            color: "#zzz"
            size: -1
            action: scene:missing
            typewriter: {speed: 2}
  - name: main
scenes:
  orphan:
    dialogue: nowhere
    paragraphs: []
`))
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		"no sentences",
		"width",
		"position.top",
		"invalid color",
		"non-negative",
		"unknown scene",
		"typewriter.speed",
		"duplicate dialogue name",
		"unknown dialogue",
		"no paragraphs",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestValidateRejectsNonFiniteNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sentence string
		width    string
		want     string
	}{
		{"nan width", "text: hi", "NaN", "width"},
		{"inf width", "text: hi", "Infpx", "width"},
		{"nan percent", "text: hi", "nan%", "width"},
		{"nan speed", "{text: hi, typewriter: {speed: .nan}}", "", "typewriter.speed"},
		{"nan size", "{text: hi, size: .nan}", "", "size"},
		{"inf size", "{text: hi, size: .inf}", "", "size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := "dialogues:\n  - name: main\n    paragraphs:\n      - sentences:\n          - " + tt.sentence + "\n"
			if tt.width != "" {
				src += "        width: \"" + tt.width + "\"\n"
			}
			_, err := script.LoadFromReader(strings.NewReader(src))
			if err == nil {
				t.Fatalf("script accepted:\n%s", src)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestTypeWriterForms(t *testing.T) {
	t.Parallel()

	s, err := script.LoadFromReader(strings.NewReader(`
dialogues:
  - name: main
    paragraphs:
      - sentences:
          - text: a
            typewriter: true
          - text: b
            typewriter: false
          - text: c
            typewriter: {speed: 0.25}
          - text: d
            typewriter: {enabled: false, speed: 0.25}
`))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	def := script.DefaultDefaults()
	def.TypeWriterSpeed = 0.9
	ds, err := script.Build(s, def)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	p, _ := ds[0].CurrentParagraph()
	got := p.Sentences()

	tests := []struct {
		active bool
		speed  float64
	}{
		{true, 0.9},
		{false, dialogue.DefaultTypeWriterSpeed},
		{true, 0.25},
		{false, dialogue.DefaultTypeWriterSpeed},
	}
	for i, tt := range tests {
		tw := got[i].TypeWriter()
		if tw.Active() != tt.active || tw.Speed() != tt.speed {
			t.Errorf("sentence %d: active %v speed %v, want %v %v", i, tw.Active(), tw.Speed(), tt.active, tt.speed)
		}
	}
}

func TestLoadNormalizesText(t *testing.T) {
	t.Parallel()

	s, err := script.LoadFromReader(strings.NewReader("dialogues:\n  - name: main\n    keys: [\" Enter \"]\n    paragraphs:\n      - sentences:\n          - text: \"e\\u0301\"\n"))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if got := s.Dialogues[0].Paragraphs[0].Sentences[0].Text; got != "\u00e9" {
		t.Errorf("text = %q, want NFC form", got)
	}
	if got := s.Dialogues[0].Keys[0]; got != "enter" {
		t.Errorf("key = %q, want %q", got, "enter")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := script.Example()
	if err != nil {
		t.Fatalf("Example() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "story.yaml")
	if err := script.Save(path, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	back, err := script.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if back.Title != s.Title || len(back.Dialogues) != len(s.Dialogues) || len(back.Scenes) != len(s.Scenes) {
		t.Errorf("round trip changed the script: %+v", back)
	}
	tw := back.Dialogues[0].Paragraphs[6].Sentences[0].TypeWriter
	if tw == nil || !tw.Enabled || tw.Speed == nil || *tw.Speed != 0.7 {
		t.Errorf("typewriter lost in round trip: %+v", tw)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := script.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidColor(t *testing.T) {
	t.Parallel()

	for c, want := range map[string]bool{
		"#fff":    true,
		"#572268": true,
		"#57226":  false,
		"#ggg":    false,
		"7":       true,
		"255":     true,
		"256":     false,
		"red":     false,
	} {
		if got := script.ValidColor(c); got != want {
			t.Errorf("ValidColor(%q) = %v, want %v", c, got, want)
		}
	}
}
