// Package script loads and saves dialogue scripts written in YAML.
package script

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/f3rmion/parley/internal/dialogue"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned for scripts without any dialogue.
var ErrEmptyScript = errors.New("script has no dialogues")

// Script is the root of a script file.
type Script struct {
	Title     string           `yaml:"title,omitempty"`
	Dialogues []Dialogue       `yaml:"dialogues"`
	Scenes    map[string]Scene `yaml:"scenes,omitempty"`
}

// Scene is a set of paragraphs held back until a "scene:<name>" action
// appends them to a dialogue.
type Scene struct {
	Dialogue   string      `yaml:"dialogue"`
	Paragraphs []Paragraph `yaml:"paragraphs"`
}

// SceneAction is the action name that plays a scene.
const SceneAction = "scene"

// Dialogue describes one text box and the paragraphs it plays.
type Dialogue struct {
	Name          string      `yaml:"name"`
	Keys          []string    `yaml:"keys,omitempty"`            // Defaults to the configured skip keys
	HideWhenEmpty *bool       `yaml:"hide_when_empty,omitempty"` // Defaults to the configured value
	Paragraphs    []Paragraph `yaml:"paragraphs,omitempty"`
}

// Paragraph is one page of a dialogue.
type Paragraph struct {
	Position  *Edges     `yaml:"position,omitempty"`
	Width     string     `yaml:"width,omitempty"` // e.g. "50%", "300px"
	Sentences []Sentence `yaml:"sentences"`
}

// Edges holds the four box offsets, each "auto", "Npx" or "N%".
type Edges struct {
	Top    string `yaml:"top,omitempty"`
	Bottom string `yaml:"bottom,omitempty"`
	Left   string `yaml:"left,omitempty"`
	Right  string `yaml:"right,omitempty"`
}

type namedEdge struct {
	name, value string
}

func (e Edges) named() []namedEdge {
	return []namedEdge{
		{"top", e.Top},
		{"bottom", e.Bottom},
		{"left", e.Left},
		{"right", e.Right},
	}
}

// Sentence is one styled run of text.
type Sentence struct {
	Text       string      `yaml:"text"`
	Font       string      `yaml:"font,omitempty"`  // Font file or named face, resolved by the player
	Size       float64     `yaml:"size,omitempty"`  // Defaults to 32
	Color      string      `yaml:"color,omitempty"` // "#rrggbb", "#rgb" or an ANSI color number
	Action     string      `yaml:"action,omitempty"`
	TypeWriter *TypeWriter `yaml:"typewriter,omitempty"`
}

// TypeWriter enables the reveal effect. In YAML it is either a boolean or a
// mapping with a speed.
type TypeWriter struct {
	Enabled bool     `yaml:"-"`
	Speed   *float64 `yaml:"speed,omitempty"`
}

// UnmarshalYAML accepts "typewriter: true" as well as "typewriter: {speed: 0.7}".
func (t *TypeWriter) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&t.Enabled)
	}
	var raw struct {
		Enabled *bool    `yaml:"enabled"`
		Speed   *float64 `yaml:"speed"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	t.Enabled = raw.Enabled == nil || *raw.Enabled
	t.Speed = raw.Speed
	return nil
}

// MarshalYAML writes the short boolean form when no speed is set.
func (t TypeWriter) MarshalYAML() (any, error) {
	if t.Speed == nil {
		return t.Enabled, nil
	}
	out := map[string]any{"speed": *t.Speed}
	if !t.Enabled {
		out["enabled"] = false
	}
	return out, nil
}

// Load reads and validates the script at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script file: %w", err)
	}
	defer f.Close()

	s, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

// LoadFromReader decodes a script from r, normalizes its text and validates it.
func LoadFromReader(r io.Reader) (*Script, error) {
	s := &Script{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScript
		}
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	s.normalize()
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes s to path as YAML.
func Save(path string, s *Script) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling script: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing script file: %w", err)
	}
	return nil
}

// normalize puts all text in NFC so that accented characters are revealed
// as one character whatever form the file used.
func (s *Script) normalize() {
	for i := range s.Dialogues {
		d := &s.Dialogues[i]
		for j, k := range d.Keys {
			d.Keys[j] = strings.ToLower(strings.TrimSpace(k))
		}
		normalizeParagraphs(d.Paragraphs)
	}
	for _, sc := range s.Scenes {
		normalizeParagraphs(sc.Paragraphs)
	}
}

func normalizeParagraphs(ps []Paragraph) {
	for i := range ps {
		for j := range ps[i].Sentences {
			ps[i].Sentences[j].Text = norm.NFC.String(ps[i].Sentences[j].Text)
		}
	}
}

// Validate checks s for problems that would make it unplayable. It reports
// every problem found, joined into one error.
func Validate(s *Script) error {
	if len(s.Dialogues) == 0 {
		return ErrEmptyScript
	}

	var errs []error
	seen := make(map[string]bool)
	for i, d := range s.Dialogues {
		where := fmt.Sprintf("dialogues[%d]", i)
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", where))
		} else if seen[d.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate dialogue name %q", where, d.Name))
		}
		seen[d.Name] = true

		for j, k := range d.Keys {
			if k == "" {
				errs = append(errs, fmt.Errorf("%s.keys[%d]: empty key", where, j))
			}
		}
		for j, p := range d.Paragraphs {
			errs = append(errs, validateParagraph(s, fmt.Sprintf("%s.paragraphs[%d]", where, j), p)...)
		}
	}

	for _, name := range sortedKeys(s.Scenes) {
		sc := s.Scenes[name]
		where := fmt.Sprintf("scenes.%s", name)
		if !seen[sc.Dialogue] {
			errs = append(errs, fmt.Errorf("%s: unknown dialogue %q", where, sc.Dialogue))
		}
		if len(sc.Paragraphs) == 0 {
			errs = append(errs, fmt.Errorf("%s: no paragraphs", where))
		}
		for j, p := range sc.Paragraphs {
			errs = append(errs, validateParagraph(s, fmt.Sprintf("%s.paragraphs[%d]", where, j), p)...)
		}
	}
	return errors.Join(errs...)
}

func validateParagraph(s *Script, where string, p Paragraph) []error {
	var errs []error
	if len(p.Sentences) == 0 {
		errs = append(errs, fmt.Errorf("%s: no sentences", where))
	}
	if p.Width != "" {
		if _, err := dialogue.ParseVal(p.Width); err != nil {
			errs = append(errs, fmt.Errorf("%s.width: %w", where, err))
		}
	}
	if p.Position != nil {
		for _, e := range p.Position.named() {
			if _, err := dialogue.ParseVal(e.value); err != nil {
				errs = append(errs, fmt.Errorf("%s.position.%s: %w", where, e.name, err))
			}
		}
	}
	for k, sn := range p.Sentences {
		at := fmt.Sprintf("%s.sentences[%d]", where, k)
		if sn.Size < 0 || math.IsNaN(sn.Size) || math.IsInf(sn.Size, 0) {
			errs = append(errs, fmt.Errorf("%s.size: must be a finite, non-negative number, got %v", at, sn.Size))
		}
		if sn.Color != "" && !ValidColor(sn.Color) {
			errs = append(errs, fmt.Errorf("%s.color: invalid color %q", at, sn.Color))
		}
		if sn.Action != "" && strings.TrimSpace(sn.Action) != sn.Action {
			errs = append(errs, fmt.Errorf("%s.action: surrounding whitespace in %q", at, sn.Action))
		}
		if scene, ok := strings.CutPrefix(sn.Action, SceneAction+":"); ok {
			if _, found := s.Scenes[scene]; !found {
				errs = append(errs, fmt.Errorf("%s.action: unknown scene %q", at, scene))
			}
		}
		if tw := sn.TypeWriter; tw != nil && tw.Speed != nil && (math.IsNaN(*tw.Speed) || *tw.Speed < 0 || *tw.Speed > 1) {
			errs = append(errs, fmt.Errorf("%s.typewriter.speed: must be within [0, 1], got %v", at, *tw.Speed))
		}
	}
	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidColor reports whether c is "#rgb", "#rrggbb" or an ANSI color number.
func ValidColor(c string) bool {
	if hex, ok := strings.CutPrefix(c, "#"); ok {
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		_, err := strconv.ParseUint(hex, 16, 32)
		return err == nil
	}
	n, err := strconv.Atoi(c)
	return err == nil && n >= 0 && n <= 255
}
