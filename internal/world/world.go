// Package world holds the host state that dialogue actions act on and the
// actions a script may fire.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/f3rmion/parley/internal/dialogue"
	"github.com/f3rmion/parley/internal/script"
)

// ChangeBackgroundColor is the color set by the bare change_background
// action.
const ChangeBackgroundColor = "#572268"

// ErrUnknownScene is returned by the scene action for a name the script
// does not define.
var ErrUnknownScene = errors.New("unknown scene")

// World is everything outside the dialogues that a script can change.
type World struct {
	script   *script.Script
	defaults script.Defaults
	stage    *dialogue.Stage

	Background string
	Status     string
	Bells      int
	Quit       bool
}

// New builds the dialogues of s and binds the standard actions to a fresh
// world.
func New(s *script.Script, def script.Defaults) (*World, error) {
	w := &World{script: s, defaults: def}
	if err := w.Restart(); err != nil {
		return nil, err
	}
	return w, nil
}

// Restart rebuilds every dialogue from the script and clears host state.
func (w *World) Restart() error {
	dialogues, err := script.Build(w.script, w.defaults)
	if err != nil {
		return fmt.Errorf("building script: %w", err)
	}
	w.stage = dialogue.NewStage(Actions().Bind(w), dialogues...)
	w.Background = ""
	w.Status = ""
	w.Bells = 0
	w.Quit = false
	return nil
}

// Stage returns the running dialogues.
func (w *World) Stage() *dialogue.Stage {
	return w.stage
}

// Title returns the script title.
func (w *World) Title() string {
	return w.script.Title
}

// PlayScene appends the paragraphs of a scene to its dialogue.
func (w *World) PlayScene(name string) error {
	sc, ok := w.script.Scenes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	d, ok := w.stage.Dialogue(sc.Dialogue)
	if !ok {
		return fmt.Errorf("scene %q: unknown dialogue %q", name, sc.Dialogue)
	}
	paragraphs, err := script.BuildScene(sc, w.defaults)
	if err != nil {
		return fmt.Errorf("scene %q: %w", name, err)
	}
	for _, p := range paragraphs {
		d.PushBack(p)
	}
	slog.Debug("world: scene started", "scene", name, "dialogue", sc.Dialogue, "paragraphs", len(paragraphs))
	return nil
}

// Actions returns the registry of actions scripts may use:
//
//	background:<color>  set the background
//	change_background   set the background to ChangeBackgroundColor
//	scene:<name>        append a scene's paragraphs to its dialogue
//	status:<text>       show text in the status line
//	bell                ring the terminal bell
//	quit                stop playing
func Actions() *dialogue.Registry[*World] {
	r := dialogue.NewRegistry[*World]()
	r.Register("background", func(w *World, arg string) error {
		arg = strings.TrimSpace(arg)
		if !script.ValidColor(arg) {
			return fmt.Errorf("invalid color %q", arg)
		}
		w.Background = arg
		return nil
	})
	r.Register("change_background", func(w *World, _ string) error {
		w.Background = ChangeBackgroundColor
		return nil
	})
	r.Register(script.SceneAction, func(w *World, arg string) error {
		return w.PlayScene(arg)
	})
	r.Register("status", func(w *World, arg string) error {
		w.Status = arg
		return nil
	})
	r.Register("bell", func(w *World, _ string) error {
		w.Bells++
		return nil
	})
	r.Register("quit", func(w *World, _ string) error {
		w.Quit = true
		return nil
	})
	return r
}

// Check reports actions in s that no handler accepts.
func Check(s *script.Script) error {
	r := Actions()
	var errs []error
	check := func(where string, ps []script.Paragraph) {
		for i, p := range ps {
			for j, sent := range p.Sentences {
				if sent.Action == "" {
					continue
				}
				if !r.Has(dialogue.ActionID(sent.Action)) {
					errs = append(errs, fmt.Errorf("%s.paragraphs[%d].sentences[%d]: %w: %q",
						where, i, j, dialogue.ErrUnknownAction, sent.Action))
				}
			}
		}
	}
	for _, d := range s.Dialogues {
		check("dialogue "+d.Name, d.Paragraphs)
	}
	for _, name := range sortedSceneNames(s) {
		check("scene "+name, s.Scenes[name].Paragraphs)
	}
	return errors.Join(errs...)
}

func sortedSceneNames(s *script.Script) []string {
	names := make([]string, 0, len(s.Scenes))
	for name := range s.Scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
