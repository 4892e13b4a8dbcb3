package script

import (
	"fmt"

	"github.com/f3rmion/parley/internal/dialogue"
)

// Defaults fills in what a script leaves unset.
type Defaults struct {
	Keys            []dialogue.Key
	HideWhenEmpty   bool
	TypeWriterSpeed float64
}

// DefaultDefaults mirrors the dialogue package's own defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Keys:            dialogue.DefaultKeys(),
		HideWhenEmpty:   true,
		TypeWriterSpeed: dialogue.DefaultTypeWriterSpeed,
	}
}

// Build turns a validated script into playable dialogues, in script order.
func Build(s *Script, def Defaults) ([]*dialogue.Dialogue, error) {
	out := make([]*dialogue.Dialogue, 0, len(s.Dialogues))
	for i, ds := range s.Dialogues {
		d, err := buildDialogue(ds, def)
		if err != nil {
			return nil, fmt.Errorf("dialogues[%d] (%s): %w", i, ds.Name, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// BuildParagraph converts a single paragraph, e.g. one added at runtime.
func BuildParagraph(ps Paragraph, def Defaults) (*dialogue.Paragraph, error) {
	p := dialogue.NewParagraph()
	for _, ss := range ps.Sentences {
		p.AddSentence(buildSentence(ss, def))
	}
	if ps.Width != "" {
		w, err := dialogue.ParseVal(ps.Width)
		if err != nil {
			return nil, fmt.Errorf("width: %w", err)
		}
		p.SetWidth(w)
	}
	if ps.Position != nil {
		e, err := buildEdges(*ps.Position)
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		p.SetPosition(e)
	}
	return p, nil
}

func buildDialogue(ds Dialogue, def Defaults) (*dialogue.Dialogue, error) {
	keys := def.Keys
	if len(ds.Keys) > 0 {
		keys = make([]dialogue.Key, len(ds.Keys))
		for i, k := range ds.Keys {
			keys[i] = dialogue.Key(k)
		}
	}
	hide := def.HideWhenEmpty
	if ds.HideWhenEmpty != nil {
		hide = *ds.HideWhenEmpty
	}

	paragraphs := make([]*dialogue.Paragraph, 0, len(ds.Paragraphs))
	for j, ps := range ds.Paragraphs {
		p, err := BuildParagraph(ps, def)
		if err != nil {
			return nil, fmt.Errorf("paragraphs[%d]: %w", j, err)
		}
		paragraphs = append(paragraphs, p)
	}

	return dialogue.New(
		dialogue.WithName(ds.Name),
		dialogue.WithKeys(keys...),
		dialogue.WithHideWhenEmpty(hide),
		dialogue.WithParagraphs(paragraphs...),
	), nil
}

func buildSentence(ss Sentence, def Defaults) *dialogue.Sentence {
	s := dialogue.NewSentence(ss.Text).WithFont(dialogue.FontRef(ss.Font))
	if ss.Size > 0 {
		s.SetFontSize(ss.Size)
	}
	if ss.Color != "" {
		s.SetColor(dialogue.Color(ss.Color))
	}
	if ss.Action != "" {
		s.SetAction(dialogue.ActionID(ss.Action))
	}
	if tw := ss.TypeWriter; tw != nil && tw.Enabled {
		speed := def.TypeWriterSpeed
		if tw.Speed != nil {
			speed = *tw.Speed
		}
		s.SetTypeWriter(dialogue.NewTypeWriter().WithSpeed(speed))
	}
	return s
}

func buildEdges(es Edges) (dialogue.Edges, error) {
	var e dialogue.Edges
	for _, f := range []struct {
		in  string
		out *dialogue.Val
	}{
		{es.Top, &e.Top},
		{es.Bottom, &e.Bottom},
		{es.Left, &e.Left},
		{es.Right, &e.Right},
	} {
		v, err := dialogue.ParseVal(f.in)
		if err != nil {
			return dialogue.Edges{}, err
		}
		*f.out = v
	}
	return e, nil
}

// BuildScene converts a scene's paragraphs, ready to be pushed onto the
// scene's dialogue.
func BuildScene(sc Scene, def Defaults) ([]*dialogue.Paragraph, error) {
	out := make([]*dialogue.Paragraph, 0, len(sc.Paragraphs))
	for i, ps := range sc.Paragraphs {
		p, err := BuildParagraph(ps, def)
		if err != nil {
			return nil, fmt.Errorf("paragraphs[%d]: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
