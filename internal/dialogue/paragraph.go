package dialogue

import (
	"iter"
	"strings"
)

// Paragraph is one page of dialogue: an ordered list of sentences shown
// one after another, plus optional layout hints for the box.
//
// The cursor only moves forward through AdvanceSentence, and only the
// update cycle calls it, after checking that another sentence exists.
type Paragraph struct {
	sentences []*Sentence
	current   int
	position  *Edges
	width     *Val
}

// NewParagraph returns a paragraph showing sentences in order.
func NewParagraph(sentences ...*Sentence) *Paragraph {
	return &Paragraph{sentences: sentences}
}

// WithPosition sets the edge offsets applied while this paragraph is shown.
func (p *Paragraph) WithPosition(e Edges) *Paragraph {
	p.SetPosition(e)
	return p
}

// WithWidth sets the box width applied while this paragraph is shown.
func (p *Paragraph) WithWidth(v Val) *Paragraph {
	p.SetWidth(v)
	return p
}

// AddSentence appends a sentence.
func (p *Paragraph) AddSentence(s *Sentence) {
	p.sentences = append(p.sentences, s)
}

// Sentences returns the paragraph's sentences in display order.
func (p *Paragraph) Sentences() []*Sentence {
	out := make([]*Sentence, len(p.sentences))
	copy(out, p.sentences)
	return out
}

// Len returns the number of sentences.
func (p *Paragraph) Len() int { return len(p.sentences) }

// Index returns the cursor position.
func (p *Paragraph) Index() int { return p.current }

// CurrentSentence returns the sentence under the cursor. The second result
// is false when the paragraph has no sentence there.
func (p *Paragraph) CurrentSentence() (*Sentence, bool) {
	if p.current < 0 || p.current >= len(p.sentences) {
		return nil, false
	}
	return p.sentences[p.current], true
}

// AdvanceSentence moves the cursor to the next sentence. It does not check
// bounds.
func (p *Paragraph) AdvanceSentence() {
	p.current++
}

// Rewind moves the cursor back to the first sentence and resets every
// typewriter.
func (p *Paragraph) Rewind() {
	p.current = 0
	for _, s := range p.sentences {
		s.typewriter.Reset()
	}
}

// UpdateTypeWriter advances the current sentence's typewriter by dt seconds.
func (p *Paragraph) UpdateTypeWriter(dt float64) {
	if s, ok := p.CurrentSentence(); ok {
		s.typewriter.Advance(dt)
	}
}

// AllSentencesVisible reports whether the cursor is on the last sentence.
func (p *Paragraph) AllSentencesVisible() bool {
	return p.current+1 == len(p.sentences)
}

// AllCharactersDisplayed reports whether the current sentence has been fully
// revealed. It is false when there is no current sentence.
func (p *Paragraph) AllCharactersDisplayed() bool {
	s, ok := p.CurrentSentence()
	return ok && s.Revealed()
}

// VisibleSentences yields a run for each sentence up to and including the
// current one. Calling it again starts over.
func (p *Paragraph) VisibleSentences() iter.Seq[Run] {
	return func(yield func(Run) bool) {
		for i := 0; i <= p.current && i < len(p.sentences); i++ {
			if !yield(p.sentences[i].Run()) {
				return
			}
		}
	}
}

// VisibleText concatenates the text of VisibleSentences.
func (p *Paragraph) VisibleText() string {
	var b strings.Builder
	for r := range p.VisibleSentences() {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Position returns the paragraph's edge offsets, if it has any.
func (p *Paragraph) Position() (Edges, bool) {
	if p.position == nil {
		return Edges{}, false
	}
	return *p.position, true
}

// SetPosition overrides the box position while this paragraph shows.
func (p *Paragraph) SetPosition(e Edges) {
	p.position = &e
}

// ResetPosition removes the position override.
func (p *Paragraph) ResetPosition() {
	p.position = nil
}

// Width returns the paragraph's box width, if it has one.
func (p *Paragraph) Width() (Val, bool) {
	if p.width == nil {
		return Val{}, false
	}
	return *p.width, true
}

// SetWidth overrides the box width while this paragraph shows.
func (p *Paragraph) SetWidth(v Val) {
	p.width = &v
}

// ResetWidth removes the width override.
func (p *Paragraph) ResetWidth() {
	p.width = nil
}
