package dialogue

import (
	"math"

	"github.com/rivo/uniseg"
)

// ActionID names a host-defined side effect. The core never runs it; it only
// reports when a sentence carrying one is reached.
type ActionID string

// Sentence is one styled run of text with an optional reveal effect and an
// optional action.
type Sentence struct {
	text       string
	style      Style
	action     ActionID
	typewriter TypeWriter
}

// NewSentence returns a sentence with the default style and no typewriter.
func NewSentence(text string) *Sentence {
	return &Sentence{
		text:       text,
		style:      DefaultStyle(),
		typewriter: disabledTypeWriter(),
	}
}

// WithFont sets the font and returns s.
func (s *Sentence) WithFont(f FontRef) *Sentence {
	s.style.Font = f
	return s
}

// WithFontSize sets the font size and returns s.
func (s *Sentence) WithFontSize(size float64) *Sentence {
	s.style.Size = size
	return s
}

// WithColor sets the text color and returns s.
func (s *Sentence) WithColor(c Color) *Sentence {
	s.style.Color = c
	return s
}

// WithAction sets the action returned when a skip key is pressed on this
// sentence, and returns s.
func (s *Sentence) WithAction(id ActionID) *Sentence {
	s.action = id
	return s
}

// WithTypeWriter replaces the sentence's typewriter.
func (s *Sentence) WithTypeWriter(t TypeWriter) *Sentence {
	s.typewriter = t
	return s
}

// Typed enables a fresh typewriter at the default speed.
func (s *Sentence) Typed() *Sentence {
	s.typewriter = NewTypeWriter()
	return s
}

// Text returns the full text.
func (s *Sentence) Text() string { return s.text }

// Style returns the font, size and color.
func (s *Sentence) Style() Style { return s.style }

// Font returns the font reference.
func (s *Sentence) Font() FontRef { return s.style.Font }

// FontSize returns the font size.
func (s *Sentence) FontSize() float64 { return s.style.Size }

// Color returns the text color.
func (s *Sentence) Color() Color { return s.style.Color }

// SetText replaces the text.
func (s *Sentence) SetText(text string) { s.text = text }

// SetStyle replaces the whole style.
func (s *Sentence) SetStyle(st Style) { s.style = st }

// SetFont sets the font reference.
func (s *Sentence) SetFont(f FontRef) { s.style.Font = f }

// SetFontSize sets the font size.
func (s *Sentence) SetFontSize(size float64) { s.style.Size = size }

// SetColor sets the text color.
func (s *Sentence) SetColor(c Color) { s.style.Color = c }

// Action returns the sentence's action, if any, without running it.
func (s *Sentence) Action() (ActionID, bool) {
	return s.action, s.action != ""
}

// SetAction sets the action. An empty id clears it.
func (s *Sentence) SetAction(id ActionID) { s.action = id }

// ClearAction removes the action.
func (s *Sentence) ClearAction() { s.action = "" }

// TypeWriter gives mutable access to the sentence's typewriter.
func (s *Sentence) TypeWriter() *TypeWriter {
	return &s.typewriter
}

// SetTypeWriter replaces the sentence's typewriter.
func (s *Sentence) SetTypeWriter(t TypeWriter) {
	s.typewriter = t
}

// Revealed reports whether the sentence is fully shown.
func (s *Sentence) Revealed() bool {
	return s.typewriter.Finished()
}

// VisibleLen returns how many characters are currently shown, counted in
// grapheme clusters.
func (s *Sentence) VisibleLen() int {
	n := uniseg.GraphemeClusterCount(s.text)
	if !s.typewriter.Active() {
		return n
	}
	shown := int(math.Floor(s.typewriter.Elapsed() * float64(n)))
	return min(max(shown, 0), n)
}

// VisibleText returns the part of the text the typewriter has revealed so
// far. It always cuts on a character boundary.
func (s *Sentence) VisibleText() string {
	if !s.typewriter.Active() {
		return s.text
	}
	return prefix(s.text, s.VisibleLen())
}

// Run returns the visible text together with the sentence style.
func (s *Sentence) Run() Run {
	return Run{Text: s.VisibleText(), Style: s.style}
}

// String returns the visible text.
func (s *Sentence) String() string {
	return s.VisibleText()
}

// prefix returns the first n grapheme clusters of text.
func prefix(text string, n int) string {
	rest := text
	state := -1
	for i := 0; i < n && rest != ""; i++ {
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
	}
	return text[:len(text)-len(rest)]
}
