package dialogue

import (
	"log/slog"
	"slices"
)

// Input is what the host observed during one frame.
type Input struct {
	// Pressed holds the keys that went down this frame.
	Pressed []Key
	// Delta is the time since the previous frame, in seconds.
	Delta float64
}

// AnyPressed reports whether any of keys went down this frame.
func (in Input) AnyPressed(keys []Key) bool {
	for _, k := range keys {
		if slices.Contains(in.Pressed, k) {
			return true
		}
	}
	return false
}

// State is where a dialogue sits in its advancement cycle.
type State int

const (
	// StateIdle means the queue is empty.
	StateIdle State = iota
	// StateRevealing means the current sentence is still being typed out.
	StateRevealing
	// StateSentenceReady means the current sentence is shown and more follow.
	StateSentenceReady
	// StateParagraphReady means the last sentence of the paragraph is shown.
	StateParagraphReady
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRevealing:
		return "revealing"
	case StateSentenceReady:
		return "sentence-ready"
	case StateParagraphReady:
		return "paragraph-ready"
	default:
		return "unknown"
	}
}

// State reports the dialogue's current state.
func (d *Dialogue) State() State {
	p, ok := d.CurrentParagraph()
	if !ok {
		return StateIdle
	}
	switch {
	case !p.AllCharactersDisplayed():
		if _, ok := p.CurrentSentence(); !ok {
			return StateParagraphReady
		}
		return StateRevealing
	case p.AllSentencesVisible():
		return StateParagraphReady
	default:
		return StateSentenceReady
	}
}

// Update runs one frame of the dialogue: the current sentence's typewriter
// advances by in.Delta, then, if a skip key was pressed, the dialogue moves
// forward by one step. It returns the action of the sentence that was
// current when the key was pressed, if it has one. The dialogue's pending
// slot is empty when Update returns.
//
// One key press does exactly one of:
//   - drop the front paragraph, when its last sentence is fully shown;
//   - move to the next sentence, when the current one is fully shown;
//   - finish revealing the current sentence.
func Update(d *Dialogue, in Input) (ActionID, bool) {
	if p, ok := d.CurrentParagraph(); ok {
		p.UpdateTypeWriter(in.Delta)
	}
	if in.AnyPressed(d.keys) {
		d.advance()
	}
	return d.takePending()
}

func (d *Dialogue) advance() {
	p, ok := d.CurrentParagraph()
	if !ok {
		return
	}

	s, ok := p.CurrentSentence()
	if !ok {
		// Nothing to show; treat the paragraph as read.
		slog.Debug("dialogue: dropping empty paragraph", "dialogue", d.name)
		d.PopFront()
		return
	}
	d.pending = s.action

	allSentences := p.AllSentencesVisible()
	allCharacters := p.AllCharactersDisplayed()

	switch {
	case allSentences && allCharacters:
		d.PopFront()
		slog.Debug("dialogue: paragraph finished", "dialogue", d.name, "remaining", d.Len())
	case allCharacters:
		p.AdvanceSentence()
		slog.Debug("dialogue: next sentence", "dialogue", d.name, "index", p.Index(), "of", p.Len())
	default:
		s.typewriter.Finish()
		slog.Debug("dialogue: reveal skipped", "dialogue", d.name, "index", p.Index())
	}
}

func (d *Dialogue) takePending() (ActionID, bool) {
	id := d.pending
	d.pending = ""
	return id, id != ""
}

// Frame is what the host needs to draw one dialogue surface.
type Frame struct {
	Name    string
	Visible bool
	State   State
	// Runs is the text of the front paragraph up to the current sentence.
	Runs []Run
	// Position and Width are set when the front paragraph overrides them.
	// A nil value means the host keeps whatever it had.
	Position *Edges
	Width    *Val
}

// Text concatenates the text of all runs.
func (f Frame) Text() string {
	var n int
	for _, r := range f.Runs {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range f.Runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

// Present computes the frame for the dialogue's current state. It does not
// modify the dialogue.
func Present(d *Dialogue) Frame {
	f := Frame{
		Name:    d.name,
		Visible: d.Visible(),
		State:   d.State(),
	}
	p, ok := d.CurrentParagraph()
	if !ok {
		return f
	}
	f.Runs = slices.Collect(p.VisibleSentences())
	if e, ok := p.Position(); ok {
		f.Position = &e
	}
	if w, ok := p.Width(); ok {
		f.Width = &w
	}
	return f
}
