package dialogue

import (
	"errors"
	"log/slog"
)

// Fired records an action returned by a dialogue during a frame.
type Fired struct {
	Dialogue string
	Action   ActionID
}

// Stage runs several independent dialogues frame by frame and hands the
// actions they fire to a Dispatcher.
//
// Each dialogue keeps its own pending action, so two dialogues firing in the
// same frame both get dispatched, in the order the dialogues were added.
type Stage struct {
	dialogues  []*Dialogue
	dispatcher Dispatcher
}

// NewStage returns a stage dispatching actions to dispatcher, which may be
// nil to drop them.
func NewStage(dispatcher Dispatcher, dialogues ...*Dialogue) *Stage {
	return &Stage{dialogues: dialogues, dispatcher: dispatcher}
}

// SetDispatcher replaces the stage's dispatcher.
func (s *Stage) SetDispatcher(dispatcher Dispatcher) {
	s.dispatcher = dispatcher
}

// Add appends a dialogue. It is updated after every dialogue added before it.
func (s *Stage) Add(d *Dialogue) {
	s.dialogues = append(s.dialogues, d)
}

// Dialogue finds a dialogue by name.
func (s *Stage) Dialogue(name string) (*Dialogue, bool) {
	for _, d := range s.dialogues {
		if d.name == name {
			return d, true
		}
	}
	return nil, false
}

// Dialogues returns the stage's dialogues in update order.
func (s *Stage) Dialogues() []*Dialogue {
	out := make([]*Dialogue, len(s.dialogues))
	copy(out, s.dialogues)
	return out
}

// Done reports whether every dialogue has run out of paragraphs.
func (s *Stage) Done() bool {
	for _, d := range s.dialogues {
		if !d.IsEmpty() {
			return false
		}
	}
	return true
}

// Step runs one frame: every dialogue is updated, then every fired action is
// dispatched once, then frames are computed from the resulting state. The
// returned error joins all dispatch failures; the frames are valid even
// when it is non-nil.
func (s *Stage) Step(in Input) ([]Frame, []Fired, error) {
	var fired []Fired
	for _, d := range s.dialogues {
		if id, ok := Update(d, in); ok {
			fired = append(fired, Fired{Dialogue: d.name, Action: id})
		}
	}

	var errs []error
	for _, f := range fired {
		if s.dispatcher == nil {
			continue
		}
		if err := s.dispatcher.Dispatch(f.Action); err != nil {
			slog.Warn("dialogue: action failed", "dialogue", f.Dialogue, "action", f.Action, "err", err)
			errs = append(errs, err)
		}
	}

	frames := make([]Frame, 0, len(s.dialogues))
	for _, d := range s.dialogues {
		frames = append(frames, Present(d))
	}
	return frames, fired, errors.Join(errs...)
}
