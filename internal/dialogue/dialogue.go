// Package dialogue implements a text-box dialogue engine: a queue of
// paragraphs made of styled sentences, revealed with a typewriter effect and
// advanced by player input one frame at a time.
//
// The package does no rendering, input polling or font loading. A host calls
// Update (or Stage.Step) once per frame with the keys pressed that frame and
// the elapsed time, draws the returned Frame, and runs any returned action.
package dialogue

// Key identifies an input key, e.g. "space", "enter" or "a".
type Key string

const (
	KeySpace Key = "space"
	KeyEnter Key = "enter"
)

// DefaultKeys returns the keys a new dialogue advances on.
func DefaultKeys() []Key {
	return []Key{KeySpace, KeyEnter}
}

// Dialogue is a FIFO queue of paragraphs attached to one display surface.
// The front paragraph is the one being shown. Paragraphs are appended at
// the back and consumed from the front; they are never reordered.
type Dialogue struct {
	name          string
	paragraphs    []*Paragraph
	keys          []Key
	hideWhenEmpty bool

	// pending holds the action captured during the current frame until it is
	// handed to the host.
	pending ActionID
}

// Option configures a Dialogue.
type Option func(*Dialogue)

// WithParagraphs sets the initial paragraph queue.
func WithParagraphs(paragraphs ...*Paragraph) Option {
	return func(d *Dialogue) {
		d.paragraphs = append(d.paragraphs[:0], paragraphs...)
	}
}

// WithKeys replaces the skip keys. An empty list means the dialogue never
// advances on input.
func WithKeys(keys ...Key) Option {
	return func(d *Dialogue) {
		d.keys = append([]Key(nil), keys...)
	}
}

// WithHideWhenEmpty sets whether the dialogue is hidden once its queue
// drains. The default is true.
func WithHideWhenEmpty(hide bool) Option {
	return func(d *Dialogue) {
		d.hideWhenEmpty = hide
	}
}

// WithName sets the name used in logs and by Stage lookups.
func WithName(name string) Option {
	return func(d *Dialogue) {
		d.name = name
	}
}

// New creates a dialogue with the default keys, hidden when empty.
func New(opts ...Option) *Dialogue {
	d := &Dialogue{
		keys:          DefaultKeys(),
		hideWhenEmpty: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the dialogue name.
func (d *Dialogue) Name() string { return d.name }

// PushBack appends a paragraph to the end of the queue. It is safe to call
// while the dialogue is playing.
func (d *Dialogue) PushBack(p *Paragraph) {
	d.paragraphs = append(d.paragraphs, p)
}

// PopFront discards the front paragraph. It does nothing on an empty queue.
func (d *Dialogue) PopFront() {
	if len(d.paragraphs) == 0 {
		return
	}
	d.paragraphs[0] = nil
	d.paragraphs = d.paragraphs[1:]
}

// CurrentParagraph returns the front of the queue.
func (d *Dialogue) CurrentParagraph() (*Paragraph, bool) {
	if len(d.paragraphs) == 0 {
		return nil, false
	}
	return d.paragraphs[0], true
}

// IsEmpty reports whether no paragraphs are left.
func (d *Dialogue) IsEmpty() bool { return len(d.paragraphs) == 0 }

// Len returns the number of queued paragraphs.
func (d *Dialogue) Len() int { return len(d.paragraphs) }

// Paragraphs returns the queued paragraphs, front first.
func (d *Dialogue) Paragraphs() []*Paragraph {
	out := make([]*Paragraph, len(d.paragraphs))
	copy(out, d.paragraphs)
	return out
}

// Keys returns the skip keys.
func (d *Dialogue) Keys() []Key {
	return append([]Key(nil), d.keys...)
}

// SetKeys replaces the skip keys. With none, the dialogue never advances.
func (d *Dialogue) SetKeys(keys []Key) {
	d.keys = append([]Key(nil), keys...)
}

// AddKey adds a skip key. Duplicates are allowed.
func (d *Dialogue) AddKey(k Key) {
	d.keys = append(d.keys, k)
}

// HideWhenEmpty reports whether the box hides once no paragraphs are left.
func (d *Dialogue) HideWhenEmpty() bool { return d.hideWhenEmpty }

// SetHideWhenEmpty sets whether the box hides once no paragraphs are left.
func (d *Dialogue) SetHideWhenEmpty(hide bool) { d.hideWhenEmpty = hide }

// Pending returns the action waiting to be handed to the host. Update always
// leaves it empty.
func (d *Dialogue) Pending() (ActionID, bool) {
	return d.pending, d.pending != ""
}

// Visible reports whether the dialogue's display surface should be shown.
func (d *Dialogue) Visible() bool {
	return !(d.hideWhenEmpty && d.IsEmpty())
}
