package dialogue

// DefaultTypeWriterSpeed is the fraction of a sentence revealed per second
// when no speed is configured.
const DefaultTypeWriterSpeed = 0.5

// TypeWriter tracks how much of a sentence has been revealed.
//
// Elapsed and speed are both kept in [0,1]. Elapsed only moves forward,
// except through Reset or SetElapsed.
type TypeWriter struct {
	active  bool
	elapsed float64
	speed   float64
}

// NewTypeWriter returns an active typewriter at the default speed.
func NewTypeWriter() TypeWriter {
	return TypeWriter{active: true, speed: DefaultTypeWriterSpeed}
}

// disabledTypeWriter is what every sentence starts with: text is shown in full.
func disabledTypeWriter() TypeWriter {
	return TypeWriter{speed: DefaultTypeWriterSpeed}
}

// WithSpeed returns a copy of t with its speed set to v clamped to [0,1].
func (t TypeWriter) WithSpeed(v float64) TypeWriter {
	t.SetSpeed(v)
	return t
}

// WithElapsed returns a copy of t with its progress set to v clamped to [0,1].
func (t TypeWriter) WithElapsed(v float64) TypeWriter {
	t.SetElapsed(v)
	return t
}

// Advance moves the reveal forward by dt seconds.
func (t *TypeWriter) Advance(dt float64) {
	t.elapsed = clamp01(t.elapsed + dt*t.speed)
}

// Finish reveals the whole sentence at once.
func (t *TypeWriter) Finish() {
	t.elapsed = 1
}

// Reset rewinds the reveal to the beginning.
func (t *TypeWriter) Reset() {
	t.elapsed = 0
}

// SetSpeed sets the reveal speed, clamped to [0, 1].
func (t *TypeWriter) SetSpeed(v float64) {
	t.speed = clamp01(v)
}

// SetElapsed sets the revealed fraction, clamped to [0, 1].
func (t *TypeWriter) SetElapsed(v float64) {
	t.elapsed = clamp01(v)
}

// Activate turns the reveal effect on.
func (t *TypeWriter) Activate() {
	t.active = true
}

// Deactivate turns the reveal effect off; the text shows in full.
func (t *TypeWriter) Deactivate() {
	t.active = false
}

// Active reports whether the reveal effect is on.
func (t TypeWriter) Active() bool { return t.active }

// Elapsed returns the revealed fraction in [0, 1].
func (t TypeWriter) Elapsed() float64 { return t.elapsed }

// Speed returns the fraction of the text revealed per second.
func (t TypeWriter) Speed() float64 { return t.speed }

// Finished reports whether nothing is left to reveal. An inactive
// typewriter is always finished.
func (t TypeWriter) Finished() bool {
	return !t.active || t.elapsed == 1
}

func clamp01(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
