package dialogue

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FontRef is an opaque font handle. The host decides what it points to.
type FontRef string

// Color is an opaque color value, typically "#rrggbb".
type Color string

const (
	// DefaultFontSize is the size given to new sentences.
	DefaultFontSize = 32.0

	// DefaultColor is the neutral gray given to new sentences.
	DefaultColor Color = "#808080"
)

// Style is how a run of text should be drawn.
type Style struct {
	Font  FontRef
	Size  float64
	Color Color
}

// DefaultStyle returns the style new sentences start with.
func DefaultStyle() Style {
	return Style{Size: DefaultFontSize, Color: DefaultColor}
}

// Run is one styled piece of text handed to the host renderer.
type Run struct {
	Text  string
	Style Style
}

// Unit is the unit of a layout value.
type Unit int

const (
	UnitAuto Unit = iota
	UnitPx
	UnitPercent
)

// Val is a layout length: auto, pixels or a percentage of the parent.
type Val struct {
	Unit  Unit
	Value float64
}

// Auto lets the host place or size the box itself.
func Auto() Val {
	return Val{}
}

// Px returns a length in pixels.
func Px(v float64) Val {
	return Val{Unit: UnitPx, Value: v}
}

// Percent returns a length relative to the parent.
func Percent(v float64) Val {
	return Val{Unit: UnitPercent, Value: v}
}

// IsAuto reports whether v is auto.
func (v Val) IsAuto() bool {
	return v.Unit == UnitAuto
}

// String formats v the way ParseVal reads it.
func (v Val) String() string {
	switch v.Unit {
	case UnitPx:
		return strconv.FormatFloat(v.Value, 'f', -1, 64) + "px"
	case UnitPercent:
		return strconv.FormatFloat(v.Value, 'f', -1, 64) + "%"
	default:
		return "auto"
	}
}

// ParseVal parses "auto", "12px", "12" (pixels) or "50%". NaN and
// infinite values are rejected.
func ParseVal(s string) (Val, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, "auto"):
		return Auto(), nil
	case strings.HasSuffix(s, "%"):
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil || !finite(f) {
			return Val{}, fmt.Errorf("invalid percentage %q", s)
		}
		return Percent(f), nil
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "px")), 64)
		if err != nil || !finite(f) {
			return Val{}, fmt.Errorf("invalid length %q", s)
		}
		return Px(f), nil
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Edges positions a dialogue box by its four edge offsets.
type Edges struct {
	Top    Val
	Bottom Val
	Left   Val
	Right  Val
}
