package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/parley/internal/dialogue"
	"github.com/f3rmion/parley/internal/tui/blocktext"
)

// layout is the box geometry of one dialogue. Paragraphs that set a position
// or width override it; paragraphs that don't leave it as it was.
type layout struct {
	position dialogue.Edges
	width    dialogue.Val
}

func (l *layout) apply(f dialogue.Frame) {
	if f.Position != nil {
		l.position = *f.Position
	}
	if f.Width != nil {
		l.width = *f.Width
	}
}

// cells resolves v against a total size in cells, clamped to [0, total].
// The second result is false for auto.
func cells(v dialogue.Val, total int, fromPx func(float64) int) (int, bool) {
	var n int
	switch v.Unit {
	case dialogue.UnitPx:
		n = fromPx(v.Value)
	case dialogue.UnitPercent:
		n = toCells(v.Value / 100 * float64(total))
	default:
		return 0, false
	}
	return min(max(n, 0), max(total, 0)), true
}

// Renderer draws dialogue frames as terminal boxes.
type Renderer struct {
	fonts *FontBook
}

// NewRenderer returns a renderer resolving fonts through fonts.
func NewRenderer(fonts *FontBook) *Renderer {
	return &Renderer{fonts: fonts}
}

// runStyle maps a sentence style to terminal attributes.
func (r *Renderer) runStyle(s dialogue.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Color != "" {
		st = st.Foreground(lipgloss.Color(s.Color))
	}
	switch {
	case s.Size >= 48:
		st = st.Bold(true)
	case s.Size > 0 && s.Size < 20:
		st = st.Faint(true)
	}
	return r.fonts.Style(s.Font, st)
}

// Runs lays out styled runs into lines. Newlines in the text break lines;
// large runs become block art on lines of their own when they fit maxCols.
func (r *Renderer) Runs(runs []dialogue.Run, maxCols int) string {
	var lines []string
	var cur strings.Builder
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
	}

	for _, run := range runs {
		st := r.runStyle(run.Style)

		if run.Style.Size >= BlockSize {
			text := strings.TrimRight(run.Text, "\n")
			rows := int(run.Style.Size / 16)
			if art := blocktext.Cached(text, r.fonts.Face(run.Style.Font), rows, maxCols); art != "" {
				if cur.Len() > 0 {
					flush()
				}
				for _, line := range strings.Split(art, "\n") {
					lines = append(lines, st.Render(line))
				}
				continue
			}
		}

		for i, part := range strings.Split(run.Text, "\n") {
			if i > 0 {
				flush()
			}
			if part != "" {
				cur.WriteString(st.Render(part))
			}
		}
	}
	if cur.Len() > 0 {
		flush()
	}
	return strings.Join(lines, "\n")
}

// Box renders one dialogue frame inside a termWidth x termHeight area,
// offset and sized by l.
func (r *Renderer) Box(f dialogue.Frame, l layout, border lipgloss.Color, termWidth, termHeight int) string {
	st := BoxStyle.BorderForeground(border)
	frameWidth := st.GetHorizontalFrameSize()

	left, hasLeft := cells(l.position.Left, termWidth, PxToCols)
	right, hasRight := cells(l.position.Right, termWidth, PxToCols)
	top, hasTop := cells(l.position.Top, termHeight, PxToRows)
	bottom, hasBottom := cells(l.position.Bottom, termHeight, PxToRows)

	maxWidth := termWidth - max(left, 0)
	if w, ok := cells(l.width, termWidth, PxToCols); ok {
		maxWidth = min(w, maxWidth)
	}
	inner := max(maxWidth-frameWidth, 1)

	content := r.Runs(f.Runs, inner)
	if _, ok := cells(l.width, termWidth, PxToCols); ok || lipgloss.Width(content) > inner {
		st = st.Width(inner + st.GetHorizontalPadding())
	}
	box := st.Render(content)

	if !hasLeft && hasRight {
		left = termWidth - lipgloss.Width(box) - right
	}
	if !hasTop && hasBottom {
		top = termHeight - lipgloss.Height(box) - bottom
	}

	return lipgloss.NewStyle().
		MarginLeft(max(left, 0)).
		MarginTop(max(top, 0)).
		Render(box)
}
