package tui

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/parley/internal/dialogue"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// BlockSize is the font size from which runs are drawn as block art.
const BlockSize = 64

// Cell metrics of the reference face, used to turn pixel lengths from
// scripts into terminal cells.
var (
	cellWidthPx  = font.MeasureString(basicfont.Face7x13, "M").Ceil()
	cellHeightPx = basicfont.Face7x13.Metrics().Height.Ceil()
)

// maxCells bounds converted lengths; no terminal is this large.
const maxCells = 1 << 16

// PxToCols converts a horizontal pixel length to terminal columns.
func PxToCols(px float64) int {
	return toCells(px / float64(cellWidthPx))
}

// PxToRows converts a vertical pixel length to terminal rows.
func PxToRows(px float64) int {
	return toCells(px / float64(cellHeightPx))
}

// toCells rounds f to a cell count within [-maxCells, maxCells]. NaN is 0.
func toCells(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(math.Max(-maxCells, math.Min(f, maxCells))))
}

// FontBook resolves the opaque font references used in scripts.
//
// Named fonts ("bold", "italic", "underline", "faint", "strikethrough",
// "reverse", or several joined by '+') map to terminal attributes. Font
// files (.ttf, .otf, .ttc) are loaded relative to the script directory and
// only affect runs drawn as block art.
type FontBook struct {
	dir   string
	faces map[dialogue.FontRef]font.Face
}

// NewFontBook returns a font book resolving files relative to dir.
func NewFontBook(dir string) *FontBook {
	return &FontBook{
		dir:   dir,
		faces: make(map[dialogue.FontRef]font.Face),
	}
}

// Style applies the attributes named by ref to st.
func (b *FontBook) Style(ref dialogue.FontRef, st lipgloss.Style) lipgloss.Style {
	if isFontFile(string(ref)) {
		return st
	}
	for _, attr := range strings.Split(strings.ToLower(string(ref)), "+") {
		switch strings.TrimSpace(attr) {
		case "bold":
			st = st.Bold(true)
		case "italic":
			st = st.Italic(true)
		case "underline":
			st = st.Underline(true)
		case "faint":
			st = st.Faint(true)
		case "strikethrough":
			st = st.Strikethrough(true)
		case "reverse":
			st = st.Reverse(true)
		}
	}
	return st
}

// Face returns the face for block art. Unknown or unloadable fonts fall
// back to the built-in bitmap face.
func (b *FontBook) Face(ref dialogue.FontRef) font.Face {
	if !isFontFile(string(ref)) {
		return basicfont.Face7x13
	}
	if face, ok := b.faces[ref]; ok {
		return face
	}

	face, err := b.load(string(ref))
	if err != nil {
		slog.Warn("falling back to built-in font", "font", ref, "err", err)
		face = basicfont.Face7x13
	}
	b.faces[ref] = face
	return face
}

func (b *FontBook) load(name string) (font.Face, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}

	opts := &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull}

	// Try parsing as font collection first
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			return opentype.NewFace(fnt, opts)
		}
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", name, err)
	}
	return opentype.NewFace(fnt, opts)
}

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc":
		return true
	}
	return false
}
