// Package blocktext renders short strings as large block art using
// half-block characters.
package blocktext

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// threshold is the brightness above which a half cell counts as ink.
const threshold = 40

// Render draws text with face and returns it as rows lines of half-block
// characters. The width follows from the text's aspect ratio. It returns ""
// for empty text or when the art would be wider than maxCols.
func Render(text string, face font.Face, rows, maxCols int) string {
	if text == "" || face == nil || rows <= 0 {
		return ""
	}

	advance := font.MeasureString(face, text).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()

	padding := 1
	srcWidth := advance + padding*2
	srcHeight := ascent + descent + padding*2

	// Half-blocks give roughly square pixels.
	cols := int(math.Ceil(float64(srcWidth) * float64(rows*2) / float64(srcHeight)))
	if cols <= 0 || (maxCols > 0 && cols > maxCols) {
		return ""
	}

	srcImg := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(srcImg, srcImg.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  srcImg,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(padding, padding+ascent),
	}
	d.DrawString(text)

	scaled := scaleDown(srcImg, cols, rows*2)
	return toHalfBlocks(scaled, cols, rows)
}

type cacheKey struct {
	text       string
	face       font.Face
	rows, cols int
}

// cacheLimit is the number of renders kept before the cache is dropped.
// Typewriter reveals add one entry per visible prefix.
const cacheLimit = 256

var (
	cacheMu sync.Mutex
	cache   = make(map[cacheKey]string)
)

// Cached is Render with memoization. Frames redraw the same text many times
// while a dialogue waits for input.
func Cached(text string, face font.Face, rows, maxCols int) string {
	key := cacheKey{text: text, face: face, rows: rows, cols: maxCols}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if out, ok := cache[key]; ok {
		return out
	}
	out := Render(text, face, rows, maxCols)
	if len(cache) >= cacheLimit {
		clear(cache)
	}
	cache[key] = out
	return out
}

// scaleDown scales a grayscale image using area averaging
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := max(int(float64(dx+1)*xRatio), sx1+1)
			sy2 := max(int(float64(dy+1)*yRatio), sy1+1)
			sx2 = min(sx2, srcWidth)
			sy2 = min(sy2, srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// toHalfBlocks converts a grayscale image to half-block art, two vertical
// pixels per cell.
func toHalfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
