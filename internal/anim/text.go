package anim

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const lineSpacing = 4

// Text is a renderable text overlay. The typewriter reveal is driven by the
// beat-local frame counter in the render Context.
type Text struct {
	Text   string
	X, Y   int
	Face   font.Face
	Colour color.Color
	// Typewriter limits drawing to the first TextFrame runes. The animator
	// clears it to freeze the fully revealed text for the hold phase.
	Typewriter bool
}

// Render draws the (possibly partially revealed) text onto dst in place.
func (t *Text) Render(dst *image.RGBA, ctx Context) {
	text := t.Text
	if t.Typewriter {
		runes := []rune(text)
		n := ctx.TextFrame
		if n > len(runes) {
			n = len(runes)
		}
		text = string(runes[:n])
	}

	col := t.Colour
	if col == nil {
		col = color.White
	}

	metrics := t.Face.Metrics()
	lineHeight := metrics.Height.Ceil() + lineSpacing
	y := t.Y + metrics.Ascent.Ceil()

	for _, line := range strings.Split(text, "\n") {
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(col),
			Face: t.Face,
			Dot:  fixed.P(t.X, y),
		}
		d.DrawString(line)
		y += lineHeight
	}
}
