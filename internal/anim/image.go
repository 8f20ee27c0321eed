package anim

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/dialogue2video/internal/system"
)

// ImageParams describes how a decoded asset becomes a frame-indexed sprite.
// All geometry is in unscaled asset pixels; Scale is applied uniformly.
type ImageParams struct {
	X, Y int
	// W/H request a resize. Zero means "keep the source dimension"; if only
	// one is set the other follows the source aspect ratio.
	W, H int
	// KeyX synthesizes a horizontal slide sequence of that many frames by
	// left-padding the image with a growing transparent margin.
	KeyX        int
	KeyXReverse bool
	Shake       bool
	HalfSpeed   bool
	// Clamp holds the last frame once the sequence is exhausted instead of
	// looping from the start.
	Clamp bool
	// BottomAlign pins the sprite to the bottom edge of whatever canvas it
	// is rendered onto, ignoring Y. Resolved per render call so the sprite
	// itself stays position-free and safe to share between workers.
	BottomAlign bool
	Scale       float64
}

func (p ImageParams) withDefaults() ImageParams {
	if p.Scale == 0 {
		p.Scale = 1.0
	}
	return p
}

func (p ImageParams) key(path string) string {
	return fmt.Sprintf("%s|%d,%d|%dx%d|k%d,%t|s%t|h%t|c%t|b%t|f%g",
		path, p.X, p.Y, p.W, p.H, p.KeyX, p.KeyXReverse, p.Shake, p.HalfSpeed, p.Clamp, p.BottomAlign, p.Scale)
}

// Image is a frame-indexed renderable built from a decoded asset. It is
// immutable after construction; transient effects travel in the Context.
type Image struct {
	Path   string
	X, Y   int
	W, H   int
	frames []*image.RGBA

	shake       bool
	halfSpeed   bool
	clamp       bool
	bottomAlign bool
}

// NewImage expands decoded source frames into the sprite's own frame
// sequence: one resized frame per source frame for animated sources, a
// synthesized pad sequence when KeyX is set, a single frame otherwise.
func NewImage(path string, src []image.Image, p ImageParams) *Image {
	p = p.withDefaults()
	a := &Image{
		Path:      path,
		X:         int(p.Scale * float64(p.X)),
		Y:         int(p.Scale * float64(p.Y)),
		shake:       p.Shake,
		halfSpeed:   p.HalfSpeed,
		clamp:       p.Clamp,
		bottomAlign: p.BottomAlign,
	}

	switch {
	case len(src) > 1:
		for _, frame := range src {
			a.frames = append(a.frames, resizeFrame(frame, p))
		}
	case p.KeyX > 0:
		base := resizeFrame(src[0], p)
		for pad := 0; pad < p.KeyX; pad++ {
			a.frames = append(a.frames, padLeft(base, pad))
		}
		if p.KeyXReverse {
			for pad := p.KeyX - 1; pad >= 0; pad-- {
				a.frames = append(a.frames, padLeft(base, pad))
			}
		}
	default:
		a.frames = append(a.frames, resizeFrame(src[0], p))
	}

	a.W = a.frames[0].Bounds().Dx()
	a.H = a.frames[0].Bounds().Dy()
	return a
}

// FrameCount reports the length of the expanded sequence.
func (a *Image) FrameCount() int { return len(a.frames) }

func (a *Image) frameAt(frame int) *image.RGBA {
	if frame > len(a.frames)-1 {
		if a.clamp {
			frame = len(a.frames) - 1
		} else {
			frame = frame % len(a.frames)
		}
	}
	// Half speed only applies while looping, never while clamped on the last frame.
	if a.halfSpeed && !a.clamp {
		frame = frame / 2
	}
	return a.frames[frame]
}

// Render alpha-composites the frame selected by ctx onto dst at the sprite's
// offset, jittered when either the sprite or the context asks for shake.
func (a *Image) Render(dst *image.RGBA, ctx Context) {
	img := a.frameAt(ctx.Frame)
	x, y := a.X, a.Y
	if a.bottomAlign {
		y = dst.Bounds().Max.Y - a.H
	}
	if a.shake || ctx.Shake {
		dx, dy := ctx.jitter()
		x += dx
		y += dy
	}
	r := img.Bounds().Add(image.Pt(x, y))
	draw.Draw(dst, r, img, img.Bounds().Min, draw.Over)
}

// NewFrame renders the sprite as a scene background: a fresh white canvas of
// the sprite's own dimensions with the selected frame composited onto it.
func (a *Image) NewFrame(ctx Context) *image.RGBA {
	base := system.GetImage(image.Rect(0, 0, a.W, a.H))
	draw.Draw(base, base.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	a.Render(base, ctx)
	return base
}

func resizeFrame(src image.Image, p ImageParams) *image.RGBA {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	w, h := p.W, p.H
	switch {
	case w == 0 && h == 0:
		w, h = sw, sh
	case h == 0:
		h = int(float64(sh) * float64(w) / float64(sw))
	case w == 0:
		w = int(float64(sw) * float64(h) / float64(sh))
	}
	w = int(p.Scale * float64(w))
	h = int(p.Scale * float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == sw && h == sh {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func padLeft(src *image.RGBA, pad int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()+pad, b.Dy()))
	draw.Draw(dst, image.Rect(pad, 0, pad+b.Dx(), b.Dy()), src, b.Min, draw.Src)
	return dst
}
