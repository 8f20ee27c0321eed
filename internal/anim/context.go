package anim

import (
	"image"
	"math/rand"
)

// Context carries the per-call render state for a single frame. Scenes pass a
// fresh Context into every layer instead of toggling flags on shared assets,
// so a cached asset can be rendered by several workers at once.
type Context struct {
	// Frame is the global frame index of the enclosing scene run.
	Frame int
	// TextFrame is the beat-local counter that drives typewriter reveals.
	// It restarts at 0 for the first frame of every scene.
	TextFrame int
	// Shake forces a ±1px jitter on every positioned layer for this call.
	Shake bool
	// Rand is the jitter source. Tests inject a seeded one to pin offsets.
	Rand *rand.Rand
}

func (c Context) jitter() (int, int) {
	if c.Rand == nil {
		return rand.Intn(3) - 1, rand.Intn(3) - 1
	}
	return c.Rand.Intn(3) - 1, c.Rand.Intn(3) - 1
}

// Layer is anything a Scene can composite onto a frame.
type Layer interface {
	Render(dst *image.RGBA, ctx Context)
}
