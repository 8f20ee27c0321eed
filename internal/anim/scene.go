package anim

import (
	"image"
	"math/rand"
)

// Scene composites an ordered layer stack over a run of consecutive frames.
// Layer 0 must be an *Image background: it renders itself fresh each frame
// and owns the canvas dimensions. Nil layers are skipped. Text layers run on
// a beat-local counter that restarts at 0, while every other layer follows
// the global frame index, which is what lets a typewriter reveal restart per
// beat while the character animation keeps its phase.
type Scene struct {
	Layers     []Layer
	Length     int
	StartFrame int
	// Shake jitters every layer of the stack, used by themed reaction
	// effects that rattle the whole courtroom.
	Shake bool
}

// FrameCount reports how many frames Render will emit.
func (s *Scene) FrameCount() int { return s.Length }

// Render flattens the scene frame by frame, handing each finished bitmap to
// emit. Frames are produced once and must be consumed (or copied) before the
// next call; emit returning an error aborts the run.
func (s *Scene) Render(rng *rand.Rand, emit func(*image.RGBA) error) error {
	layers := make([]Layer, 0, len(s.Layers))
	for _, l := range s.Layers {
		if l != nil {
			layers = append(layers, l)
		}
	}
	bg := layers[0].(*Image)

	textIdx := 0
	for idx := s.StartFrame; idx < s.StartFrame+s.Length; idx++ {
		ctx := Context{Frame: idx, TextFrame: textIdx, Shake: s.Shake, Rand: rng}
		frame := bg.NewFrame(ctx)
		for _, layer := range layers[1:] {
			layer.Render(frame, ctx)
		}
		if err := emit(frame); err != nil {
			return err
		}
		textIdx++
	}
	return nil
}
