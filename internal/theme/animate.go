package theme

import (
	"fmt"

	"golang.org/x/image/font"

	"github.com/ivlev/dialogue2video/internal/anim"
	"github.com/ivlev/dialogue2video/internal/director"
	"github.com/ivlev/dialogue2video/internal/script"
)

// stage is the prepared layer material for one cue: the location stack with
// the idle sprite, the same stack with the talking sprite, and the textbox
// overlay pair. Layer slices are shared between scenes; they are never
// mutated after staging.
type stage struct {
	bg       *anim.Image
	location []anim.Layer
	talking  []anim.Layer
	text     []anim.Layer
	arrow    *anim.Image
	textFace font.Face
}

// stageCue loads and positions every sprite the cue needs. Assets are served
// from the shared cache, so repeated cues on the same stage cost one decode.
func (t *Theme) stageCue(cue *director.Cue) (*stage, error) {
	c, ok := t.Characters[cue.Character]
	if !ok {
		return nil, fmt.Errorf("theme %s: unknown character %s", t.Name, cue.Character)
	}
	loc := t.Locations[c.Location]

	bg, err := t.cache.GetSprite(t.AssetPath(loc.Asset), anim.ImageParams{Scale: t.scale})
	if err != nil {
		return nil, err
	}

	idlePath, talkingPath := t.spritePaths(c, cue.Variant)
	idle, err := t.cache.GetSprite(idlePath, anim.ImageParams{HalfSpeed: true, Scale: t.scale})
	if err != nil {
		return nil, fmt.Errorf("idle sprite for %s/%s: %w", cue.Character, cue.Variant, err)
	}
	talking, err := t.cache.GetSprite(talkingPath, anim.ImageParams{HalfSpeed: true, Scale: t.scale})
	if err != nil {
		return nil, fmt.Errorf("talking sprite for %s/%s: %w", cue.Character, cue.Variant, err)
	}

	st := &stage{
		bg:       bg,
		location: []anim.Layer{bg, idle},
		talking:  []anim.Layer{bg, talking},
	}

	for _, ov := range loc.Overlays {
		params := anim.ImageParams{Scale: t.scale}
		if ov.FullWidth {
			params.W = int(float64(bg.W) / t.scale)
			params.BottomAlign = true
		}
		img, err := t.cache.GetSprite(t.AssetPath(ov.Asset), params)
		if err != nil {
			return nil, err
		}
		st.location = append(st.location, img)
		st.talking = append(st.talking, img)
	}

	textbox, err := t.cache.GetSprite(t.AssetPath(t.TextBox.Asset), anim.ImageParams{
		W:     int(float64(bg.W) / t.scale),
		Scale: t.scale,
	})
	if err != nil {
		return nil, err
	}
	nameFace, err := t.cache.GetFace(t.AssetPath(t.TextBox.Font), t.TextBox.NameSize, t.scale)
	if err != nil {
		return nil, err
	}
	nameplate := &anim.Text{
		Text: cue.Name,
		X:    int(t.scale * float64(t.TextBox.NameX)),
		Y:    int(t.scale * float64(t.TextBox.NameY)),
		Face: nameFace,
	}
	st.text = []anim.Layer{textbox, nameplate}

	st.textFace, err = t.cache.GetFace(t.AssetPath(t.TextBox.Font), t.TextBox.TextSize, t.scale)
	if err != nil {
		return nil, err
	}

	st.arrow, err = t.cache.GetSprite(t.AssetPath(t.Arrow.Asset), anim.ImageParams{
		X:           t.Arrow.X,
		Y:           t.Arrow.Y,
		W:           t.Arrow.W,
		H:           t.Arrow.H,
		KeyX:        t.Arrow.KeyFrames,
		KeyXReverse: true,
		Scale:       t.scale,
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// AnimateCue turns one cue into its ordered scene list and attaches the
// matching sound events: action events on the cue, bip and hold silence on
// each beat. Scene frame totals and sound frame totals come out equal, which
// the engine asserts before muxing.
func (t *Theme) AnimateCue(cue *director.Cue) ([]*anim.Scene, error) {
	st, err := t.stageCue(cue)
	if err != nil {
		return nil, err
	}

	var scenes []*anim.Scene
	frame := 0
	for _, action := range cue.Actions {
		part, err := t.animateAction(cue, action, &frame, st)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, part...)
	}
	for _, beat := range cue.Beats {
		part, err := t.animateBeat(beat, &frame, st)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, part...)
	}
	return scenes, nil
}

// animateAction emits the reaction effect: the overlay pass (when the action
// has a bubble asset) followed by the bare location pass, both shaken when
// the action says so.
func (t *Theme) animateAction(cue *director.Cue, action *director.Action, frame *int, st *stage) ([]*anim.Scene, error) {
	var scenes []*anim.Scene

	if action.Asset != "" {
		bubble, err := t.cache.GetSprite(t.AssetPath(action.Asset), anim.ImageParams{
			Shake: true,
			Scale: t.scale,
		})
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, &anim.Scene{
			Layers:     append(append([]anim.Layer{}, st.location...), bubble),
			Length:     action.Frames,
			StartFrame: *frame,
			Shake:      action.Shake,
		})
	}
	scenes = append(scenes, &anim.Scene{
		Layers:     st.location,
		Length:     action.Frames,
		StartFrame: *frame,
		Shake:      action.Shake,
	})
	*frame += t.LagFrames

	if action.Sound != nil {
		ev := *action.Sound
		ev.Speaker = cue.Character
		cue.SFX = append(cue.SFX, ev)
	}
	return scenes, nil
}

// animateBeat emits the typewriter reveal over the talking stack, then the
// hold with the frozen text, the idle stack and the continue arrow. The
// reveal runs one frame per revealed rune after the first.
func (t *Theme) animateBeat(beat *director.Beat, frame *int, st *stage) ([]*anim.Scene, error) {
	display := script.SplitIntoDisplayLines(beat.Text, t.TextBox.LineWidth)
	reveal := len([]rune(display)) - 1

	textX := int(t.scale * float64(t.TextBox.TextX))
	textY := int(t.scale * float64(t.TextBox.TextY))

	typed := &anim.Text{
		Text:       display,
		X:          textX,
		Y:          textY,
		Face:       st.textFace,
		Typewriter: true,
	}
	scenes := []*anim.Scene{{
		Layers:     append(append([]anim.Layer{}, st.talking...), append(st.text, typed)...),
		Length:     reveal,
		StartFrame: *frame,
	}}
	beat.SFX = append(beat.SFX, director.SoundEvent{Kind: director.SoundBip, Frames: reveal})

	held := &anim.Text{Text: display, X: textX, Y: textY, Face: st.textFace}
	scenes = append(scenes, &anim.Scene{
		Layers:     append(append([]anim.Layer{}, st.location...), append(st.text, held, st.arrow)...),
		Length:     t.LagFrames,
		StartFrame: *frame + reveal,
	})
	beat.SFX = append(beat.SFX, director.SoundEvent{Kind: director.SoundSilence, Frames: t.LagFrames})

	*frame += reveal + t.LagFrames
	return scenes, nil
}
