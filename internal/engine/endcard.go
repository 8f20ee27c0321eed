package engine

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/dialogue2video/internal/anim"
	"github.com/ivlev/dialogue2video/internal/director"
)

// endCard builds the closing scene: the end-card location background with a
// QR code to the source material, plus a synthetic cue whose silence keeps
// the audio track aligned with the extra frames.
func (p *Project) endCard(index int) ([]*anim.Scene, *director.Cue, error) {
	locKey := p.Theme.EndCardLocation
	if locKey == "" {
		return nil, nil, fmt.Errorf("theme %s declares no end card location", p.Theme.Name)
	}
	loc := p.Theme.Locations[locKey]

	bg, err := p.Cache.GetSprite(p.Theme.AssetPath(loc.Asset), anim.ImageParams{Scale: p.Theme.Scale()})
	if err != nil {
		return nil, nil, err
	}

	qr, err := qrcode.New(p.Config.SourceURL, qrcode.Medium)
	if err != nil {
		return nil, nil, err
	}
	side := bg.H / 2
	code := anim.NewImage("endcard-qr", []image.Image{qr.Image(side)}, anim.ImageParams{
		X: (bg.W - side) / 2,
		Y: (bg.H - side) / 2,
	})

	length := 2 * p.Theme.LagFrames
	scene := &anim.Scene{
		Layers: []anim.Layer{bg, code},
		Length: length,
	}
	cue := &director.Cue{
		Index: index,
		SFX:   []director.SoundEvent{{Kind: director.SoundSilence, Frames: length}},
	}
	return []*anim.Scene{scene}, cue, nil
}
