package theme

import (
	"fmt"

	"github.com/ivlev/dialogue2video/internal/audio"
	"github.com/ivlev/dialogue2video/internal/director"
)

// SoundBank holds the decoded effect clips of a theme. Built once per run;
// Render slices the prepared clips, so it never touches the filesystem.
type SoundBank struct {
	theme *Theme
	blink *audio.Segment
	// longBip is the looped typewriter blip bed the reveal phase is cut
	// from, pre-attenuated to sit under the dialogue.
	longBip    *audio.Segment
	shock      *audio.Segment
	objections map[string]*audio.Segment
	fallback   *audio.Segment
}

// LoadSounds decodes every clip the theme's sound palette names.
func (t *Theme) LoadSounds() (*SoundBank, error) {
	blip, err := audio.DecodeClip(t.AssetPath(t.Sounds.Blip))
	if err != nil {
		return nil, fmt.Errorf("blip clip: %w", err)
	}
	blink, err := audio.DecodeClip(t.AssetPath(t.Sounds.Blink))
	if err != nil {
		return nil, fmt.Errorf("blink clip: %w", err)
	}
	shock, err := audio.DecodeClip(t.AssetPath(t.Sounds.Shock))
	if err != nil {
		return nil, fmt.Errorf("shock clip: %w", err)
	}

	// One blip plus a 50ms gap, repeated long enough to cover any reveal.
	unit := blip.Clone()
	unit.Append(audio.Silence(50))
	bank := &SoundBank{
		theme:      t,
		blink:      blink.Gain(-10),
		longBip:    unit.Repeat(100).Gain(-10),
		shock:      shock,
		objections: make(map[string]*audio.Segment),
	}

	for speaker, clip := range t.Sounds.ObjectionVoices {
		seg, err := audio.DecodeClip(t.AssetPath(clip))
		if err != nil {
			return nil, fmt.Errorf("objection clip for %s: %w", speaker, err)
		}
		bank.objections[speaker] = seg
	}
	bank.fallback, err = audio.DecodeClip(t.AssetPath(t.Sounds.ObjectionDefault))
	if err != nil {
		return nil, fmt.Errorf("default objection clip: %w", err)
	}
	return bank, nil
}

// Render produces the audio for one sound event, exactly as long as the
// event's frame count. Unknown kinds are a rendering bug, not bad input.
func (b *SoundBank) Render(ev director.SoundEvent) (*audio.Segment, error) {
	ms := int(float64(ev.Frames) * b.theme.MSPerFrame())
	switch ev.Kind {
	case director.SoundSilence:
		return audio.Silence(ms), nil
	case director.SoundBip:
		// The reveal opens with the blink, then rides the blip bed for the
		// remaining time.
		out := b.blink.Clone()
		out.Append(b.longBip.Take(ms - b.blink.DurationMS()))
		return out, nil
	case director.SoundObjection:
		clip, ok := b.objections[ev.Speaker]
		if !ok {
			clip = b.fallback
		}
		return clip.Take(ms), nil
	case director.SoundShock:
		return b.shock.Take(ms), nil
	default:
		return nil, fmt.Errorf("unknown sound effect kind %q", ev.Kind)
	}
}

// Music cuts the named background track to the requested duration.
func (b *SoundBank) Music(track string, ms int) (*audio.Segment, error) {
	seg, err := audio.DecodeClip(b.theme.AssetPath(track + ".mp3"))
	if err != nil {
		return nil, fmt.Errorf("music track %s: %w", track, err)
	}
	return seg.Take(ms), nil
}
