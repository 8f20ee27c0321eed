package audio

import (
	"fmt"

	"github.com/ivlev/dialogue2video/internal/director"
)

// Assembler replays the sound-event stream of an ordered cue list and builds
// the two audio tracks: effects (event by event) and music (segment lengths
// resolved retroactively from the frames elapsed between track changes).
type Assembler struct {
	// MSPerFrame converts event frame lengths to clip durations.
	MSPerFrame float64
	// RenderEffect turns one event into a clip of exactly the event's
	// duration. An unknown event kind is an error, never a fallback.
	RenderEffect func(ev director.SoundEvent) (*Segment, error)
	// RenderMusic returns the named track truncated to ms milliseconds.
	RenderMusic func(track string, ms int) (*Segment, error)
}

// Assemble walks the cues in order (action events first, then beat events,
// matching animation emission order) and returns the master track: effects
// overlaid on music, aligned at time zero. The second return is the total
// event frame count, which the caller checks against the rendered video.
func (a *Assembler) Assemble(cues []*director.Cue) (*Segment, int, error) {
	effects := &Segment{}
	totalFrames := 0
	var changes []*director.MusicChange

	for _, cue := range cues {
		cueFrames := 0

		appendEvent := func(ev director.SoundEvent) error {
			clip, err := a.RenderEffect(ev)
			if err != nil {
				return fmt.Errorf("cue %d: %w", cue.Index, err)
			}
			effects.Append(clip)
			cueFrames += ev.Frames
			return nil
		}

		for _, ev := range cue.SFX {
			if err := appendEvent(ev); err != nil {
				return nil, 0, err
			}
		}
		for _, beat := range cue.Beats {
			for _, ev := range beat.SFX {
				if err := appendEvent(ev); err != nil {
					return nil, 0, err
				}
			}
		}

		if cue.Music != nil {
			changes = append(changes, cue.Music)
		}
		// Frames elapsed during this cue belong to whichever music
		// segment is currently open.
		if len(changes) > 0 {
			changes[len(changes)-1].Frames += cueFrames
		}
		totalFrames += cueFrames
	}

	music := &Segment{}
	for _, change := range changes {
		seg, err := a.RenderMusic(change.Track, a.durationMS(change.Frames))
		if err != nil {
			return nil, 0, err
		}
		music.Append(seg)
	}

	return effects.Overlay(music), totalFrames, nil
}

func (a *Assembler) durationMS(frames int) int {
	return int(float64(frames) * a.MSPerFrame)
}
