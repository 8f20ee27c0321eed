package director

import (
	"fmt"

	"github.com/ivlev/dialogue2video/internal/emotion"
	"github.com/ivlev/dialogue2video/internal/script"
)

// ClassifiedLine is a dialogue line after emotion classification and
// confidence normalization, ready to become a cue.
type ClassifiedLine struct {
	Text   string
	Author script.Author
	Label  emotion.Label
	Score  float64
}

// Builder turns classified dialogue lines into an ordered cue list, deciding
// per cue which action fires and when the background music changes. The
// music decision is a fold over the cue order; everything else is per-line.
type Builder struct {
	Segmenter *script.Segmenter
	// EmotionActions maps an emotion to the single action it triggers.
	EmotionActions map[emotion.Label]*Action
	// EmotionMusic maps an emotion to its default track.
	EmotionMusic map[emotion.Label]string
	// Variants lists the sprite variants a character offers for an emotion.
	Variants func(character string, label emotion.Label) []string
	// Choose picks an index in [0,n). Injected so tests can pin the
	// otherwise-random variant selection.
	Choose func(n int) int
	// MusicMinSceneDuration gates emotion-driven track changes: at least
	// this many cues must pass since the last change.
	MusicMinSceneDuration int
}

// Build produces one cue per line, in order, with music changes attached.
func (b *Builder) Build(lines []ClassifiedLine) ([]*Cue, error) {
	cues := make([]*Cue, 0, len(lines))
	for i, line := range lines {
		cue, err := b.buildCue(i, line)
		if err != nil {
			return nil, err
		}
		cues = append(cues, cue)
	}

	var st musicState
	for _, cue := range cues {
		st = b.foldMusic(st, cue)
	}
	return cues, nil
}

func (b *Builder) buildCue(index int, line ClassifiedLine) (*Cue, error) {
	variants := b.Variants(line.Author.Character, line.Label)
	if len(variants) == 0 {
		return nil, fmt.Errorf("character %s has no sprites for emotion %s", line.Author.Character, line.Label)
	}
	variant := variants[b.Choose(len(variants))]

	var beats []*Beat
	for _, chunk := range b.Segmenter.Chunks(line.Text) {
		beats = append(beats, &Beat{Text: chunk})
	}

	return &Cue{
		Index:     index,
		Character: line.Author.Character,
		Name:      line.Author.Name,
		Emotion:   line.Label,
		Score:     line.Score,
		Variant:   variant,
		Beats:     beats,
	}, nil
}

// musicState is the running state of the music fold, threaded explicitly so
// the sequential dependency is visible and testable in isolation.
type musicState struct {
	lastTrack        string
	lastEmotion      emotion.Label
	unitsSinceChange int
	started          bool
}

// foldMusic advances the music state over one cue, attaching a MusicChange
// when either an action overrides the track or the emotion has moved and the
// minimum-scene gate has elapsed. The very first cue always seeds playback
// with the normal track; an action override on that same cue replaces the
// seed, since a cue carries at most one change.
func (b *Builder) foldMusic(st musicState, cue *Cue) musicState {
	if !st.started {
		st.lastTrack = b.EmotionMusic[emotion.Normal]
		st.lastEmotion = cue.Emotion
		st.started = true
		cue.Music = &MusicChange{Track: st.lastTrack}
	}

	current := st.lastTrack
	changed := false

	if action, ok := b.EmotionActions[cue.Emotion]; ok {
		cue.Actions = append(cue.Actions, action)
		if action.MusicTrack != "" {
			current = action.MusicTrack
			if current != st.lastTrack {
				cue.Music = &MusicChange{Track: current}
				changed = true
			}
		}
	}

	if !changed && cue.Emotion != st.lastEmotion && st.unitsSinceChange >= b.MusicMinSceneDuration {
		if track, ok := b.EmotionMusic[cue.Emotion]; ok && track != st.lastTrack {
			current = track
			cue.Music = &MusicChange{Track: current}
			st.lastEmotion = cue.Emotion
			changed = true
		}
	}

	if changed {
		st.unitsSinceChange = 0
		st.lastTrack = current
	}
	// One unit per cue, not per frame. Coarse, but it keeps the gate
	// independent of how verbose a speaker happens to be.
	st.unitsSinceChange++
	return st
}
