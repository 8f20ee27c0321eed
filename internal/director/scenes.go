package director

import "github.com/ivlev/dialogue2video/internal/emotion"

// SoundKind names a sound-effect event type. Playback is the sequential
// concatenation of events, so kinds must render to exact frame lengths.
type SoundKind string

const (
	SoundSilence   SoundKind = "silence"
	SoundBip       SoundKind = "bip"
	SoundObjection SoundKind = "objection"
	SoundShock     SoundKind = "shock"
)

// SoundEvent is one entry on the effects track. Speaker selects the voiced
// clip for objection-style events.
type SoundEvent struct {
	Kind    SoundKind
	Frames  int
	Speaker string
}

// MusicChange declares a switch of the background track. Frames starts at 0
// and is accumulated by the audio assembler as later cues are replayed, so a
// segment's duration is resolved retroactively by the next change (or the end
// of the stream).
type MusicChange struct {
	Track  string
	Frames int
}

// Beat is one wrapped text chunk within a cue, rendered as its own
// reveal-and-hold animation. SFX is filled by the cue animator.
type Beat struct {
	Text string
	SFX  []SoundEvent
}

// Action is a themed reaction effect triggered by an emotion label. Static
// theme configuration; never mutated at runtime.
type Action struct {
	Name string `yaml:"name"`
	// Frames is the length of each scene the action emits.
	Frames int `yaml:"frames"`
	// Asset optionally names an overlay image (e.g. the objection bubble).
	Asset string `yaml:"asset,omitempty"`
	// Shake rattles the whole location stack for the action's duration.
	Shake bool `yaml:"shake,omitempty"`
	// Sound optionally names the event template the action emits.
	Sound *SoundEvent `yaml:"sound,omitempty"`
	// MusicTrack optionally overrides the background track.
	MusicTrack string `yaml:"music_track,omitempty"`
	// Triggers lists the emotions that fire this action.
	Triggers []emotion.Label `yaml:"triggers"`
}

// Cue is one contiguous speaking turn: the unit of parallel rendering.
// Built by the Builder, mutated by the cue animator (which appends sound
// events as it emits scenes), consumed in order by the assemblers.
type Cue struct {
	Index     int
	Character string // theme roster key
	Name      string // nameplate text
	Emotion   emotion.Label
	Score     float64
	// Variant is the chosen sprite variant within the emotion bucket.
	Variant string
	Beats   []*Beat
	Actions []*Action
	Music   *MusicChange
	// SFX holds action-level events (objection voice, shock) in emission
	// order; beat-level events live on the beats.
	SFX []SoundEvent
}

// SoundFrames sums every sound event attached to the cue, actions first then
// beats, matching animation emission order.
func (c *Cue) SoundFrames() int {
	total := 0
	for _, ev := range c.SFX {
		total += ev.Frames
	}
	for _, b := range c.Beats {
		for _, ev := range b.SFX {
			total += ev.Frames
		}
	}
	return total
}
