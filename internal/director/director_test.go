package director

import (
	"testing"

	"github.com/ivlev/dialogue2video/internal/emotion"
	"github.com/ivlev/dialogue2video/internal/script"
)

func testBuilder(gate int, actions map[emotion.Label]*Action) *Builder {
	return &Builder{
		Segmenter:      &script.Segmenter{Splitter: script.PunctSplitter{}, WrapLimit: 87},
		EmotionActions: actions,
		EmotionMusic: map[emotion.Label]string{
			emotion.Normal:  "trial",
			emotion.Sadness: "suspense",
			emotion.Anger:   "cornered",
		},
		Variants: func(character string, label emotion.Label) []string {
			return []string{"normal", "thinking"}
		},
		Choose:                func(n int) int { return 0 },
		MusicMinSceneDuration: gate,
	}
}

func line(text string, label emotion.Label) ClassifiedLine {
	return ClassifiedLine{
		Text:   text,
		Author: script.Author{Name: "Phoenix", Character: "phoenix"},
		Label:  label,
		Score:  0.9,
	}
}

func TestBuildSeedsNormalMusic(t *testing.T) {
	b := testBuilder(2, nil)
	cues, err := b.Build([]ClassifiedLine{line("Hello.", emotion.Normal)})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cues[0].Music == nil || cues[0].Music.Track != "trial" {
		t.Fatalf("first cue must seed the normal track, got %+v", cues[0].Music)
	}
}

func TestBuildMusicGate(t *testing.T) {
	b := testBuilder(2, nil)
	lines := []ClassifiedLine{
		line("One.", emotion.Normal),
		line("Two.", emotion.Sadness),
		line("Three.", emotion.Sadness),
		line("Four.", emotion.Sadness),
	}
	cues, err := b.Build(lines)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// The sustained emotion may not switch the track until two cues have
	// passed since the seed.
	if cues[1].Music != nil {
		t.Errorf("cue 1 switched early: %+v", cues[1].Music)
	}
	if cues[2].Music == nil || cues[2].Music.Track != "suspense" {
		t.Errorf("cue 2 should switch to suspense, got %+v", cues[2].Music)
	}
	if cues[3].Music != nil {
		t.Errorf("cue 3 should not change an already playing track: %+v", cues[3].Music)
	}
}

func TestBuildActionOverridesSeed(t *testing.T) {
	objection := &Action{
		Name:       "objection",
		Frames:     11,
		Asset:      "objection.gif",
		Sound:      &SoundEvent{Kind: SoundObjection, Frames: 22},
		MusicTrack: "pursuit",
		Triggers:   []emotion.Label{emotion.Anger},
	}
	b := testBuilder(2, map[emotion.Label]*Action{emotion.Anger: objection})

	cues, err := b.Build([]ClassifiedLine{line("Objection!", emotion.Anger)})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cue := cues[0]
	if len(cue.Actions) != 1 || cue.Actions[0] != objection {
		t.Fatalf("expected the objection action on the cue, got %+v", cue.Actions)
	}
	// A cue carries a single music slot; the action override replaces the
	// initial seed.
	if cue.Music == nil || cue.Music.Track != "pursuit" {
		t.Errorf("action must override the seeded track, got %+v", cue.Music)
	}
}

func TestBuildScenarioSequence(t *testing.T) {
	objection := &Action{
		Name:       "objection",
		Frames:     11,
		Asset:      "objection.gif",
		Sound:      &SoundEvent{Kind: SoundObjection, Frames: 22},
		MusicTrack: "pursuit",
		Triggers:   []emotion.Label{emotion.Anger},
	}
	shake := &Action{
		Name:     "shake",
		Frames:   25,
		Shake:    true,
		Sound:    &SoundEvent{Kind: SoundShock, Frames: 25},
		Triggers: []emotion.Label{emotion.Joy},
	}
	b := testBuilder(2, map[emotion.Label]*Action{
		emotion.Anger: objection,
		emotion.Joy:   shake,
	})
	b.EmotionMusic[emotion.Joy] = "allegro"

	cues, err := b.Build([]ClassifiedLine{
		line("Objection!", emotion.Anger),
		line("The witness is lying.", emotion.Normal),
		line("So the parrot did it after all.", emotion.Joy),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(cues[0].Actions) != 1 || cues[0].Actions[0] != objection {
		t.Fatalf("cue 0 must carry the objection, got %+v", cues[0].Actions)
	}
	if cues[0].Music == nil || cues[0].Music.Track != "pursuit" {
		t.Errorf("cue 0 music: got %+v, want pursuit", cues[0].Music)
	}
	if cues[1].Music != nil {
		t.Errorf("cue 1 inside the gate window changed music: %+v", cues[1].Music)
	}
	if len(cues[2].Actions) != 1 || cues[2].Actions[0] != shake {
		t.Fatalf("cue 2 must carry the shake, got %+v", cues[2].Actions)
	}
	if cues[2].Music == nil || cues[2].Music.Track != "allegro" {
		t.Errorf("cue 2 music after the gate: got %+v, want allegro", cues[2].Music)
	}
}

func TestBuildDeterministicVariants(t *testing.T) {
	choices := []int{1, 0, 1}
	i := 0
	b := testBuilder(0, nil)
	b.Choose = func(n int) int {
		c := choices[i%len(choices)] % n
		i++
		return c
	}

	lines := []ClassifiedLine{
		line("One.", emotion.Normal),
		line("Two.", emotion.Normal),
		line("Three.", emotion.Normal),
	}
	cues, err := b.Build(lines)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := []string{"thinking", "normal", "thinking"}
	for idx, cue := range cues {
		if cue.Variant != want[idx] {
			t.Errorf("cue %d variant: got %q, want %q", idx, cue.Variant, want[idx])
		}
	}
}

func TestBuildBeatsFromChunks(t *testing.T) {
	b := testBuilder(2, nil)
	b.Segmenter.WrapLimit = 20

	cues, err := b.Build([]ClassifiedLine{
		line("This first sentence is clearly too long for one chunk.", emotion.Normal),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(cues[0].Beats) < 2 {
		t.Fatalf("expected the long line to split into beats, got %d", len(cues[0].Beats))
	}
	for i, beat := range cues[0].Beats {
		if beat.Text == "" {
			t.Errorf("beat %d has empty text", i)
		}
	}
}

func TestSoundFramesSumsActionsThenBeats(t *testing.T) {
	cue := &Cue{
		SFX: []SoundEvent{{Kind: SoundObjection, Frames: 22}},
		Beats: []*Beat{
			{SFX: []SoundEvent{{Kind: SoundBip, Frames: 30}, {Kind: SoundSilence, Frames: 25}}},
			{SFX: []SoundEvent{{Kind: SoundBip, Frames: 12}, {Kind: SoundSilence, Frames: 25}}},
		},
	}
	if got := cue.SoundFrames(); got != 22+30+25+12+25 {
		t.Errorf("SoundFrames = %d, want %d", got, 22+30+25+12+25)
	}
}
