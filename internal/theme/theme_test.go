package theme

import (
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/ivlev/dialogue2video/internal/anim"
	"github.com/ivlev/dialogue2video/internal/director"
	"github.com/ivlev/dialogue2video/internal/emotion"
)

func stubCache() *anim.Cache {
	cache := anim.NewCache()
	cache.Load = func(path string) ([]image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, 32, 24))
		for i := range img.Pix {
			img.Pix[i] = 255
		}
		return []image.Image{img}, nil
	}
	cache.LoadFace = func(path string, size float64) (font.Face, error) {
		return basicfont.Face7x13, nil
	}
	return cache
}

func classicForTest(t *testing.T) *Theme {
	t.Helper()
	th := Classic()
	if err := th.Init(t.TempDir(), 1.0, stubCache()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return th
}

func TestClassicThemeValidates(t *testing.T) {
	th := classicForTest(t)

	actions := th.EmotionActions()
	for _, label := range []emotion.Label{emotion.Anger, emotion.Surprise, emotion.Joy} {
		if actions[label] == nil {
			t.Errorf("no action registered for %s", label)
		}
	}
	if actions[emotion.Normal] != nil {
		t.Error("normal must not trigger an action")
	}

	for key := range th.Characters {
		for _, label := range emotion.Labels {
			if len(th.Variants(key, label)) == 0 {
				t.Errorf("character %s has no variants for %s", key, label)
			}
		}
	}
}

func TestInitRejectsIncompleteRoster(t *testing.T) {
	th := Classic()
	delete(th.Characters[Phoenix].Emotions, emotion.Fear)

	if err := th.Init(t.TempDir(), 1.0, stubCache()); err == nil {
		t.Fatal("expected an error for a character without full emotion coverage")
	}
}

func TestInitRejectsUnknownLocation(t *testing.T) {
	th := Classic()
	th.Characters[Judge].Location = "broom_closet"

	if err := th.Init(t.TempDir(), 1.0, stubCache()); err == nil {
		t.Fatal("expected an error for an unknown location reference")
	}
}

func TestSpritePathResolution(t *testing.T) {
	assetsRoot := t.TempDir()
	spriteDir := filepath.Join(assetsRoot, "classic", "Sprites-phoenix")
	if err := os.MkdirAll(spriteDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"phoenix-normal(a).gif", "phoenix-normal(b).gif", "phoenix-emo.gif"} {
		if err := os.WriteFile(filepath.Join(spriteDir, name), []byte("gif"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	th := Classic()
	if err := th.Init(assetsRoot, 1.0, stubCache()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	phoenix := th.Characters[Phoenix]

	idle, talking := th.spritePaths(phoenix, "normal")
	if filepath.Base(idle) != "phoenix-normal(a).gif" {
		t.Errorf("idle = %s, want the (a) sprite", idle)
	}
	if filepath.Base(talking) != "phoenix-normal(b).gif" {
		t.Errorf("talking = %s, want the (b) substitution", talking)
	}

	// Without an (a) file the plain sprite serves both poses.
	idle, talking = th.spritePaths(phoenix, "emo")
	if filepath.Base(idle) != "phoenix-emo.gif" || talking != idle {
		t.Errorf("plain fallback: idle=%s talking=%s", idle, talking)
	}
}

func animatedCue(t *testing.T, th *Theme, cue *director.Cue) []*anim.Scene {
	t.Helper()
	scenes, err := th.AnimateCue(cue)
	if err != nil {
		t.Fatalf("AnimateCue failed: %v", err)
	}
	return scenes
}

func TestAnimateBeatFramesMatchSounds(t *testing.T) {
	th := classicForTest(t)
	cue := &director.Cue{
		Index:     0,
		Character: Phoenix,
		Name:      "Phoenix",
		Emotion:   emotion.Normal,
		Variant:   "normal",
		Beats:     []*director.Beat{{Text: "Hold it right there."}},
	}

	scenes := animatedCue(t, th, cue)
	if len(scenes) != 2 {
		t.Fatalf("expected reveal + hold scenes, got %d", len(scenes))
	}

	sceneFrames := 0
	for _, s := range scenes {
		sceneFrames += s.FrameCount()
	}
	if sceneFrames != cue.SoundFrames() {
		t.Errorf("scene frames %d != sound frames %d", sceneFrames, cue.SoundFrames())
	}

	// Reveal runs one frame per rune after the first; the display text
	// carries a padding space per wrapped line.
	wantReveal := len([]rune("Hold it right there. ")) - 1
	if scenes[0].FrameCount() != wantReveal {
		t.Errorf("reveal length = %d, want %d", scenes[0].FrameCount(), wantReveal)
	}
	if scenes[1].FrameCount() != th.LagFrames {
		t.Errorf("hold length = %d, want %d", scenes[1].FrameCount(), th.LagFrames)
	}

	sfx := cue.Beats[0].SFX
	if len(sfx) != 2 {
		t.Fatalf("expected bip + silence events, got %+v", sfx)
	}
	if sfx[0].Kind != director.SoundBip || sfx[0].Frames != wantReveal {
		t.Errorf("bip event: %+v", sfx[0])
	}
	if sfx[1].Kind != director.SoundSilence || sfx[1].Frames != th.LagFrames {
		t.Errorf("silence event: %+v", sfx[1])
	}
}

func TestAnimateCueSharedOverlayConcurrent(t *testing.T) {
	th := classicForTest(t)

	// Witness-stand cues all pull the same cached full-width overlay, so
	// staging one cue while another renders must not touch shared state.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cue := &director.Cue{
				Index:     idx,
				Character: Larry,
				Name:      "Larry",
				Emotion:   emotion.Normal,
				Variant:   "normal",
				Beats:     []*director.Beat{{Text: "It wasn't me, honest."}},
			}
			scenes, err := th.AnimateCue(cue)
			if err != nil {
				t.Errorf("cue %d: %v", idx, err)
				return
			}
			rng := rand.New(rand.NewSource(int64(idx)))
			for _, s := range scenes {
				if err := s.Render(rng, func(*image.RGBA) error { return nil }); err != nil {
					t.Errorf("cue %d render: %v", idx, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	loc := th.Locations[WitnessStand]
	overlay, err := th.cache.GetSprite(th.AssetPath(loc.Overlays[0].Asset), anim.ImageParams{
		W:           32,
		BottomAlign: true,
		Scale:       th.scale,
	})
	if err != nil {
		t.Fatalf("overlay lookup: %v", err)
	}
	if overlay.Y != 0 {
		t.Errorf("staging wrote a position onto the shared overlay, Y = %d", overlay.Y)
	}
}

func TestAnimateActionEmitsOverlayAndSound(t *testing.T) {
	th := classicForTest(t)
	objection := th.EmotionActions()[emotion.Anger]

	cue := &director.Cue{
		Index:     0,
		Character: Edgeworth,
		Name:      "Edgeworth",
		Emotion:   emotion.Anger,
		Variant:   "handondesk",
		Actions:   []*director.Action{objection},
		Beats:     []*director.Beat{{Text: "Objection!"}},
	}

	scenes := animatedCue(t, th, cue)
	// Bubble pass + bare pass for the action, then reveal + hold.
	if len(scenes) != 4 {
		t.Fatalf("expected 4 scenes, got %d", len(scenes))
	}
	if scenes[0].FrameCount() != objection.Frames || scenes[1].FrameCount() != objection.Frames {
		t.Errorf("action scenes: %d/%d frames, want %d each",
			scenes[0].FrameCount(), scenes[1].FrameCount(), objection.Frames)
	}

	if len(cue.SFX) != 1 {
		t.Fatalf("expected one action sound event, got %+v", cue.SFX)
	}
	ev := cue.SFX[0]
	if ev.Kind != director.SoundObjection || ev.Frames != 2*objection.Frames {
		t.Errorf("action event: %+v", ev)
	}
	if ev.Speaker != Edgeworth {
		t.Errorf("event speaker = %q, want %q", ev.Speaker, Edgeworth)
	}

	sceneFrames := 0
	for _, s := range scenes {
		sceneFrames += s.FrameCount()
	}
	if sceneFrames != cue.SoundFrames() {
		t.Errorf("scene frames %d != sound frames %d", sceneFrames, cue.SoundFrames())
	}
}

func TestSoundBankRejectsUnknownKind(t *testing.T) {
	th := classicForTest(t)
	bank := &SoundBank{theme: th}

	if _, err := bank.Render(director.SoundEvent{Kind: "kaboom", Frames: 10}); err == nil {
		t.Fatal("expected an error for an unknown sound kind")
	}
}

func TestSoundBankSilence(t *testing.T) {
	th := classicForTest(t)
	bank := &SoundBank{theme: th}

	seg, err := bank.Render(director.SoundEvent{Kind: director.SoundSilence, Frames: 18})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// 18 frames at 18 fps is exactly one second.
	if got := seg.DurationMS(); got != 1000 {
		t.Errorf("silence duration = %dms, want 1000", got)
	}
}
