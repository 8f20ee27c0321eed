package theme

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/dialogue2video/internal/anim"
	"github.com/ivlev/dialogue2video/internal/director"
	"github.com/ivlev/dialogue2video/internal/emotion"
)

// Character is one roster entry: a sprite directory plus the variant sets
// offered per emotion.
type Character struct {
	Name      string                     `yaml:"name"`
	SpriteDir string                     `yaml:"sprite_dir"`
	Location  string                     `yaml:"location"`
	Emotions  map[emotion.Label][]string `yaml:"emotions"`
}

// Overlay is an extra asset stacked on top of a location background.
// FullWidth stretches it to the background width and pins it to the bottom
// edge (the witness bench).
type Overlay struct {
	Asset     string `yaml:"asset"`
	FullWidth bool   `yaml:"full_width,omitempty"`
}

// Location is a stage the camera can sit on.
type Location struct {
	Name     string    `yaml:"name"`
	Asset    string    `yaml:"asset"`
	Overlays []Overlay `yaml:"overlays,omitempty"`
}

// TextBox describes the dialogue box and its typography.
type TextBox struct {
	Asset     string  `yaml:"asset"`
	Font      string  `yaml:"font"`
	NameX     int     `yaml:"name_x"`
	NameY     int     `yaml:"name_y"`
	NameSize  float64 `yaml:"name_size"`
	TextX     int     `yaml:"text_x"`
	TextY     int     `yaml:"text_y"`
	TextSize  float64 `yaml:"text_size"`
	LineWidth int     `yaml:"line_width"`
}

// Arrow is the pulsing continue prompt shown during the hold phase.
type Arrow struct {
	Asset     string `yaml:"asset"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	W         int    `yaml:"w"`
	H         int    `yaml:"h"`
	KeyFrames int    `yaml:"key_frames"`
}

// Sounds names the audio assets of the theme.
type Sounds struct {
	Blip  string `yaml:"blip"`
	Blink string `yaml:"blink"`
	Shock string `yaml:"shock"`
	// ObjectionVoices maps roster keys to voiced objection clips.
	ObjectionVoices  map[string]string `yaml:"objection_voices"`
	ObjectionDefault string            `yaml:"objection_default"`
}

// Theme bundles every static lookup table of one visual style: roster,
// stages, reaction actions, music policy, textbox geometry and the sound
// palette. Themes are validated once at startup and read-only afterwards.
type Theme struct {
	Name         string                   `yaml:"name"`
	FPS          int                      `yaml:"fps"`
	LagFrames    int                      `yaml:"lag_frames"`
	ActionFrames int                      `yaml:"action_frames"`
	WrapLimit    int                      `yaml:"wrap_limit"`
	Characters   map[string]*Character    `yaml:"characters"`
	Locations    map[string]*Location     `yaml:"locations"`
	Actions      []*director.Action       `yaml:"actions"`
	EmotionMusic map[emotion.Label]string `yaml:"emotion_music"`
	TextBox      TextBox                  `yaml:"textbox"`
	Arrow        Arrow                    `yaml:"arrow"`
	Sounds       Sounds                   `yaml:"sounds"`
	// EndCardLocation names the stage used for the closing QR card.
	EndCardLocation string `yaml:"end_card_location"`

	assetsDir      string
	scale          float64
	cache          *anim.Cache
	emotionActions map[emotion.Label]*director.Action
}

// Load reads a theme definition from a YAML file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return &t, nil
}

// Init resolves asset paths, builds the emotion→action index and validates
// the tables. It must be called once before the theme animates anything.
func (t *Theme) Init(assetsRoot string, scale float64, cache *anim.Cache) error {
	t.assetsDir = filepath.Join(assetsRoot, t.Name)
	t.scale = scale
	t.cache = cache

	if t.FPS <= 0 || t.LagFrames <= 0 || t.ActionFrames <= 0 || t.WrapLimit <= 0 {
		return fmt.Errorf("theme %s: fps, lag_frames, action_frames and wrap_limit must be positive", t.Name)
	}

	// At most one action per emotion. Overlaps are a configuration error,
	// resolved by last registration winning.
	t.emotionActions = make(map[emotion.Label]*director.Action)
	for _, action := range t.Actions {
		for _, trigger := range action.Triggers {
			if prev, ok := t.emotionActions[trigger]; ok {
				log.Printf("[!] Theme %s: overlapping action triggers for %s (%s replaces %s)",
					t.Name, trigger, action.Name, prev.Name)
			}
			t.emotionActions[trigger] = action
		}
	}

	for key, c := range t.Characters {
		if _, ok := t.Locations[c.Location]; !ok {
			return fmt.Errorf("theme %s: character %s references unknown location %s", t.Name, key, c.Location)
		}
		for _, label := range emotion.Labels {
			if len(c.Emotions[label]) == 0 {
				return fmt.Errorf("theme %s: character %s has no sprites for emotion %s", t.Name, key, label)
			}
		}
	}

	if t.EmotionMusic[emotion.Normal] == "" {
		return fmt.Errorf("theme %s: no normal music track to seed playback", t.Name)
	}
	if t.EndCardLocation != "" {
		if _, ok := t.Locations[t.EndCardLocation]; !ok {
			return fmt.Errorf("theme %s: unknown end card location %s", t.Name, t.EndCardLocation)
		}
	}

	return nil
}

// EmotionActions exposes the validated emotion→action index.
func (t *Theme) EmotionActions() map[emotion.Label]*director.Action {
	return t.emotionActions
}

// Variants lists the sprite variants a character offers for an emotion.
func (t *Theme) Variants(character string, label emotion.Label) []string {
	c, ok := t.Characters[character]
	if !ok {
		return nil
	}
	return c.Emotions[label]
}

// AssetPath resolves a theme-relative asset name.
func (t *Theme) AssetPath(name string) string {
	return filepath.Join(t.assetsDir, name)
}

// Scale is the uniform factor applied to all declared asset geometry.
func (t *Theme) Scale() float64 { return t.scale }

// MSPerFrame is the duration of one video frame in milliseconds.
func (t *Theme) MSPerFrame() float64 { return 1000.0 / float64(t.FPS) }

// spritePaths resolves the idle and talking sprite files for a character in
// a given variant. The idle sprite is `<name>-<variant>(a).gif` when present,
// otherwise the plain `<name>-<variant>.gif`; the talking sprite substitutes
// `(a)`→`(b)`, but only when the `(a)` form was found; a plain sprite talks
// with the same file it idles with.
func (t *Theme) spritePaths(c *Character, variant string) (idle, talking string) {
	dir := filepath.Join(t.assetsDir, c.SpriteDir)
	base := strings.ToLower(c.Name)

	idle = filepath.Join(dir, fmt.Sprintf("%s-%s(a).gif", base, variant))
	if _, err := os.Stat(idle); err != nil {
		idle = filepath.Join(dir, fmt.Sprintf("%s-%s.gif", base, variant))
	}

	talking = idle
	if strings.Contains(idle, "(a)") {
		talking = strings.Replace(idle, "(a)", "(b)", 1)
	}
	return idle, talking
}
