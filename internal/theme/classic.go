package theme

import (
	"github.com/ivlev/dialogue2video/internal/director"
	"github.com/ivlev/dialogue2video/internal/emotion"
)

// Roster keys of the classic courtroom theme.
const (
	Phoenix   = "phoenix"
	Edgeworth = "edgeworth"
	Godot     = "godot"
	Franziska = "franziska"
	Judge     = "judge"
	Larry     = "larry"
	Maya      = "maya"
	Karma     = "karma"
	Payne     = "payne"
	Maggey    = "maggey"
	Pearl     = "pearl"
	Lotta     = "lotta"
	Gumshoe   = "gumshoe"
	Grossberg = "grossberg"
)

// Stage keys of the classic courtroom theme.
const (
	CourtroomLeft  = "courtroom_left"
	WitnessStand   = "witness_stand"
	CourtroomRight = "courtroom_right"
	CoCouncil      = "co_council"
	JudgeStand     = "judge_stand"
	CourtHouse     = "court_house"
)

// Classic returns the built-in courtroom theme with the full roster, the
// three reaction actions and the emotion music policy.
func Classic() *Theme {
	const defaultAnimationLength = 11
	const lagFrames = 25

	return &Theme{
		Name:         "classic",
		FPS:          18,
		LagFrames:    lagFrames,
		ActionFrames: defaultAnimationLength,
		// Three textbox lines of thirty characters, minus room for a
		// trailing "..." marker.
		WrapLimit:       3*30 - 3,
		EndCardLocation: CourtHouse,

		Actions: []*director.Action{
			{
				Name:   "objection",
				Frames: defaultAnimationLength,
				Asset:  "objection.gif",
				Sound: &director.SoundEvent{
					Kind:   director.SoundObjection,
					Frames: 2 * defaultAnimationLength,
				},
				MusicTrack: "08 - Pressing Pursuit _ Cornered",
				Triggers:   []emotion.Label{emotion.Anger},
			},
			{
				Name:   "holdit",
				Frames: defaultAnimationLength,
				Asset:  "holdit.gif",
				Sound: &director.SoundEvent{
					Kind:   director.SoundObjection,
					Frames: 2 * defaultAnimationLength,
				},
				MusicTrack: "11 - Pressing Pursuit _ Cornered , Variation",
				Triggers:   []emotion.Label{emotion.Surprise},
			},
			{
				Name:   "shake",
				Frames: lagFrames,
				Shake:  true,
				Sound: &director.SoundEvent{
					Kind:   director.SoundShock,
					Frames: lagFrames,
				},
				Triggers: []emotion.Label{emotion.Joy},
			},
		},

		EmotionMusic: map[emotion.Label]string{
			emotion.Normal:   "03 - Turnabout Courtroom - Trial",
			emotion.Sadness:  "10 - Suspense",
			emotion.Joy:      "03 - Turnabout Courtroom - Trial",
			emotion.Love:     "05 - Logic and Trick",
			emotion.Anger:    "11 - Pressing Pursuit _ Cornered , Variation",
			emotion.Fear:     "10 - Suspense",
			emotion.Surprise: "05 - Logic and Trick",
		},

		Locations: map[string]*Location{
			CourtroomLeft: {
				Name:     "COURTROOM_LEFT",
				Asset:    "defenseempty.png",
				Overlays: []Overlay{{Asset: "logo-left.png"}},
			},
			WitnessStand: {
				Name:     "WITNESS_STAND",
				Asset:    "witnessempty.png",
				Overlays: []Overlay{{Asset: "witness_stand.png", FullWidth: true}},
			},
			CourtroomRight: {
				Name:     "COURTROOM_RIGHT",
				Asset:    "prosecutorempty.png",
				Overlays: []Overlay{{Asset: "logo-right.png"}},
			},
			CoCouncil:  {Name: "CO_COUNCIL", Asset: "helperstand.png"},
			JudgeStand: {Name: "JUDGE_STAND", Asset: "judgestand.png"},
			CourtHouse: {Name: "COURT_HOUSE", Asset: "courtroomoverview.png"},
		},

		TextBox: TextBox{
			Asset:     "textbox4.png",
			Font:      "igiari/Igiari.ttf",
			NameX:     4,
			NameY:     115,
			NameSize:  10,
			TextX:     5,
			TextY:     130,
			TextSize:  15,
			LineWidth: 32,
		},

		Arrow: Arrow{
			Asset:     "arrow.png",
			X:         235,
			Y:         170,
			W:         15,
			H:         15,
			KeyFrames: 5,
		},

		Sounds: Sounds{
			Blip:  "sfx general/sfx-blipmale.wav",
			Blink: "sfx general/sfx-blink.wav",
			Shock: "sfx general/sfx-fwashing.wav",
			ObjectionVoices: map[string]string{
				Phoenix:   "Phoenix - objection.mp3",
				Edgeworth: "Edgeworth - (English) objection.mp3",
			},
			ObjectionDefault: "Payne - Objection.mp3",
		},

		Characters: map[string]*Character{
			Phoenix: {
				Name:      "Phoenix",
				SpriteDir: "Sprites-phoenix",
				Location:  CourtroomLeft,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"emo"},
					emotion.Joy:      {"confident", "pointing"},
					emotion.Love:     {"confident", "pointing"},
					emotion.Anger:    {"handsondesk"},
					emotion.Fear:     {"emo", "sweating", "sheepish"},
					emotion.Surprise: {"handsondesk"},
					emotion.Normal:   {"document", "normal", "thinking", "coffee"},
				},
			},
			Edgeworth: {
				Name:      "Edgeworth",
				SpriteDir: "Sprites-edgeworth",
				Location:  CourtroomRight,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"emo"},
					emotion.Joy:      {"confident", "pointing"},
					emotion.Love:     {"smirk"},
					emotion.Anger:    {"handondesk"},
					emotion.Fear:     {"emo"},
					emotion.Surprise: {"handondesk"},
					emotion.Normal:   {"document", "normal", "thinking"},
				},
			},
			Godot: {
				Name:      "Godot",
				SpriteDir: "Sprites-Godot",
				Location:  CourtroomRight,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"steams"},
					emotion.Joy:      {"normal"},
					emotion.Love:     {"normal"},
					emotion.Anger:    {"pointing"},
					emotion.Fear:     {"steams"},
					emotion.Surprise: {"steams"},
					emotion.Normal:   {"normal"},
				},
			},
			Franziska: {
				Name:      "Franziska",
				SpriteDir: "Sprites-franziska",
				Location:  CourtroomRight,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"sweating"},
					emotion.Joy:      {"ha"},
					emotion.Love:     {"ha"},
					emotion.Anger:    {"mad"},
					emotion.Fear:     {"sweating"},
					emotion.Surprise: {"withwhip"},
					emotion.Normal:   {"ready"},
				},
			},
			Judge: {
				Name:      "Judge",
				SpriteDir: "Sprites-judge",
				Location:  JudgeStand,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"headshake"},
					emotion.Joy:      {"normal"},
					emotion.Love:     {"nodding"},
					emotion.Anger:    {"warning"},
					emotion.Fear:     {"warning"},
					emotion.Surprise: {"warning"},
					emotion.Normal:   {"normal"},
				},
			},
			Larry: {
				Name:      "Larry",
				SpriteDir: "Sprites-larry",
				Location:  WitnessStand,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"extra"},
					emotion.Joy:      {"hello"},
					emotion.Love:     {"hello"},
					emotion.Anger:    {"mad"},
					emotion.Fear:     {"nervous"},
					emotion.Surprise: {"nervous"},
					emotion.Normal:   {"normal"},
				},
			},
			Maya: {
				Name:      "Maya",
				SpriteDir: "Sprites-maya",
				Location:  CoCouncil,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"bench-strict", "bench-ugh"},
					emotion.Joy:      {"bench-hum"},
					emotion.Love:     {"bench"},
					emotion.Anger:    {"bench-strict"},
					emotion.Fear:     {"bench-ugh"},
					emotion.Surprise: {"bench-hum"},
					emotion.Normal:   {"bench-profile"},
				},
			},
			Karma: {
				Name:      "Karma",
				SpriteDir: "Sprites-karma",
				Location:  CourtroomRight,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"badmood"},
					emotion.Joy:      {"normal"},
					emotion.Love:     {"smirk", "snap"},
					emotion.Anger:    {"break"},
					emotion.Fear:     {"sweat"},
					emotion.Surprise: {"break"},
					emotion.Normal:   {"normal"},
				},
			},
			Payne: {
				Name:      "Payne",
				SpriteDir: "Sprites-payne",
				Location:  CourtroomRight,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"sweating"},
					emotion.Joy:      {"normal"},
					emotion.Love:     {"confident"},
					emotion.Anger:    {"sweating"},
					emotion.Fear:     {"sweating"},
					emotion.Surprise: {"sweating"},
					emotion.Normal:   {"normal"},
				},
			},
			Maggey: {
				Name:      "Maggey",
				SpriteDir: "Sprites-Maggey",
				Location:  WitnessStand,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"sad"},
					emotion.Joy:      {"pumped"},
					emotion.Love:     {"shining"},
					emotion.Anger:    {"sad"},
					emotion.Fear:     {"sad"},
					emotion.Surprise: {"sad"},
					emotion.Normal:   {"normal"},
				},
			},
			Pearl: {
				Name:      "Pearl",
				SpriteDir: "Sprites-Pearl",
				Location:  WitnessStand,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"cries"},
					emotion.Joy:      {"sparkle"},
					emotion.Love:     {"sparkle"},
					emotion.Anger:    {"fight", "disappointed"},
					emotion.Fear:     {"cries"},
					emotion.Surprise: {"surprised"},
					emotion.Normal:   {"normal", "thinking", "shy"},
				},
			},
			Lotta: {
				Name:      "Lotta",
				SpriteDir: "Sprites-lotta",
				Location:  WitnessStand,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"badmood"},
					emotion.Joy:      {"confident", "smiling"},
					emotion.Love:     {"confident", "smiling"},
					emotion.Anger:    {"mad", "disappointed"},
					emotion.Fear:     {"badmood"},
					emotion.Surprise: {"mad"},
					emotion.Normal:   {"normal", "shy", "thinking"},
				},
			},
			Gumshoe: {
				Name:      "Gumshoe",
				SpriteDir: "Sprites-gumshoe",
				Location:  WitnessStand,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"disheartened"},
					emotion.Joy:      {"side"},
					emotion.Love:     {"laughing", "confident", "pumped"},
					emotion.Anger:    {"mad"},
					emotion.Fear:     {"disheartened"},
					emotion.Surprise: {"disheartened"},
					emotion.Normal:   {"normal", "side", "thinking"},
				},
			},
			Grossberg: {
				Name:      "Grossberg",
				SpriteDir: "Sprites-grossberg",
				Location:  WitnessStand,
				Emotions: map[emotion.Label][]string{
					emotion.Sadness:  {"sweating"},
					emotion.Joy:      {"normal"},
					emotion.Love:     {"normal"},
					emotion.Anger:    {"sweating"},
					emotion.Fear:     {"sweating"},
					emotion.Surprise: {"sweating"},
					emotion.Normal:   {"normal"},
				},
			},
		},
	}
}
