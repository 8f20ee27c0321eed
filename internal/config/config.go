package config

// Config carries every runtime setting of a render. Populated from flags in
// the cmd main and passed down read-only.
type Config struct {
	// ScriptPath is the dialogue transcript. Empty means "latest .txt under
	// InputDir".
	ScriptPath string
	InputDir   string
	OutputPath string

	AssetsDir string
	Theme     string
	// ThemeFile optionally loads a YAML theme definition instead of the
	// built-in one.
	ThemeFile string
	CacheDir  string

	// Cast maps transcript speaker names to theme roster keys, as
	// "Name=character" pairs.
	Cast map[string]string
	// MaxTurns caps how many speaking turns are taken from the transcript.
	MaxTurns int

	// ClassifierCmd is the external emotion model invocation. Empty runs the
	// neutral fixed classifier.
	ClassifierCmd string
	// ScoreThreshold demotes low-confidence labels to normal.
	ScoreThreshold float64

	Scale float64
	// MusicMinSceneFrames gates how soon a sustained emotion may switch the
	// background track.
	MusicMinSceneFrames int

	Workers      int
	VideoEncoder string
	Quality      int
	AudioCodec   string

	// SourceURL, when set, appends a QR end card pointing at it.
	SourceURL string

	// KeepIntermediates leaves the silent video and WAV in the cache dir.
	KeepIntermediates bool
	ShowStats         bool
	Seed              int64

	BuildVersion string
}
