package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/dialogue2video/internal/anim"
	"github.com/ivlev/dialogue2video/internal/config"
	"github.com/ivlev/dialogue2video/internal/emotion"
	"github.com/ivlev/dialogue2video/internal/engine"
	"github.com/ivlev/dialogue2video/internal/script"
	"github.com/ivlev/dialogue2video/internal/system"
	"github.com/ivlev/dialogue2video/internal/theme"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	for _, d := range []string{"input/scripts", "output", "cache"} {
		os.MkdirAll(d, 0755)
	}

	scriptPtr := flag.String("script", "", "Path to the dialogue transcript (default: latest .txt in input/scripts/)")
	outputPtr := flag.String("output", "", "Path to the final video (default: auto-generated in output/)")
	assetsPtr := flag.String("assets", "assets", "Root directory with theme assets")
	themePtr := flag.String("theme", "classic", "Theme name (built-in: classic)")
	themeFilePtr := flag.String("theme-file", "", "Path to a YAML theme definition overriding the built-in one")
	cachePtr := flag.String("cache", "cache", "Directory for intermediate segments")
	castPtr := flag.String("cast", "", "Speaker mapping as comma-separated Name=character pairs (default: classic courtroom cast)")
	maxTurnsPtr := flag.Int("max-turns", 50, "Maximum speaking turns taken from the transcript (0 - no limit)")
	classifierPtr := flag.String("classifier", "", "Emotion classifier command (default: every line is neutral)")
	thresholdPtr := flag.Float64("threshold", 0.5, "Emotion score below which a line counts as neutral")
	scalePtr := flag.Float64("scale", 2.0, "Scaling factor applied to all theme assets")
	musicGatePtr := flag.Int("music-gate", 4, "Minimum cues between emotion-driven music changes")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Parallel segment encoders")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 - auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	audioCodecPtr := flag.String("audio-codec", "aac", "Audio codec for the final mux")
	sourceURLPtr := flag.String("source-url", "", "Append a QR end card pointing at this URL")
	keepPtr := flag.Bool("keep-intermediates", false, "Keep the silent video and WAV in the cache dir")
	statsPtr := flag.Bool("stats", false, "Print a performance report")
	seedPtr := flag.Int64("seed", time.Now().UnixNano(), "Random seed for sprite variants and shake jitter")

	flag.Parse()

	scriptPath := *scriptPtr
	if scriptPath == "" {
		latest, err := system.FindLatestScript("input/scripts")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a transcript in input/scripts/", err)
		}
		scriptPath = latest
		fmt.Printf("[*] Selected script: %s\n", scriptPath)
	}

	cast, err := parseCast(*castPtr)
	if err != nil {
		log.Fatalf("[-] Bad cast list: %v", err)
	}

	encoderName := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware acceleration detected: %s\n", encoderName)
	}

	quality := *qualityPtr
	if quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			quality = 75
		case "h264_nvenc":
			quality = 28
		default:
			quality = 23
		}
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		baseName := filepath.Base(scriptPath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
	}

	cfg := &config.Config{
		ScriptPath:          scriptPath,
		InputDir:            "input/scripts",
		OutputPath:          finalOutput,
		AssetsDir:           *assetsPtr,
		Theme:               *themePtr,
		ThemeFile:           *themeFilePtr,
		CacheDir:            *cachePtr,
		Cast:                cast,
		MaxTurns:            *maxTurnsPtr,
		ClassifierCmd:       *classifierPtr,
		ScoreThreshold:      *thresholdPtr,
		Scale:               *scalePtr,
		MusicMinSceneFrames: *musicGatePtr,
		Workers:             *workersPtr,
		VideoEncoder:        encoderName,
		Quality:             quality,
		AudioCodec:          *audioCodecPtr,
		SourceURL:           *sourceURLPtr,
		KeepIntermediates:   *keepPtr,
		ShowStats:           *statsPtr,
		Seed:                *seedPtr,
		BuildVersion:        buildVersion,
	}

	cache := anim.NewCache()

	var th *theme.Theme
	if cfg.ThemeFile != "" {
		th, err = theme.Load(cfg.ThemeFile)
		if err != nil {
			log.Fatalf("[-] Theme error: %v", err)
		}
	} else {
		if cfg.Theme != "classic" {
			log.Fatalf("[-] Unknown built-in theme %q (use -theme-file for custom themes)", cfg.Theme)
		}
		th = theme.Classic()
	}
	if err := th.Init(cfg.AssetsDir, cfg.Scale, cache); err != nil {
		log.Fatalf("[-] Theme error: %v", err)
	}

	lines, err := script.LoadScript(scriptPath, castAuthors(cfg.Cast, th), cfg.MaxTurns)
	if err != nil {
		log.Fatalf("[-] Script error: %v", err)
	}

	var classifier emotion.Classifier
	if cfg.ClassifierCmd != "" {
		parts := strings.Fields(cfg.ClassifierCmd)
		classifier = emotion.Command{Path: parts[0], Args: parts[1:]}
	} else {
		fmt.Println("[*] No classifier configured, every line plays neutral")
		classifier = emotion.Fixed{Result: emotion.Result{Label: emotion.Normal, Score: 1.0}}
	}

	project := engine.NewProject(cfg, th, cache, classifier, lines)
	if err := project.Run(context.Background()); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}
}

// parseCast splits "Name=character,Name=character" into a speaker map.
func parseCast(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	cast := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		name, character, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || character == "" {
			return nil, fmt.Errorf("expected Name=character, got %q", pair)
		}
		cast[name] = strings.ToLower(character)
	}
	return cast, nil
}

// castAuthors resolves the speaker map against the theme roster. With no
// explicit cast every roster character plays under its own name.
func castAuthors(cast map[string]string, th *theme.Theme) []script.Author {
	var authors []script.Author
	if len(cast) == 0 {
		for key, c := range th.Characters {
			authors = append(authors, script.Author{Name: c.Name, Character: key})
		}
		return authors
	}
	for name, character := range cast {
		authors = append(authors, script.Author{Name: name, Character: character})
	}
	return authors
}
