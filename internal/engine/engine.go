package engine

import (
	"context"
	"fmt"
	"image"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/dialogue2video/internal/anim"
	"github.com/ivlev/dialogue2video/internal/audio"
	"github.com/ivlev/dialogue2video/internal/config"
	"github.com/ivlev/dialogue2video/internal/director"
	"github.com/ivlev/dialogue2video/internal/emotion"
	"github.com/ivlev/dialogue2video/internal/script"
	"github.com/ivlev/dialogue2video/internal/system"
	"github.com/ivlev/dialogue2video/internal/theme"
	"github.com/ivlev/dialogue2video/internal/video"
)

// Project wires the whole render: classification, cue building, parallel
// segment encoding, audio assembly and the final mux.
type Project struct {
	Config     *config.Config
	Theme      *theme.Theme
	Cache      *anim.Cache
	Classifier emotion.Classifier
	Lines      []script.Line
}

func NewProject(cfg *config.Config, th *theme.Theme, cache *anim.Cache, cls emotion.Classifier, lines []script.Line) *Project {
	return &Project{
		Config:     cfg,
		Theme:      th,
		Cache:      cache,
		Classifier: cls,
		Lines:      lines,
	}
}

// Run renders the full video. Intermediates live in the cache dir and are
// removed at the end unless the config keeps them.
func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()

	if len(p.Lines) == 0 {
		return fmt.Errorf("transcript contains no dialogue")
	}
	if err := os.MkdirAll(p.Config.CacheDir, 0755); err != nil {
		return err
	}

	fmt.Println("--- [PROJECT: DIALOGUE ENGINE] ---")
	fmt.Printf("[*] Script: %s | Turns: %d\n", p.Config.ScriptPath, len(p.Lines))
	fmt.Printf("[*] Theme: %s @ %d FPS | Scale: %.1f | Encoder: %s\n",
		p.Theme.Name, p.Theme.FPS, p.Theme.Scale(), p.Config.VideoEncoder)
	fmt.Println("----------------------------------")

	classifyStart := time.Now()
	cues, err := p.buildCues()
	if err != nil {
		return err
	}
	classifyTime := time.Since(classifyStart)

	// Pre-animated scenes, only set for synthetic cues (the end card).
	scenes := make([][]*anim.Scene, len(cues))
	if p.Config.SourceURL != "" {
		endScenes, endCue, err := p.endCard(len(cues))
		if err != nil {
			return fmt.Errorf("end card: %v", err)
		}
		cues = append(cues, endCue)
		scenes = append(scenes, endScenes)
	}

	renderStart := time.Now()
	segPaths, videoFrames, err := p.renderSegments(ctx, cues, scenes)
	if err != nil {
		return err
	}
	renderTime := time.Since(renderStart)

	audioStart := time.Now()
	bank, err := p.Theme.LoadSounds()
	if err != nil {
		return fmt.Errorf("load sound palette: %v", err)
	}
	assembler := &audio.Assembler{
		MSPerFrame:   p.Theme.MSPerFrame(),
		RenderEffect: bank.Render,
		RenderMusic:  bank.Music,
	}
	master, soundFrames, err := assembler.Assemble(cues)
	if err != nil {
		return fmt.Errorf("assemble audio: %v", err)
	}
	audioTime := time.Since(audioStart)

	// The soundtrack is a pure function of the same event stream the scenes
	// were emitted from, so any drift here is a rendering bug.
	if videoFrames != soundFrames {
		return fmt.Errorf("rendered %d frames but sound events cover %d", videoFrames, soundFrames)
	}

	fmt.Println("[*] Assembling final video...")
	muxStart := time.Now()
	silentPath := filepath.Join(p.Config.CacheDir, "video.mp4")
	wavPath := filepath.Join(p.Config.CacheDir, "audio.wav")

	if err := video.Concatenate(ctx, segPaths, silentPath, p.Config.CacheDir); err != nil {
		return fmt.Errorf("concatenate segments: %v", err)
	}
	if err := audio.WriteWAV(wavPath, master); err != nil {
		return fmt.Errorf("write soundtrack: %v", err)
	}
	if err := video.Mux(ctx, silentPath, wavPath, p.Config.OutputPath, p.Config.AudioCodec); err != nil {
		return err
	}
	muxTime := time.Since(muxStart)

	p.Cache.Clear()
	if !p.Config.KeepIntermediates {
		for _, seg := range segPaths {
			os.Remove(seg)
		}
		os.Remove(silentPath)
		os.Remove(wavPath)
		os.Remove(filepath.Join(p.Config.CacheDir, "inputs.txt"))
	}

	totalTime := time.Since(startTime)
	fmt.Printf("[+++] Done: %s (%d cues, %d frames, %.2fs)\n",
		p.Config.OutputPath, len(cues), videoFrames, totalTime.Seconds())

	if p.Config.ShowStats {
		p.printStats(len(cues), videoFrames, totalTime, classifyTime, renderTime, audioTime, muxTime)
	}
	return nil
}

// buildCues classifies the dialogue and folds it into the ordered cue list.
func (p *Project) buildCues() ([]*director.Cue, error) {
	texts := make([]string, len(p.Lines))
	for i, line := range p.Lines {
		texts[i] = line.Text
	}

	results, err := p.Classifier.Classify(texts)
	if err != nil {
		return nil, fmt.Errorf("classify dialogue: %v", err)
	}

	classified := make([]director.ClassifiedLine, len(p.Lines))
	for i, line := range p.Lines {
		classified[i] = director.ClassifiedLine{
			Text:   line.Text,
			Author: line.Author,
			Label:  results[i].Normalize(p.Config.ScoreThreshold),
			Score:  results[i].Score,
		}
	}

	rng := rand.New(rand.NewSource(p.Config.Seed))
	builder := &director.Builder{
		Segmenter: &script.Segmenter{
			Splitter:  script.PunctSplitter{},
			WrapLimit: p.Theme.WrapLimit,
		},
		EmotionActions:        p.Theme.EmotionActions(),
		EmotionMusic:          p.Theme.EmotionMusic,
		Variants:              p.Theme.Variants,
		Choose:                rng.Intn,
		MusicMinSceneDuration: p.Config.MusicMinSceneFrames,
	}
	return builder.Build(classified)
}

// renderSegments encodes one mp4 per cue in parallel and returns the ordered
// segment paths with the total frame count. The first finished segment pins
// the output resolution; any segment disagreeing with it fails the run.
func (p *Project) renderSegments(ctx context.Context, cues []*director.Cue, preAnimated [][]*anim.Scene) ([]string, int, error) {
	encoder := &video.Encoder{
		Codec:   p.Config.VideoEncoder,
		Quality: p.Config.Quality,
		FPS:     p.Theme.FPS,
	}

	segPaths := make([]string, len(cues))
	frames := make([]int, len(cues))
	widths := make([]int, len(cues))
	heights := make([]int, len(cues))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Workers)

	for i, cue := range cues {
		g.Go(func() error {
			segScenes := preAnimated[i]
			if segScenes == nil {
				var err error
				segScenes, err = p.Theme.AnimateCue(cue)
				if err != nil {
					return fmt.Errorf("cue %d: %v", cue.Index, err)
				}
			}

			segPath := filepath.Join(p.Config.CacheDir, fmt.Sprintf("seg_%04d.mp4", i))
			stream := encoder.NewStream(ctx, segPath)

			// Per-cue seeding keeps shake jitter reproducible regardless of
			// worker scheduling.
			rng := rand.New(rand.NewSource(p.Config.Seed + int64(cue.Index)))
			var renderErr error
			for _, scene := range segScenes {
				renderErr = scene.Render(rng, func(frame *image.RGBA) error {
					err := stream.WriteFrame(frame)
					system.PutImage(frame)
					return err
				})
				if renderErr != nil {
					break
				}
			}
			// Close even when a scene failed so the encoder child is reaped.
			if err := stream.Close(); renderErr == nil {
				renderErr = err
			}
			if renderErr != nil {
				return fmt.Errorf("cue %d: %v", cue.Index, renderErr)
			}

			segPaths[i] = segPath
			frames[i] = stream.FrameCount()
			widths[i], heights[i] = stream.Size()
			fmt.Printf("[>] Ready: %d/%d\n", i+1, len(cues))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	total := 0
	for i := range cues {
		if widths[i] != widths[0] || heights[i] != heights[0] {
			return nil, 0, fmt.Errorf("segment %d is %dx%d, expected %dx%d",
				i, widths[i], heights[i], widths[0], heights[0])
		}
		total += frames[i]
	}
	return segPaths, total, nil
}

func (p *Project) printStats(cueCount, frameCount int, total, classify, render, audioT, mux time.Duration) {
	stats := system.Snapshot()
	fps := float64(frameCount) / total.Seconds()
	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Classification: %.2fs\n"+
			"Rendering: %.2fs\n"+
			"Audio: %.2fs\n"+
			"Mux: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"RSS: %.1f MB | CPU: %.1f%%\n"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), classify.Seconds(), render.Seconds(),
		audioT.Seconds(), mux.Seconds(), fps, stats.RSSMB, stats.CPUPercent,
	)

	logEntry := fmt.Sprintf("[%s] Build: %s | Script: %s | Cues: %d | Frames: %d | Total: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.ScriptPath),
		cueCount,
		frameCount,
		total.Seconds(),
		fps,
	)
	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		log.Printf("[!] Could not write benchmark.log: %v", err)
	}
}
