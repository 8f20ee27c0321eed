package anim

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Loader decodes an asset file into its source frames (one for stills, one
// per frame for animated GIFs). Tests swap it to count decodes.
type Loader func(path string) ([]image.Image, error)

// FaceLoader builds a font face from a TTF path at an effective pixel size.
// Tests swap it to avoid shipping font files.
type FaceLoader func(path string, size float64) (font.Face, error)

// Cache memoizes decoded assets, built sprites and parsed fonts across the
// many cues of a render. It is safe for concurrent use; a race that decodes
// the same asset twice is harmless, but callers always observe fully decoded
// entries.
type Cache struct {
	Load Loader
	// LoadFace overrides the default TTF rasterization when set.
	LoadFace FaceLoader

	mu      sync.RWMutex
	images  map[string][]image.Image
	sprites map[string]*Image
	fonts   map[string]*opentype.Font
}

func NewCache() *Cache {
	return &Cache{
		Load:    DecodeFile,
		images:  make(map[string][]image.Image),
		sprites: make(map[string]*Image),
		fonts:   make(map[string]*opentype.Font),
	}
}

// GetImage returns the decoded source frames for path, decoding at most once
// per key between Clear calls. A missing or undecodable file is fatal to the
// render and reported as an error.
func (c *Cache) GetImage(path string) ([]image.Image, error) {
	c.mu.RLock()
	frames, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return frames, nil
	}

	frames, err := c.Load(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	c.mu.Lock()
	c.images[path] = frames
	c.mu.Unlock()
	return frames, nil
}

// GetSprite returns the sprite for (path, params), memoized so repeated cues
// over the same asset share one expanded frame sequence.
func (c *Cache) GetSprite(path string, p ImageParams) (*Image, error) {
	key := p.key(path)
	c.mu.RLock()
	sprite, ok := c.sprites[key]
	c.mu.RUnlock()
	if ok {
		return sprite, nil
	}

	frames, err := c.GetImage(path)
	if err != nil {
		return nil, err
	}
	sprite = NewImage(path, frames, p)

	c.mu.Lock()
	c.sprites[key] = sprite
	c.mu.Unlock()
	return sprite, nil
}

// GetFace rasterizes a TTF at the given size and scale. The parsed font is
// memoized per path; the face itself is built per call because faces carry
// per-use glyph state and must not be shared between render workers.
func (c *Cache) GetFace(path string, size float64, scale float64) (font.Face, error) {
	if c.LoadFace != nil {
		return c.LoadFace(path, scale*size)
	}

	c.mu.RLock()
	fnt, ok := c.fonts[path]
	c.mu.RUnlock()

	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		fnt, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", path, err)
		}
		c.mu.Lock()
		c.fonts[path] = fnt
		c.mu.Unlock()
	}

	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    scale * size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Clear releases every decoded bitmap, sprite and font. Called once per full
// render to bound memory, since a run may touch hundreds of distinct assets.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = make(map[string][]image.Image)
	c.sprites = make(map[string]*Image)
	c.fonts = make(map[string]*opentype.Font)
}

// DecodeFile is the default Loader. Animated GIFs are coalesced so every
// returned frame is a full bitmap even when the file stores partial updates.
func DecodeFile(path string) ([]image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".gif") {
		g, err := gif.DecodeAll(f)
		if err != nil {
			return nil, err
		}
		return coalesceGIF(g), nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return []image.Image{img}, nil
}

func coalesceGIF(g *gif.GIF) []image.Image {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() && len(g.Image) > 0 {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]image.Image, 0, len(g.Image))
	for _, src := range g.Image {
		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)
		flat := image.NewRGBA(bounds)
		draw.Draw(flat, bounds, canvas, bounds.Min, draw.Src)
		frames = append(frames, flat)
	}
	return frames
}
