package gallery

import (
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/logger"
)

// Options configures a Cycler.
type Options struct {
	Dir            string
	Patterns       []string // nil means DefaultPatterns
	MaxTextureSize int      // 0 keeps decoded size
}

// Cycler shows the images of one directory on a surface, one at a time.
//
// Images are enumerated and decoded once, synchronously, by NewCycler and
// kept for the cycler's lifetime.
type Cycler struct {
	material Material
	textures []*Texture
	cursor   int
	log      *zap.Logger
	err      error
}

// NewCycler validates the surface, loads every decodable image in
// opts.Dir and displays the first one. A nil surface or one without a
// material is logged and leaves the cycler inert.
func NewCycler(surface Surface, opts Options, log *zap.Logger) *Cycler {
	c := &Cycler{
		cursor: -1,
		log:    logger.OrNop(log),
	}

	if surface == nil {
		c.err = &ConfigurationError{Component: "cycler", Err: ErrNoSurface}
		c.log.Error("display surface is not assigned", zap.Error(c.err))
		return c
	}
	c.material = surface.Material()
	if c.material == nil {
		c.err = &ConfigurationError{Component: "cycler", Err: ErrNoMaterial}
		c.log.Error("display surface has no paintable material", zap.Error(c.err))
		return c
	}

	c.load(opts)
	c.ShowNextImage()
	return c
}

func (c *Cycler) load(opts Options) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	paths, err := ListImages(opts.Dir, patterns)
	if err != nil {
		c.log.Warn("image directory unavailable", zap.String("dir", opts.Dir), zap.Error(err))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			c.log.Debug("skipping unreadable image", zap.String("path", path), zap.Error(err))
			continue
		}
		tex, err := DecodeTexture(path, data, opts.MaxTextureSize)
		if err != nil {
			c.log.Debug("skipping undecodable image", zap.String("path", path), zap.Error(err))
			continue
		}
		c.textures = append(c.textures, tex)
	}

	c.log.Info("loaded images",
		zap.Int("count", len(c.textures)),
		zap.Int("candidates", len(paths)),
		zap.String("dir", opts.Dir),
	)
}

// ShowNextImage advances to the next image, wrapping after the last.
func (c *Cycler) ShowNextImage() {
	c.step(1)
}

// ShowPreviousImage steps back one image, wrapping before the first.
func (c *Cycler) ShowPreviousImage() {
	c.step(-1)
}

func (c *Cycler) step(delta int) {
	if c.err != nil {
		// already reported at construction
		return
	}
	n := len(c.textures)
	if n == 0 {
		c.log.Warn("no images available to display")
		return
	}
	if c.cursor < 0 && delta < 0 {
		c.cursor = 0
	}
	c.cursor = ((c.cursor+delta)%n + n) % n
	tex := c.textures[c.cursor]
	c.material.SetMainTexture(tex)
	c.log.Debug("showing image", zap.Int("index", c.cursor), zap.String("path", tex.Path))
}

// Current returns the texture last assigned to the surface, or nil.
func (c *Cycler) Current() *Texture {
	if c.cursor < 0 || c.cursor >= len(c.textures) {
		return nil
	}
	return c.textures[c.cursor]
}

// Index returns the cursor, -1 before the first image is shown.
func (c *Cycler) Index() int { return c.cursor }

// Count returns the number of loaded images.
func (c *Cycler) Count() int { return len(c.textures) }

// Paths returns the source paths of the loaded images in display order.
func (c *Cycler) Paths() []string {
	paths := make([]string, len(c.textures))
	for i, t := range c.textures {
		paths[i] = t.Path
	}
	return paths
}

// Err returns the configuration error that disabled the cycler, if any.
func (c *Cycler) Err() error { return c.err }
