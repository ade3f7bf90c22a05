// Package capture saves rendered frames as WebP files.
package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/holoframe/internal/gallery"
)

// Capture writes timestamped captures into one directory.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a capture writing to dir as <prefix>_<timestamp>.webp.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// FromPixels saves a bottom-up RGBA framebuffer read, flipping it so row 0
// is the top. Returns the written path.
func (c *Capture) FromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return c.Save(img)
}

// Save encodes img and writes it. Returns the written path.
func (c *Capture) Save(img *image.RGBA) (string, error) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("creating capture dir: %w", err)
	}

	path := c.filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := gallery.EncodeWebP(file, &gallery.Texture{Path: path, Image: img}); err != nil {
		return "", fmt.Errorf("encoding webp: %w", err)
	}
	return path, nil
}

func (c *Capture) filename() string {
	stamp := c.now().Format("2006-01-02_15-04-05.000")
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.webp", c.prefix, stamp))
}
