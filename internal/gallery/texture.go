// Package gallery loads JPEG files from a directory into textures and cycles
// through them on a display surface.
package gallery

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Texture is a decoded image ready for display.
type Texture struct {
	Path  string
	Image *image.RGBA
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.Image.Bounds().Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.Image.Bounds().Dy() }

// Aspect returns width/height, or 1 for an empty image.
func (t *Texture) Aspect() float32 {
	if t.Height() == 0 {
		return 1
	}
	return float32(t.Width()) / float32(t.Height())
}

// QuadSize returns the size of a quad showing t inside a width x height
// box. A zero side follows the image aspect; with both set the image is
// fitted inside the box.
func (t *Texture) QuadSize(width, height float32) (float32, float32) {
	aspect := float32(1)
	if t != nil && t.Image != nil {
		aspect = t.Aspect()
	}
	switch {
	case width <= 0 && height <= 0:
		return aspect, 1
	case width <= 0:
		return height * aspect, height
	case height <= 0:
		return width, width / aspect
	case width/height > aspect:
		return height * aspect, height
	default:
		return width, width / aspect
	}
}

// DecodeTexture decodes image bytes into a texture. The format is sniffed
// from the content, not the file name. When maxSize is positive, images
// larger than maxSize on either side are scaled down keeping aspect ratio.
func DecodeTexture(path string, data []byte, maxSize int) (*Texture, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode %s: empty %s image", path, format)
	}

	rgba := ToRGBA(img)
	if maxSize > 0 && (b.Dx() > maxSize || b.Dy() > maxSize) {
		w, h := fitWithin(b.Dx(), b.Dy(), maxSize)
		rgba = Resize(rgba, w, h)
	}
	return &Texture{Path: path, Image: rgba}, nil
}

// ToRGBA converts any image to *image.RGBA with bounds starting at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Resize scales src to exactly w x h.
func Resize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// fitWithin returns the largest size with the same aspect ratio as w x h
// whose sides are at most limit.
func fitWithin(w, h, limit int) (int, int) {
	if w >= h {
		nh := h * limit / w
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := w * limit / h
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}

// EncodeWebP writes the texture as a lossless WebP image.
func EncodeWebP(w io.Writer, tex *Texture) error {
	if err := nativewebp.Encode(w, tex.Image, nil); err != nil {
		return fmt.Errorf("encode webp %s: %w", tex.Path, err)
	}
	return nil
}
