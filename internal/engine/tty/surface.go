// Package tty displays the frame in a terminal using tcell.
//
// Each cell shows two image pixels stacked vertically with the upper half
// block, so a cell row is two pixel rows. The frame is projected with the
// same camera as the GPU renderer; rotation shows up as foreshortening of
// an axis-aligned rectangle.
package tty

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/pose"
	"github.com/Faultbox/holoframe/pkg/math"
)

const (
	upperHalf = '▀'
	nearPlane = 0.05
	farPlane  = 100.0
)

// Config holds terminal surface settings.
type Config struct {
	FOV        float32 // vertical, degrees
	Background colorful.Color
	FrameSize  [2]float32
}

// material caches the visible part of the assigned texture scaled to its
// last drawn size.
type material struct {
	tex    *gallery.Texture
	src    image.Rectangle
	scaled *image.RGBA
}

func (m *material) SetMainTexture(tex *gallery.Texture) {
	m.tex = tex
	m.scaled = nil
}

func (m *material) MainTexture() *gallery.Texture { return m.tex }

// sized returns the src region of the texture scaled to w x h.
func (m *material) sized(src image.Rectangle, w, h int) *image.RGBA {
	if m.tex == nil || w <= 0 || h <= 0 || src.Empty() {
		return nil
	}
	if m.scaled == nil || m.src != src || m.scaled.Bounds().Dx() != w || m.scaled.Bounds().Dy() != h {
		m.scaled = gallery.Resize(m.tex.Image.SubImage(src), w, h)
		m.src = src
	}
	return m.scaled
}

// visibleSource maps the visible part of rect back to texture pixels.
func visibleSource(bounds, rect, visible image.Rectangle) image.Rectangle {
	if rect.Empty() || visible.Empty() {
		return image.Rectangle{}
	}
	scale := func(v, lo, span, size int) int {
		return int(int64(v-lo) * int64(size) / int64(span))
	}
	src := image.Rectangle{
		Min: image.Point{
			X: bounds.Min.X + scale(visible.Min.X, rect.Min.X, rect.Dx(), bounds.Dx()),
			Y: bounds.Min.Y + scale(visible.Min.Y, rect.Min.Y, rect.Dy(), bounds.Dy()),
		},
		Max: image.Point{
			X: bounds.Min.X + scale(visible.Max.X, rect.Min.X, rect.Dx(), bounds.Dx()),
			Y: bounds.Min.Y + scale(visible.Max.Y, rect.Min.Y, rect.Dy(), bounds.Dy()),
		},
	}
	// keep at least one source pixel per axis
	if src.Dx() < 1 {
		src.Max.X = min(src.Min.X+1, bounds.Max.X)
		src.Min.X = src.Max.X - 1
	}
	if src.Dy() < 1 {
		src.Max.Y = min(src.Min.Y+1, bounds.Max.Y)
		src.Min.Y = src.Max.Y - 1
	}
	return src.Intersect(bounds)
}

// Surface paints the frame into a tcell screen. It implements
// gallery.Surface.
type Surface struct {
	screen   tcell.Screen
	config   Config
	material material
	bg       tcell.Color
	frame    tcell.Color
}

// NewSurface creates a surface drawing into screen.
func NewSurface(screen tcell.Screen, cfg Config) *Surface {
	if cfg.FOV <= 0 {
		cfg.FOV = 60
	}
	return &Surface{
		screen: screen,
		config: cfg,
		bg:     toTcell(cfg.Background),
		frame:  tcell.NewRGBColor(96, 96, 104),
	}
}

// Material implements gallery.Surface.
func (s *Surface) Material() gallery.Material {
	return &s.material
}

// Draw paints the frame at p and a status line, then shows the screen.
func (s *Surface) Draw(p pose.Pose, status string) {
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 1 {
		return
	}
	pixRows := (rows - 1) * 2

	rect := s.Layout(p, cols, pixRows)
	visible := rect.Intersect(image.Rect(0, 0, cols, pixRows))
	var img *image.RGBA
	if s.material.tex != nil {
		src := visibleSource(s.material.tex.Image.Bounds(), rect, visible)
		img = s.material.sized(src, visible.Dx(), visible.Dy())
	}

	pixel := func(x, y int) tcell.Color {
		if !(image.Point{X: x, Y: y}).In(visible) {
			return s.bg
		}
		if img == nil {
			return s.frame
		}
		return toTcell(img.RGBAAt(x-visible.Min.X, y-visible.Min.Y))
	}

	for cy := 0; cy < rows-1; cy++ {
		for cx := 0; cx < cols; cx++ {
			style := tcell.StyleDefault.
				Foreground(pixel(cx, cy*2)).
				Background(pixel(cx, cy*2+1))
			s.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	s.drawStatus(rows-1, cols, status)
	s.screen.Show()
}

func (s *Surface) drawStatus(row, cols int, status string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range status {
		if x >= cols {
			break
		}
		s.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		s.screen.SetContent(x, row, ' ', nil, style)
	}
}

// Layout returns the pixel rectangle covered by the frame at p in a
// cols x pixRows pixel grid. It is empty when the frame is behind the
// camera.
func (s *Surface) Layout(p pose.Pose, cols, pixRows int) image.Rectangle {
	w, h := s.material.tex.QuadSize(s.config.FrameSize[0], s.config.FrameSize[1])
	model := p.Matrix(math.Vec3{X: w, Y: h, Z: 1})
	fovY := s.config.FOV * gomath.Pi / 180
	proj := math.Perspective(fovY, float32(cols)/float32(pixRows), nearPlane, farPlane)
	mvp := proj.Mul(model)

	corners := [4]math.Vec3{
		{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5},
		{X: -0.5, Y: 0.5}, {X: 0.5, Y: 0.5},
	}
	minX, minY := float32(gomath.Inf(1)), float32(gomath.Inf(1))
	maxX, maxY := float32(gomath.Inf(-1)), float32(gomath.Inf(-1))
	for _, c := range corners {
		if model.TransformVec3(c).Z > -nearPlane {
			return image.Rectangle{}
		}
		ndc := mvp.TransformVec3(c)
		minX = min(minX, ndc.X)
		maxX = max(maxX, ndc.X)
		minY = min(minY, ndc.Y)
		maxY = max(maxY, ndc.Y)
	}

	toPixel := func(x, y float32) image.Point {
		return image.Point{
			X: clampPixel(float64((x + 1) / 2 * float32(cols))),
			Y: clampPixel(float64((1 - y) / 2 * float32(pixRows))),
		}
	}
	return image.Rectangle{Min: toPixel(minX, maxY), Max: toPixel(maxX, minY)}
}

// Hit reports whether cell (x, y) shows part of the frame drawn at p.
func (s *Surface) Hit(p pose.Pose, x, y int) bool {
	cols, rows := s.screen.Size()
	if rows <= 1 || y >= rows-1 {
		return false
	}
	rect := s.Layout(p, cols, (rows-1)*2)
	return (image.Point{X: x, Y: y * 2}).In(rect) || (image.Point{X: x, Y: y*2 + 1}).In(rect)
}

// PixelDelta converts a pointer movement in cells into a world space
// offset at depth units in front of the camera.
func (s *Surface) PixelDelta(dx, dy int, depth float32) math.Vec3 {
	_, rows := s.screen.Size()
	pixRows := max((rows-1)*2, 1)
	fovY := float64(s.config.FOV) * gomath.Pi / 180
	perPixel := float32(2*gomath.Tan(fovY/2)) * depth / float32(pixRows)
	// a cell is one pixel wide and two tall
	return math.Vec3{X: float32(dx) * perPixel, Y: -float32(dy*2) * perPixel}
}

// maxPixel bounds projected coordinates so a frame grazing the near plane
// cannot overflow int.
const maxPixel = 1 << 20

func clampPixel(v float64) int {
	return int(gomath.Round(gomath.Max(-maxPixel, gomath.Min(maxPixel, v))))
}

func toTcell(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
