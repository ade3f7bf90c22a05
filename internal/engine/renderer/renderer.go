// Package renderer draws the frame as a textured quad with OpenGL.
package renderer

import (
	"fmt"
	gomath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/engine/picking"
	"github.com/Faultbox/holoframe/internal/engine/renderer/shaders"
	"github.com/Faultbox/holoframe/internal/engine/shader"
	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/logger"
	"github.com/Faultbox/holoframe/internal/pose"
	"github.com/Faultbox/holoframe/pkg/math"
)

const (
	nearPlane = 0.05
	farPlane  = 100.0
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	FOV        float32 // vertical, degrees
	Background colorful.Color
	FrameSize  [2]float32 // world units, see gallery.Texture.QuadSize
}

// Renderer draws the frame. It doubles as the gallery's display surface.
type Renderer struct {
	config Config

	program uint32
	locMVP  int32
	locTex  int32

	quadVAO     uint32
	quadVBO     uint32
	fallbackTex uint32

	material   Material
	projection math.Mat4
	view       math.Mat4
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		view:   math.LookAt(math.Vec3{}, math.Vec3{Z: -1}, math.Vec3{Y: 1}),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	bg := cfg.Background
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1.0)

	var err error
	r.program, err = shader.CompileProgram(shaders.FrameVertexShader, shaders.FrameFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("frame shader: %w", err)
	}
	r.locMVP = shader.MustGetUniform(r.program, "uMVP")
	r.locTex = shader.GetUniform(r.program, "uTexture")

	r.createQuad()
	r.createFallbackTexture()
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Material implements gallery.Surface.
func (r *Renderer) Material() gallery.Material {
	return &r.material
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.material.release()
	if r.fallbackTex != 0 {
		gl.DeleteTextures(1, &r.fallbackTex)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if height <= 0 {
		height = 1
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))

	fovY := r.config.FOV * gomath.Pi / 180
	r.projection = math.Perspective(fovY, float32(width)/float32(height), nearPlane, farPlane)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawFrame draws the frame quad at p, sized to the displayed image.
func (r *Renderer) DrawFrame(p pose.Pose) {
	texID := r.material.sync()
	if texID == 0 {
		texID = r.fallbackTex
	}

	w, h := r.material.MainTexture().QuadSize(r.config.FrameSize[0], r.config.FrameSize[1])
	model := p.Matrix(math.Vec3{X: w, Y: h, Z: 1})
	mvp := r.projection.Mul(r.view).Mul(model)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.Uniform1i(r.locTex, 0)

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

// HitTest reports whether window point (x, y) of a winW x winH window
// lies on the frame drawn at p.
func (r *Renderer) HitTest(x, y, winW, winH int, p pose.Pose) bool {
	if winW <= 0 || winH <= 0 {
		return false
	}
	fovY := r.config.FOV * gomath.Pi / 180
	ray := picking.CameraRay(float32(x), float32(y), float32(winW), float32(winH), fovY)
	w, h := r.material.MainTexture().QuadSize(r.config.FrameSize[0], r.config.FrameSize[1])
	_, hit := ray.IntersectQuad(p, w, h)
	return hit
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// PixelDelta converts a pointer movement in a viewport viewportH units
// tall into a world space offset on a plane depth units in front of the
// camera.
func (r *Renderer) PixelDelta(dx, dy, viewportH int, depth float32) math.Vec3 {
	if viewportH <= 0 {
		return math.Vec3{}
	}
	fovY := float64(r.config.FOV) * gomath.Pi / 180
	perPixel := float32(2*gomath.Tan(fovY/2)) * depth / float32(viewportH)
	return math.Vec3{X: float32(dx) * perPixel, Y: -float32(dy) * perPixel}
}

// createQuad builds a unit quad centred on the origin. Image row 0 is the
// top, so v runs downwards.
func (r *Renderer) createQuad() {
	vertices := []float32{
		// Position        // UV
		-0.5, 0.5, 0.0, 0.0, 0.0,
		-0.5, -0.5, 0.0, 0.0, 1.0,
		0.5, 0.5, 0.0, 1.0, 0.0,
		0.5, -0.5, 0.0, 1.0, 1.0,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("frame quad created",
		zap.Uint32("vao", r.quadVAO),
		zap.Uint32("vbo", r.quadVBO),
	)
}

func (r *Renderer) createFallbackTexture() {
	gl.GenTextures(1, &r.fallbackTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fallbackTex)
	grey := []uint8{96, 96, 104, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(grey))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
}
