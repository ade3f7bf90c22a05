// Package desktop runs the viewer in an SDL2 window rendered with OpenGL.
package desktop

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/config"
	"github.com/Faultbox/holoframe/internal/engine/capture"
	"github.com/Faultbox/holoframe/internal/engine/input"
	"github.com/Faultbox/holoframe/internal/engine/renderer"
	"github.com/Faultbox/holoframe/internal/engine/window"
	"github.com/Faultbox/holoframe/internal/logger"
	"github.com/Faultbox/holoframe/internal/scene"
	"github.com/Faultbox/holoframe/internal/viewer"
)

const title = "holoframe"

// maxFrameTime caps dt so a stall (window drag, breakpoint) does not skip
// a whole transition.
const maxFrameTime = 0.25

// Viewer is the desktop host.
type Viewer struct {
	cfg      *config.Config
	running  bool
	grabbing bool
	wantShot bool
	shots    *capture.Capture
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	remotes  *viewer.Remotes
	log      *zap.Logger
}

// New opens the window and builds the scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:   cfg,
		shots: capture.New(filepath.Join(config.DataDir(), "screenshots"), "holoframe"),
		log:   logger.Named("desktop"),
	}
	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Display.Width),
		zap.Int("height", cfg.Display.Height),
	)

	bg, err := cfg.Display.BackgroundColor()
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		FOV:        cfg.Display.FOV,
		Background: bg,
		FrameSize:  cfg.Frame.Size,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	v.scene, err = viewer.NewScene(cfg, v.renderer)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.remotes = viewer.StartRemotes(cfg.Control, v.scene)

	v.log.Info("viewer initialized")
	return v, nil
}

// Run runs the frame loop until the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	titleTimer := time.Now()

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.scene.Update(float32(dt))

		v.renderer.Begin()
		v.renderer.DrawFrame(v.scene.FramePose())
		v.renderer.End()
		if v.wantShot {
			v.wantShot = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		if time.Since(titleTimer) >= time.Second {
			v.window.SetTitle(title + " - " + viewer.StatusLine(v.scene.Status()))
			titleTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())

		case input.EventKeyDown:
			v.handleKey(event.Key)

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT && !v.grabbing && v.onFrame(event.MouseX, event.MouseY) {
				v.grabbing = true
				v.scene.Post(scene.Command{Kind: scene.CommandSelect})
			}

		case input.EventMouseMove:
			if v.grabbing && (event.DeltaX != 0 || event.DeltaY != 0) {
				_, h := v.window.Size()
				depth := -v.scene.FramePose().Position.Z
				v.scene.Post(scene.Command{
					Kind:  scene.CommandMove,
					Delta: v.renderer.PixelDelta(event.DeltaX, event.DeltaY, h, depth),
				})
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT && v.grabbing {
				v.grabbing = false
				v.scene.Post(scene.Command{Kind: scene.CommandRelease})
			}
		}
	}
}

func (v *Viewer) onFrame(x, y int) bool {
	w, h := v.window.Size()
	return v.renderer.HitTest(x, y, w, h, v.scene.FramePose())
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		v.running = false
	case sdl.SCANCODE_F, sdl.SCANCODE_SPACE:
		v.scene.Post(scene.Command{Kind: scene.CommandFloat})
	case sdl.SCANCODE_N, sdl.SCANCODE_RIGHT:
		v.scene.Post(scene.Command{Kind: scene.CommandNext})
	case sdl.SCANCODE_P, sdl.SCANCODE_LEFT:
		v.scene.Post(scene.Command{Kind: scene.CommandPrevious})
	case sdl.SCANCODE_F11:
		v.window.ToggleFullscreen()
	case sdl.SCANCODE_F12:
		v.wantShot = true
	}
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.FromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, the remotes and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.remotes != nil {
		v.remotes.Close()
	}
	if v.scene != nil {
		v.scene.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
