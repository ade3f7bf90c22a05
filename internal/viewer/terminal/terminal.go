// Package terminal runs the viewer in a terminal.
package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/config"
	"github.com/Faultbox/holoframe/internal/engine/tty"
	"github.com/Faultbox/holoframe/internal/logger"
	"github.com/Faultbox/holoframe/internal/scene"
	"github.com/Faultbox/holoframe/internal/viewer"
	"github.com/Faultbox/holoframe/pkg/math"
)

const frameInterval = time.Second / 30

// Viewer is the terminal host.
type Viewer struct {
	screen  tcell.Screen
	surface *tty.Surface
	scene   *scene.Scene
	remotes *viewer.Remotes
	pointer tty.Pointer
	log     *zap.Logger
}

// New takes over screen and builds the scene. The screen must not be
// initialised yet.
func New(cfg *config.Config, screen tcell.Screen) (*Viewer, error) {
	bg, err := cfg.Display.BackgroundColor()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	v := &Viewer{
		screen: screen,
		surface: tty.NewSurface(screen, tty.Config{
			FOV:        cfg.Display.FOV,
			Background: bg,
			FrameSize:  cfg.Frame.Size,
		}),
		log: logger.Named("terminal"),
	}

	v.scene, err = viewer.NewScene(cfg, v.surface)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	v.remotes = viewer.StartRemotes(cfg.Control, v.scene)
	return v, nil
}

// Run runs the frame loop until the user quits or stop is closed.
func (v *Viewer) Run(stop <-chan struct{}) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	v.log.Info("starting frame loop")
	for {
		select {
		case <-stop:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			v.scene.Update(float32(dt))
			v.surface.Draw(v.scene.FramePose(), viewer.StatusLine(v.scene.Status())+"  [f]loat [n]ext [p]rev [q]uit")
		}
	}
}

// handleEvent reports whether the viewer should quit.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if tty.IsQuit(ev) {
			return true
		}
		if cmd, ok := tty.KeyCommand(ev); ok {
			v.scene.Post(cmd)
		}
	case *tcell.EventMouse:
		for _, cmd := range v.pointer.Handle(ev, v.onFrame, v.toWorld) {
			v.scene.Post(cmd)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false
}

func (v *Viewer) onFrame(x, y int) bool {
	return v.surface.Hit(v.scene.FramePose(), x, y)
}

func (v *Viewer) toWorld(dx, dy int) math.Vec3 {
	depth := -v.scene.FramePose().Position.Z
	return v.surface.PixelDelta(dx, dy, depth)
}

// Close stops the remotes and restores the terminal.
func (v *Viewer) Close() {
	v.remotes.Close()
	v.scene.Close()
	v.screen.Fini()
}
