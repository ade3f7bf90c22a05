package tty

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/holoframe/internal/scene"
	"github.com/Faultbox/holoframe/pkg/math"
)

// KeyCommand maps a key press to a scene command.
func KeyCommand(ev *tcell.EventKey) (scene.Command, bool) {
	switch ev.Key() {
	case tcell.KeyRight:
		return scene.Command{Kind: scene.CommandNext}, true
	case tcell.KeyLeft:
		return scene.Command{Kind: scene.CommandPrevious}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'f', 'F', ' ':
			return scene.Command{Kind: scene.CommandFloat}, true
		case 'n', 'N':
			return scene.Command{Kind: scene.CommandNext}, true
		case 'p', 'P':
			return scene.Command{Kind: scene.CommandPrevious}, true
		}
	}
	return scene.Command{}, false
}

// IsQuit reports whether ev asks to leave the viewer.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Pointer turns mouse events into grab commands: pressing the primary
// button selects the frame, dragging moves it and releasing lets go.
type Pointer struct {
	down         bool
	lastX, lastY int
}

// Handle returns the commands for ev. hit reports whether a cell shows the
// frame; presses elsewhere are ignored. toWorld converts a movement in
// cells into a world space offset.
func (p *Pointer) Handle(ev *tcell.EventMouse, hit func(x, y int) bool, toWorld func(dx, dy int) math.Vec3) []scene.Command {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !p.down:
		if !hit(x, y) {
			return nil
		}
		p.down = true
		p.lastX, p.lastY = x, y
		return []scene.Command{{Kind: scene.CommandSelect}}

	case pressed && p.down:
		dx, dy := x-p.lastX, y-p.lastY
		p.lastX, p.lastY = x, y
		if dx == 0 && dy == 0 {
			return nil
		}
		return []scene.Command{{Kind: scene.CommandMove, Delta: toWorld(dx, dy)}}

	case !pressed && p.down:
		p.down = false
		return []scene.Command{{Kind: scene.CommandRelease}}
	}
	return nil
}
