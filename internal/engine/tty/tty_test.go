package tty

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/pose"
	"github.com/Faultbox/holoframe/internal/scene"
	"github.com/Faultbox/holoframe/pkg/math"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func solid(w, h int, c color.RGBA) *gallery.Texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return &gallery.Texture{Path: "solid.jpg", Image: img}
}

func atRest(z float32) pose.Pose {
	return pose.Pose{Position: math.Vec3{Z: z}, Rotation: math.QuatIdentity()}
}

func cellColors(screen tcell.Screen, x, y int) (fg, bg tcell.Color) {
	_, _, style, _ := screen.GetContent(x, y)
	fg, bg, _ = style.Decompose()
	return fg, bg
}

func TestDrawCentresImage(t *testing.T) {
	screen := newScreen(t, 40, 21)
	bg, _ := colorful.Hex("#000080")
	s := NewSurface(screen, Config{FOV: 60, Background: bg, FrameSize: [2]float32{0, 1}})
	s.Material().SetMainTexture(solid(8, 8, color.RGBA{R: 255, A: 255}))

	s.Draw(atRest(-3), "status")

	fg, _ := cellColors(screen, 20, 10)
	if r, g, b := fg.RGB(); r < 200 || g > 40 || b > 40 {
		t.Errorf("centre cell = %d,%d,%d, want red", r, g, b)
	}
	_, cornerBg := cellColors(screen, 0, 0)
	if r, g, b := cornerBg.RGB(); r != 0 || g != 0 || b != 128 {
		t.Errorf("corner background = %d,%d,%d, want 0,0,128", r, g, b)
	}
}

func TestDrawStatusLine(t *testing.T) {
	screen := newScreen(t, 30, 10)
	s := NewSurface(screen, Config{FrameSize: [2]float32{0, 1}})
	s.Draw(atRest(-3), "floating 1/3 a.jpg")

	var line strings.Builder
	for x := 0; x < 30; x++ {
		r, _, _, _ := screen.GetContent(x, 9)
		line.WriteRune(r)
	}
	if got := strings.TrimRight(line.String(), " "); got != "floating 1/3 a.jpg" {
		t.Errorf("status line = %q", got)
	}
}

func TestLayoutGrowsWhenCloser(t *testing.T) {
	screen := newScreen(t, 80, 25)
	s := NewSurface(screen, Config{FOV: 60, FrameSize: [2]float32{0, 1}})
	s.Material().SetMainTexture(solid(4, 4, color.RGBA{A: 255}))

	far := s.Layout(atRest(-3), 80, 48)
	near := s.Layout(atRest(-1.5), 80, 48)
	if far.Empty() || near.Empty() {
		t.Fatalf("empty layout: far %v near %v", far, near)
	}
	if near.Dy() <= far.Dy() {
		t.Errorf("near height %d not larger than far height %d", near.Dy(), far.Dy())
	}
	// square image on a 1 unit tall quad is as wide as it is tall
	if d := far.Dx() - far.Dy(); d < -1 || d > 1 {
		t.Errorf("far layout %v is not square", far)
	}
}

func TestLayoutBehindCamera(t *testing.T) {
	screen := newScreen(t, 40, 20)
	s := NewSurface(screen, Config{FrameSize: [2]float32{0, 1}})
	if r := s.Layout(atRest(2), 40, 38); !r.Empty() {
		t.Errorf("Layout behind camera = %v, want empty", r)
	}
}

func TestHit(t *testing.T) {
	screen := newScreen(t, 40, 21)
	s := NewSurface(screen, Config{FOV: 60, FrameSize: [2]float32{0, 1}})
	p := atRest(-3)

	if !s.Hit(p, 20, 10) {
		t.Error("centre cell should hit the frame")
	}
	if s.Hit(p, 0, 0) {
		t.Error("corner cell should miss the frame")
	}
	if s.Hit(p, 20, 20) {
		t.Error("status line should never hit")
	}
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want scene.CommandKind
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone), scene.CommandFloat, true},
		{tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), scene.CommandNext, true},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), scene.CommandNext, true},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), scene.CommandPrevious, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		cmd, ok := KeyCommand(tt.ev)
		if ok != tt.ok || (ok && cmd.Kind != tt.want) {
			t.Errorf("KeyCommand(%v) = %v, %v; want %v, %v", tt.ev.Name(), cmd.Kind, ok, tt.want, tt.ok)
		}
	}

	if !IsQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if IsQuit(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone)) {
		t.Error("f should not quit")
	}
}

func TestPointerGrab(t *testing.T) {
	var p Pointer
	toWorld := func(dx, dy int) math.Vec3 {
		return math.Vec3{X: float32(dx), Y: float32(-dy)}
	}
	hit := func(x, y int) bool { return x < 20 }

	if cmds := p.Handle(tcell.NewEventMouse(30, 5, tcell.Button1, tcell.ModNone), hit, toWorld); cmds != nil {
		t.Fatalf("press off the frame = %v, want none", cmds)
	}
	p.Handle(tcell.NewEventMouse(30, 5, tcell.ButtonNone, tcell.ModNone), hit, toWorld)

	cmds := p.Handle(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone), hit, toWorld)
	if len(cmds) != 1 || cmds[0].Kind != scene.CommandSelect {
		t.Fatalf("press = %v, want select", cmds)
	}

	cmds = p.Handle(tcell.NewEventMouse(7, 4, tcell.Button1, tcell.ModNone), hit, toWorld)
	if len(cmds) != 1 || cmds[0].Kind != scene.CommandMove {
		t.Fatalf("drag = %v, want move", cmds)
	}
	if cmds[0].Delta != (math.Vec3{X: 2, Y: 1}) {
		t.Errorf("drag delta = %v", cmds[0].Delta)
	}

	if cmds = p.Handle(tcell.NewEventMouse(7, 4, tcell.Button1, tcell.ModNone), hit, toWorld); cmds != nil {
		t.Errorf("stationary drag = %v, want none", cmds)
	}

	cmds = p.Handle(tcell.NewEventMouse(7, 4, tcell.ButtonNone, tcell.ModNone), hit, toWorld)
	if len(cmds) != 1 || cmds[0].Kind != scene.CommandRelease {
		t.Fatalf("release = %v, want release", cmds)
	}

	if cmds = p.Handle(tcell.NewEventMouse(9, 9, tcell.ButtonNone, tcell.ModNone), hit, toWorld); cmds != nil {
		t.Errorf("hover = %v, want none", cmds)
	}
}

func TestMaterialRescalesOnAssign(t *testing.T) {
	var m material
	full := image.Rect(0, 0, 8, 8)
	if m.sized(full, 4, 4) != nil {
		t.Error("sized without texture should be nil")
	}
	m.SetMainTexture(solid(8, 8, color.RGBA{G: 255, A: 255}))
	a := m.sized(full, 4, 4)
	if a == nil || a.Bounds().Dx() != 4 {
		t.Fatalf("sized = %v", a)
	}
	if m.sized(full, 4, 4) != a {
		t.Error("same size should reuse the cached image")
	}
	if m.sized(image.Rect(0, 0, 4, 8), 4, 4) == a {
		t.Error("a different source region should rescale")
	}
	m.SetMainTexture(solid(8, 8, color.RGBA{B: 255, A: 255}))
	if m.sized(full, 4, 4) == a {
		t.Error("assigning a texture should drop the cache")
	}
}

func TestVisibleSource(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 50)
	tests := []struct {
		name          string
		rect, visible image.Rectangle
		want          image.Rectangle
	}{
		{"fully visible", image.Rect(10, 10, 30, 20), image.Rect(10, 10, 30, 20), bounds},
		{"right half", image.Rect(-20, 0, 20, 10), image.Rect(0, 0, 20, 10), image.Rect(50, 0, 100, 50)},
		{"tiny window", image.Rect(-1000, -1000, 1000, 1000), image.Rect(0, 0, 1, 1), image.Rect(50, 25, 51, 26)},
		{"nothing visible", image.Rect(-20, 0, -10, 10), image.Rectangle{}, image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visibleSource(bounds, tt.rect, tt.visible); got != tt.want {
				t.Errorf("visibleSource = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawFrameAtNearPlane(t *testing.T) {
	screen := newScreen(t, 40, 21)
	s := NewSurface(screen, Config{FOV: 60, FrameSize: [2]float32{0, 1}})
	s.Material().SetMainTexture(solid(64, 64, color.RGBA{R: 255, A: 255}))

	p := atRest(-nearPlane - 0.001)
	rect := s.Layout(p, 40, 40)
	if rect.Dx() <= 40*10 {
		t.Fatalf("layout %v should dwarf the screen", rect)
	}

	s.Draw(p, "")

	if s.material.scaled == nil {
		t.Fatal("nothing was drawn")
	}
	if b := s.material.scaled.Bounds(); b.Dx() > 40 || b.Dy() > 40 {
		t.Errorf("scaled image %v is larger than the screen", b)
	}
	fg, _ := cellColors(screen, 0, 0)
	if r, _, _ := fg.RGB(); r < 200 {
		t.Errorf("corner cell r = %d, want the frame filling the screen", r)
	}
}
