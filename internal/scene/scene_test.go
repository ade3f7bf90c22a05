package scene

import (
	"bytes"
	"image"
	"image/jpeg"
	gomath "math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/pose"
	"github.com/Faultbox/holoframe/pkg/math"
)

const epsilon = 1e-4

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func writeJPEG(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

var (
	restPose  = pose.Pose{Position: math.Vec3{Z: -3}, Rotation: math.QuatIdentity()}
	floatPose = pose.Pose{Position: math.Vec3{X: 1, Y: 0.5, Z: -2}, Rotation: math.QuatFromEuler(0, 30, 0)}
)

func newScene(t *testing.T, dir string, queue int) (*Scene, *gallery.MemorySurface) {
	t.Helper()
	surface := gallery.NewMemorySurface(nil)
	s := New(Config{
		Rest:      restPose,
		Float:     floatPose,
		Animation: pose.Options{Duration: 0.5},
		Gallery:   gallery.Options{Dir: dir},
		Surface:   surface,
		QueueSize: queue,
	}, nil)
	t.Cleanup(s.Close)
	return s, surface
}

func TestParseCommandKind(t *testing.T) {
	tests := []struct {
		in      string
		want    CommandKind
		wantErr bool
	}{
		{"float", CommandFloat, false},
		{" Next ", CommandNext, false},
		{"prev", CommandPrevious, false},
		{"previous", CommandPrevious, false},
		{"release", CommandRelease, false},
		{"select", CommandSelect, false},
		{"explode", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCommandKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandKindString(t *testing.T) {
	if CommandPrevious.String() != "prev" {
		t.Errorf("CommandPrevious.String() = %q", CommandPrevious.String())
	}
	if CommandKind(99).String() != "command(99)" {
		t.Errorf("unknown kind = %q", CommandKind(99).String())
	}
}

func TestFloatCommandAppliedOnNextUpdate(t *testing.T) {
	s, _ := newScene(t, t.TempDir(), 0)

	if !s.Post(Command{Kind: CommandFloat}) {
		t.Fatal("Post rejected command")
	}
	if s.Status().Floating {
		t.Fatal("command applied before Update")
	}

	s.Update(0.25)
	st := s.Status()
	if !st.Floating || !st.Animating {
		t.Fatalf("status = %+v, want floating and animating", st)
	}
	if !near(st.Progress, 0.5) {
		t.Errorf("Progress = %v, want 0.5", st.Progress)
	}

	s.Update(1)
	st = s.Status()
	if st.Animating {
		t.Error("still animating after duration")
	}
	if !nearVec(s.FramePose().Position, floatPose.Position) {
		t.Errorf("position = %v, want %v", s.FramePose().Position, floatPose.Position)
	}
	if st.Frames != 2 {
		t.Errorf("Frames = %d, want 2", st.Frames)
	}
}

func TestPostQueueFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(Config{
		Rest:      restPose,
		Float:     floatPose,
		Animation: pose.DefaultOptions(),
		Gallery:   gallery.Options{Dir: t.TempDir()},
		Surface:   gallery.NewMemorySurface(nil),
		QueueSize: 2,
	}, zap.New(core))
	defer s.Close()

	for i := 0; i < 2; i++ {
		if !s.Post(Command{Kind: CommandNext}) {
			t.Fatalf("Post %d rejected", i)
		}
	}
	if s.Post(Command{Kind: CommandNext}) {
		t.Error("Post accepted a command beyond the queue size")
	}
	if logs.FilterMessage("command queue full, dropping command").Len() != 1 {
		t.Error("expected a queue-full warning")
	}

	s.Update(0)
	if !s.Post(Command{Kind: CommandNext}) {
		t.Error("queue not drained by Update")
	}
}

func TestGrabDragRelease(t *testing.T) {
	s, _ := newScene(t, t.TempDir(), 0)

	s.Post(Command{Kind: CommandFloat})
	s.Update(0.1)
	if !s.Status().Animating {
		t.Fatal("float transition not started")
	}

	s.Post(Command{Kind: CommandSelect})
	s.Update(0)
	st := s.Status()
	if !st.Grabbed || st.Animating {
		t.Fatalf("after select: %+v, want grabbed and not animating", st)
	}
	grabbedAt := s.FramePose().Position

	s.Post(Command{Kind: CommandMove, Delta: math.Vec3{Y: 1}})
	s.Update(0)
	if want := grabbedAt.Add(math.Vec3{Y: 1}); !nearVec(s.FramePose().Position, want) {
		t.Errorf("dragged to %v, want %v", s.FramePose().Position, want)
	}

	s.Post(Command{Kind: CommandRelease})
	s.Update(0)
	st = s.Status()
	if st.Grabbed || !st.Animating {
		t.Fatalf("after release: %+v, want released and animating", st)
	}
	target, ok := s.Animator().Target()
	if !ok || !nearVec(target.Position, floatPose.Position) {
		t.Errorf("release target = %v, want float pose (floating flag kept)", target.Position)
	}

	s.Update(1)
	if !nearVec(s.FramePose().Position, floatPose.Position) {
		t.Errorf("settled at %v, want %v", s.FramePose().Position, floatPose.Position)
	}
}

func TestMoveWithoutGrabIgnored(t *testing.T) {
	s, _ := newScene(t, t.TempDir(), 0)

	s.Post(Command{Kind: CommandMove, Delta: math.Vec3{X: 5}})
	s.Update(0)
	if !nearVec(s.FramePose().Position, restPose.Position) {
		t.Errorf("frame moved to %v without a grab", s.FramePose().Position)
	}
}

func TestReleaseWithoutGrabReturnsToRest(t *testing.T) {
	s, _ := newScene(t, t.TempDir(), 0)

	s.Post(Command{Kind: CommandRelease})
	s.Update(0)
	target, ok := s.Animator().Target()
	if !ok || !nearVec(target.Position, restPose.Position) {
		t.Errorf("target = %v (active %v), want rest", target.Position, ok)
	}
}

func TestGalleryCommands(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		writeJPEG(t, dir, name)
	}
	s, surface := newScene(t, dir, 0)

	st := s.Status()
	if st.ImageCount != 3 || st.ImageIndex != 0 || filepath.Base(st.ImagePath) != "a.jpg" {
		t.Fatalf("initial status = %+v", st)
	}

	s.Post(Command{Kind: CommandNext})
	s.Post(Command{Kind: CommandNext})
	s.Update(0)
	if got := s.Status().ImageIndex; got != 2 {
		t.Errorf("ImageIndex = %d, want 2", got)
	}

	s.Post(Command{Kind: CommandPrevious})
	s.Update(0)
	cur := s.Current()
	if cur == nil || filepath.Base(cur.Path) != "b.jpg" {
		t.Fatalf("Current() = %v, want b.jpg", cur)
	}
	if surface.Material().MainTexture() != cur {
		t.Error("surface texture does not match Current()")
	}
}

func TestEmptyGallery(t *testing.T) {
	s, _ := newScene(t, t.TempDir(), 0)

	s.Post(Command{Kind: CommandNext})
	s.Update(0)
	st := s.Status()
	if st.ImageCount != 0 || st.ImageIndex != -1 || st.ImagePath != "" {
		t.Errorf("status = %+v", st)
	}
	if s.Current() != nil {
		t.Error("Current() should be nil with no images")
	}
}

func TestConcurrentPostAndStatus(t *testing.T) {
	s, _ := newScene(t, t.TempDir(), 0)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Post(Command{Kind: CommandFloat})
				_ = s.Status()
				_ = s.Current()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-done:
			s.Update(0.01)
			return
		default:
			s.Update(0.01)
		}
	}
}
