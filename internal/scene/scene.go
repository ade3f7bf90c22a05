// Package scene hosts the frame animator and the image cycler behind a
// single per-frame Update.
//
// Only the goroutine that calls Update touches the components. Other
// goroutines (HTTP handlers, MQTT callbacks) Post commands, which are
// applied at the start of the next frame, and read Status snapshots.
package scene

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/gallery"
	"github.com/Faultbox/holoframe/internal/logger"
	"github.com/Faultbox/holoframe/internal/pose"
)

// DefaultQueueSize bounds the number of commands pending between frames.
const DefaultQueueSize = 64

// Config wires a scene.
type Config struct {
	Rest      pose.Pose
	Float     pose.Pose
	Animation pose.Options
	Gallery   gallery.Options
	Surface   gallery.Surface
	QueueSize int
}

// Status is a snapshot of the scene taken at the end of a frame.
type Status struct {
	Floating   bool       `json:"floating"`
	Animating  bool       `json:"animating"`
	Progress   float32    `json:"progress"`
	Grabbed    bool       `json:"grabbed"`
	Position   [3]float32 `json:"position"`
	Rotation   [4]float32 `json:"rotation"`
	ImageIndex int        `json:"image_index"`
	ImageCount int        `json:"image_count"`
	ImagePath  string     `json:"image_path,omitempty"`
	Frames     uint64     `json:"frames"`
}

// Scene owns the frame, its float reference, the pointer event source and
// both components.
type Scene struct {
	frame    *pose.Node
	floatRef *pose.Node
	events   *pose.PointableEvents
	animator *pose.Animator
	cycler   *gallery.Cycler
	commands chan Command
	grabbed  bool
	frames   uint64
	detach   func()
	log      *zap.Logger

	mu      sync.RWMutex
	status  Status
	current *gallery.Texture
}

// New builds the scene. Image loading happens here, synchronously.
func New(cfg Config, log *zap.Logger) *Scene {
	log = logger.OrNop(log)
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}

	s := &Scene{
		frame:    pose.NewNode("frame", cfg.Rest),
		floatRef: pose.NewNode("float", cfg.Float),
		events:   pose.NewPointableEvents(),
		commands: make(chan Command, cfg.QueueSize),
		log:      log,
	}

	s.animator = pose.NewAnimator(s.frame, s.floatRef, s.events, cfg.Animation, log.Named("animator"))
	s.detach = s.events.OnSelect(s.onSelect)
	s.cycler = gallery.NewCycler(cfg.Surface, cfg.Gallery, log.Named("gallery"))

	s.publish()
	return s
}

// Post queues a command for the next frame. It never blocks and returns
// false when the queue is full.
func (s *Scene) Post(cmd Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		s.log.Warn("command queue full, dropping command", zap.Stringer("command", cmd.Kind))
		return false
	}
}

// Update applies pending commands and advances the animator by dt seconds.
func (s *Scene) Update(dt float32) {
	s.drain()
	s.animator.Update(dt)
	s.frames++
	s.publish()
}

func (s *Scene) drain() {
	for {
		select {
		case cmd := <-s.commands:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Scene) apply(cmd Command) {
	s.log.Debug("command", zap.Stringer("kind", cmd.Kind))
	switch cmd.Kind {
	case CommandFloat:
		s.animator.ActivateFloat()
	case CommandSelect:
		s.events.Select(pose.PointerEvent{Position: s.frame.Pose().Position})
	case CommandMove:
		if s.grabbed {
			s.frame.Translate(cmd.Delta)
		}
	case CommandRelease:
		s.grabbed = false
		s.events.Unselect(pose.PointerEvent{Position: s.frame.Pose().Position})
	case CommandNext:
		s.cycler.ShowNextImage()
	case CommandPrevious:
		s.cycler.ShowPreviousImage()
	default:
		s.log.Warn("ignoring unknown command", zap.Int("kind", int(cmd.Kind)))
	}
}

// onSelect grabs the frame: the active transition stops so it does not
// fight the drag.
func (s *Scene) onSelect(pose.PointerEvent) {
	s.grabbed = true
	s.animator.Stop()
}

func (s *Scene) publish() {
	p := s.frame.Pose()
	st := Status{
		Floating:   s.animator.Floating(),
		Animating:  s.animator.Animating(),
		Progress:   s.animator.Progress(),
		Grabbed:    s.grabbed,
		Position:   p.Position.Array(),
		Rotation:   [4]float32{p.Rotation.X, p.Rotation.Y, p.Rotation.Z, p.Rotation.W},
		ImageIndex: s.cycler.Index(),
		ImageCount: s.cycler.Count(),
		Frames:     s.frames,
	}
	cur := s.cycler.Current()
	if cur != nil {
		st.ImagePath = cur.Path
	}

	s.mu.Lock()
	s.status = st
	s.current = cur
	s.mu.Unlock()
}

// Status returns the snapshot taken at the end of the last frame.
func (s *Scene) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Current returns the texture on display at the end of the last frame.
func (s *Scene) Current() *gallery.Texture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// FramePose returns the frame's pose. Loop goroutine only.
func (s *Scene) FramePose() pose.Pose {
	return s.frame.Pose()
}

// Animator returns the frame animator. Loop goroutine only.
func (s *Scene) Animator() *pose.Animator { return s.animator }

// Cycler returns the image cycler. Loop goroutine only.
func (s *Scene) Cycler() *gallery.Cycler { return s.cycler }

// Close detaches the event handlers.
func (s *Scene) Close() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	s.animator.Close()
}
