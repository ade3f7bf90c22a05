package pose

import (
	"go.uber.org/zap"

	"github.com/Faultbox/holoframe/internal/easing"
	"github.com/Faultbox/holoframe/internal/logger"
)

// DefaultDuration is the transition length in seconds.
const DefaultDuration = 1.0

// Options configures an Animator.
type Options struct {
	Duration float32      // seconds
	Curve    easing.Curve // nil means easing.Default
}

// DefaultOptions returns a one second ease-in/ease-out transition.
func DefaultOptions() Options {
	return Options{
		Duration: DefaultDuration,
		Curve:    easing.Default(),
	}
}

// Animator moves a frame between its rest pose and a floating pose.
//
// The floating flag records the pose the caller last asked for, not where
// the frame currently is: repeated ActivateFloat calls alternate targets even
// if no transition has finished.
type Animator struct {
	frame    Transform
	rest     Pose
	float    Pose
	floating bool
	active   *Transition
	opts     Options
	log      *zap.Logger
	err      error
	detach   func()
}

// NewAnimator captures the rest pose from frame and the floating pose from
// floatRef, then subscribes ResetPosition to the unselect notifications of
// events. A missing frame or floatRef is logged and leaves the animator inert.
func NewAnimator(frame, floatRef Transform, events UnselectSource, opts Options, log *zap.Logger) *Animator {
	log = logger.OrNop(log)
	if opts.Curve == nil {
		opts.Curve = easing.Default()
	}

	a := &Animator{
		frame: frame,
		opts:  opts,
		log:   log,
	}

	switch {
	case frame == nil:
		a.err = &ConfigurationError{Component: "animator", Err: ErrNoFrame}
	case floatRef == nil:
		a.err = &ConfigurationError{Component: "animator", Err: ErrNoFloatTarget}
	}
	if a.err != nil {
		log.Error("animator disabled", zap.Error(a.err))
		a.frame = nil
		return a
	}

	a.rest = frame.Pose()
	a.float = floatRef.Pose()

	if events != nil {
		a.detach = events.OnUnselect(a.ResetPosition)
	} else {
		log.Warn("no unselect source, frame will only return on explicit reset")
	}

	log.Debug("animator ready",
		zap.Float32("duration", opts.Duration),
		zap.Any("rest", a.rest.Position),
		zap.Any("float", a.float.Position),
	)
	return a
}

// ResetPosition sends the frame back to whichever pose is logically active.
// The event payload is ignored.
func (a *Animator) ResetPosition(PointerEvent) {
	if a.frame == nil {
		return
	}
	if a.floating {
		a.moveTo(a.float, "float")
	} else {
		a.moveTo(a.rest, "rest")
	}
}

// ActivateFloat toggles between the rest and floating poses.
func (a *Animator) ActivateFloat() {
	if a.frame == nil {
		return
	}
	if a.floating {
		a.moveTo(a.rest, "rest")
		a.floating = false
	} else {
		a.moveTo(a.float, "float")
		a.floating = true
	}
}

// Stop cancels the active transition and leaves the frame where it is.
func (a *Animator) Stop() {
	a.active = nil
}

// Update advances the active transition by dt seconds. Call once per frame.
func (a *Animator) Update(dt float32) {
	if a.active == nil {
		return
	}
	p, done := a.active.Step(dt)
	a.frame.SetPose(p)
	if done {
		a.active = nil
		a.log.Debug("transition complete")
	}
}

// moveTo replaces any active transition with one from the frame's current
// pose to target.
func (a *Animator) moveTo(target Pose, name string) {
	a.active = NewTransition(a.frame.Pose(), target, a.opts.Duration, a.opts.Curve)
	a.log.Debug("transition started",
		zap.String("target", name),
		zap.Float32("duration", a.opts.Duration),
	)
}

// Floating reports whether the floating pose is the logically active one.
func (a *Animator) Floating() bool { return a.floating }

// Animating reports whether a transition is in flight.
func (a *Animator) Animating() bool { return a.active != nil }

// Target returns the pose the active transition is heading to.
func (a *Animator) Target() (Pose, bool) {
	if a.active == nil {
		return Pose{}, false
	}
	return a.active.Target(), true
}

// Progress returns the active transition's progress, or 1 when idle.
func (a *Animator) Progress() float32 {
	if a.active == nil {
		return 1
	}
	return a.active.Progress()
}

// RestPose returns the pose captured from the frame at construction.
func (a *Animator) RestPose() Pose { return a.rest }

// FloatPose returns the pose captured from the float reference.
func (a *Animator) FloatPose() Pose { return a.float }

// Err returns the configuration error that disabled the animator, if any.
func (a *Animator) Err() error { return a.err }

// Close unsubscribes from the unselect source.
func (a *Animator) Close() {
	if a.detach != nil {
		a.detach()
		a.detach = nil
	}
}
