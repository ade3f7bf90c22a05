package pose

import "github.com/Faultbox/holoframe/internal/easing"

// Transition moves from a start pose to a target pose over a fixed duration.
// It is advanced explicitly by Step; dropping the value cancels it.
type Transition struct {
	start    Pose
	target   Pose
	elapsed  float32
	duration float32
	curve    easing.Curve
}

// NewTransition prepares a transition. A nil curve uses easing.Default and a
// non-positive duration completes on the first Step.
func NewTransition(start, target Pose, duration float32, curve easing.Curve) *Transition {
	if curve == nil {
		curve = easing.Default()
	}
	if duration < 0 {
		duration = 0
	}
	return &Transition{
		start:    start,
		target:   target,
		duration: duration,
		curve:    curve,
	}
}

// Step advances by dt seconds and returns the pose to apply. Once elapsed
// reaches the duration it returns the exact target and done is true. Curve
// output is clamped to [0,1] so the pose stays between start and target.
func (t *Transition) Step(dt float32) (p Pose, done bool) {
	if dt > 0 {
		t.elapsed += dt
	}
	if t.elapsed >= t.duration {
		t.elapsed = t.duration
		return t.target, true
	}
	s := easing.Clamp01(t.curve.Evaluate(t.elapsed / t.duration))
	return t.start.Interpolate(t.target, s), false
}

// Start returns the pose the transition began from.
func (t *Transition) Start() Pose { return t.start }

// Target returns the pose the transition ends at.
func (t *Transition) Target() Pose { return t.target }

// Elapsed returns the accumulated time in seconds, never above Duration.
func (t *Transition) Elapsed() float32 { return t.elapsed }

// Duration returns the total time in seconds.
func (t *Transition) Duration() float32 { return t.duration }

// Progress returns elapsed/duration in [0,1].
func (t *Transition) Progress() float32 {
	if t.duration <= 0 {
		return 1
	}
	return t.elapsed / t.duration
}
