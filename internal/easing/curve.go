// Package easing maps normalized time to normalized progress for pose
// transitions.
package easing

import "sort"

// Curve evaluates progress for a normalized time.
type Curve interface {
	Evaluate(t float32) float32
}

// Func adapts a plain function to Curve.
type Func func(t float32) float32

// Evaluate calls f(t).
func (f Func) Evaluate(t float32) float32 {
	return f(t)
}

// Key is a single control point of a Keyframes curve. Tangents are slopes
// (dValue/dTime) entering and leaving the key.
type Key struct {
	Time       float32
	Value      float32
	InTangent  float32
	OutTangent float32
}

// Keyframes is a cubic Hermite curve through a set of keys. Evaluation
// outside the key range clamps to the first or last value.
type Keyframes []Key

// NewKeyframes returns a curve with keys sorted by time.
func NewKeyframes(keys ...Key) Keyframes {
	k := make(Keyframes, len(keys))
	copy(k, keys)
	sort.SliceStable(k, func(i, j int) bool { return k[i].Time < k[j].Time })
	return k
}

// EaseInOut returns a two-key curve with flat tangents from (t0, v0) to
// (t1, v1). Over [0,1]→[0,1] it is the smoothstep 3t²-2t³.
func EaseInOut(t0, v0, t1, v1 float32) Keyframes {
	return NewKeyframes(
		Key{Time: t0, Value: v0},
		Key{Time: t1, Value: v1},
	)
}

// LinearKeys returns a two-key curve with constant slope.
func LinearKeys(t0, v0, t1, v1 float32) Keyframes {
	slope := float32(0)
	if t1 != t0 {
		slope = (v1 - v0) / (t1 - t0)
	}
	return NewKeyframes(
		Key{Time: t0, Value: v0, OutTangent: slope},
		Key{Time: t1, Value: v1, InTangent: slope},
	)
}

// Evaluate returns the curve value at t.
func (k Keyframes) Evaluate(t float32) float32 {
	switch len(k) {
	case 0:
		return 0
	case 1:
		return k[0].Value
	}

	first, last := k[0], k[len(k)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	// Find the segment containing t (keys are sorted)
	i := sort.Search(len(k), func(i int) bool { return k[i].Time > t }) - 1
	k0, k1 := k[i], k[i+1]

	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}

// Default is the transition curve used when none is configured.
func Default() Curve {
	return EaseInOut(0, 0, 1, 1)
}
