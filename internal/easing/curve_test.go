package easing

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestDefaultEndpoints(t *testing.T) {
	c := Default()
	if got := c.Evaluate(0); got != 0 {
		t.Errorf("Evaluate(0) = %v, want 0", got)
	}
	if got := c.Evaluate(1); got != 1 {
		t.Errorf("Evaluate(1) = %v, want 1", got)
	}
}

func TestDefaultIsSmoothstep(t *testing.T) {
	c := Default()
	for _, x := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		want := 3*x*x - 2*x*x*x
		if got := c.Evaluate(x); !approx(got, want) {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestDefaultSymmetric(t *testing.T) {
	c := Default()
	for _, x := range []float32{0.1, 0.3, 0.45} {
		a := c.Evaluate(x)
		b := 1 - c.Evaluate(1-x)
		if !approx(a, b) {
			t.Errorf("curve not symmetric at %v: %v vs %v", x, a, b)
		}
	}
}

func TestKeyframesClamp(t *testing.T) {
	c := EaseInOut(0, 0, 1, 1)
	if got := c.Evaluate(-0.5); got != 0 {
		t.Errorf("Evaluate(-0.5) = %v, want 0", got)
	}
	if got := c.Evaluate(1.7); got != 1 {
		t.Errorf("Evaluate(1.7) = %v, want 1", got)
	}
}

func TestLinearKeys(t *testing.T) {
	c := LinearKeys(0, 0, 2, 1)
	for _, x := range []float32{0, 0.5, 1, 1.5, 2} {
		if got := c.Evaluate(x); !approx(got, x/2) {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, x/2)
		}
	}
}

func TestKeyframesMultiSegment(t *testing.T) {
	// Out of order on purpose: NewKeyframes sorts
	c := NewKeyframes(
		Key{Time: 1, Value: 1},
		Key{Time: 0, Value: 0},
		Key{Time: 0.5, Value: 0.8},
	)
	if got := c.Evaluate(0.5); !approx(got, 0.8) {
		t.Errorf("Evaluate(0.5) = %v, want 0.8", got)
	}
	if got := c.Evaluate(0.25); got <= 0 || got >= 0.8 {
		t.Errorf("Evaluate(0.25) = %v, want in (0, 0.8)", got)
	}
}

func TestKeyframesDegenerate(t *testing.T) {
	var empty Keyframes
	if got := empty.Evaluate(0.5); got != 0 {
		t.Errorf("empty curve = %v, want 0", got)
	}
	single := NewKeyframes(Key{Time: 0.2, Value: 0.7})
	if got := single.Evaluate(0.9); got != 0.7 {
		t.Errorf("single key curve = %v, want 0.7", got)
	}
}
