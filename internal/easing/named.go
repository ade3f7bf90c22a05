package easing

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

// DefaultName names the default curve.
const DefaultName = "ease_in_out"

var named = map[string]func(float64) float64{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"out_bounce":   ease.OutBounce,
}

// FromEase wraps a float64 easing function.
func FromEase(fn func(float64) float64) Curve {
	return Func(func(t float32) float32 {
		return float32(fn(float64(Clamp01(t))))
	})
}

// Named looks up a curve by name. The empty string and DefaultName return
// the Hermite ease-in/ease-out curve.
func Named(name string) (Curve, error) {
	if name == "" || name == DefaultName {
		return Default(), nil
	}
	fn, ok := named[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing curve %q", name)
	}
	return FromEase(fn), nil
}

// Names lists every curve accepted by Named, sorted.
func Names() []string {
	names := make([]string, 0, len(named)+1)
	names = append(names, DefaultName)
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clamp01 limits t to [0,1].
func Clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
