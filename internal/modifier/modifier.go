// Package modifier provides time-varying scalar factors used to animate a
// base value, e.g. oscillating a size or position around a fixed point.
package modifier

import (
	"fmt"
	"math"
	"sort"

	"github.com/tanema/gween/ease"

	"canvas-sims/internal/geom"
)

// Modifier maps simulation time to a factor.
type Modifier interface {
	Value(t float64) float64
}

// Func adapts a plain function to Modifier.
type Func func(t float64) float64

func (f Func) Value(t float64) float64 { return f(t) }

func checkPeriod(period float64) error {
	if err := geom.Validate(period); err != nil {
		return fmt.Errorf("period: %w", err)
	}
	if period <= 0 {
		return fmt.Errorf("period %v must be positive", period)
	}
	return nil
}

// SinWave returns sin(t mod period).
func SinWave(period float64) (Modifier, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	return Func(func(t float64) float64 { return math.Sin(math.Mod(t, period)) }), nil
}

// CosWave returns cos(t mod period).
func CosWave(period float64) (Modifier, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	return Func(func(t float64) float64 { return math.Cos(math.Mod(t, period)) }), nil
}

// Constant always returns v.
func Constant(v float64) Modifier {
	return Func(func(float64) float64 { return v })
}

// Triangle rises linearly from 0 to 1 over half a cycle and falls back to 0.
func Triangle(cycle float64) (Modifier, error) {
	if err := checkPeriod(cycle); err != nil {
		return nil, err
	}
	return Func(func(t float64) float64 {
		u := math.Mod(t, cycle) / cycle
		if u < 0 {
			u++
		}
		return 1 - math.Abs(2*u-1)
	}), nil
}

// Affine returns m scaled by gain and shifted by offset.
func Affine(m Modifier, gain, offset float64) Modifier {
	return Func(func(t float64) float64 { return m.Value(t)*gain + offset })
}

// Eased walks from 'from' to 'to' along fn once per cycle, restarting at
// 'from' when the cycle wraps.
func Eased(fn ease.TweenFunc, from, to, cycle float64) (Modifier, error) {
	if err := checkPeriod(cycle); err != nil {
		return nil, err
	}
	if fn == nil {
		fn = ease.Linear
	}
	return Func(func(t float64) float64 {
		u := math.Mod(t, cycle)
		if u < 0 {
			u += cycle
		}
		return float64(fn(float32(u), float32(from), float32(to-from), float32(cycle)))
	}), nil
}

var easings = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"out-bounce":     ease.OutBounce,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
}

// Easing looks up an easing curve by its config name.
func Easing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (have %v)", name, EasingNames())
	}
	return fn, nil
}

// EasingNames lists the accepted easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
