// Package dynpoint animates points as pure functions of simulation time.
// A DynamicPoint holds only the parameters it was built with.
package dynpoint

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"

	"canvas-sims/internal/geom"
	"canvas-sims/internal/modifier"
)

// DynamicPoint yields a location for any simulation time t.
type DynamicPoint interface {
	PointAt(t float64) geom.Point
}

// Func adapts a plain function to DynamicPoint.
type Func func(t float64) geom.Point

func (f Func) PointAt(t float64) geom.Point { return f(t) }

func checkCycle(name string, v float64) error {
	if err := geom.Validate(v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if v <= 0 {
		return fmt.Errorf("%s %v must be positive", name, v)
	}
	return nil
}

// progress returns (t mod cycle)/cycle in [0, 1).
func progress(t, cycle float64) float64 {
	u := math.Mod(t, cycle) / cycle
	if u < 0 {
		u++
	}
	return u
}

// Static never moves.
func Static(p geom.Point) DynamicPoint {
	return Func(func(float64) geom.Point { return p })
}

// Linear moves from start to end over cycle ticks and jumps back to start.
func Linear(start, end geom.Point, cycle float64) (DynamicPoint, error) {
	if err := checkCycle("cycle", cycle); err != nil {
		return nil, err
	}
	return Func(func(t float64) geom.Point {
		return geom.Lerp(start, end, progress(t, cycle))
	}), nil
}

// Circling orbits center as
// center + radius*(sin(t mod period)/period, cos(t mod period)/period).
func Circling(center geom.Point, period, radius float64) (DynamicPoint, error) {
	if err := checkCycle("period", period); err != nil {
		return nil, err
	}
	if err := geom.Validate(radius); err != nil {
		return nil, fmt.Errorf("radius: %w", err)
	}
	sin, err := modifier.SinWave(period)
	if err != nil {
		return nil, err
	}
	cos, err := modifier.CosWave(period)
	if err != nil {
		return nil, err
	}
	return Func(func(t float64) geom.Point {
		return geom.Point{
			X: center.X + radius*sin.Value(t)/period,
			Y: center.Y + radius*cos.Value(t)/period,
			Z: center.Z,
		}
	}), nil
}

// Scaled multiplies base by the modifier value at t and floors the result.
func Scaled(m modifier.Modifier, base geom.Point) DynamicPoint {
	return Func(func(t float64) geom.Point {
		v := m.Value(t)
		return geom.Point{
			X: math.Floor(base.X * v),
			Y: math.Floor(base.Y * v),
			Z: math.Floor(base.Z * v),
		}
	})
}

// Eased moves from start to end along an easing curve, restarting every
// cycle ticks.
func Eased(start, end geom.Point, cycle float64, fn ease.TweenFunc) (DynamicPoint, error) {
	m, err := modifier.Eased(fn, 0, 1, cycle)
	if err != nil {
		return nil, err
	}
	return Func(func(t float64) geom.Point {
		return geom.Lerp(start, end, m.Value(t))
	}), nil
}

// Offset translates p by d.
func Offset(p DynamicPoint, d geom.Point) DynamicPoint {
	return Func(func(t float64) geom.Point { return p.PointAt(t).Add(d) })
}
