package tree

import (
	"errors"
	"fmt"

	"canvas-sims/internal/dynpoint"
	"canvas-sims/internal/geom"
	"canvas-sims/pkg/core"
)

// MaxGeneratedNodes bounds Generate; depth and branch factor grow trees
// exponentially.
const MaxGeneratedNodes = 1 << 18

// ErrTooLarge reports a generation request that would exceed its node cap.
var ErrTooLarge = errors.New("tree too large")

// IntSource yields an integer, either fixed or freshly drawn on every call.
type IntSource interface {
	Int(rng *core.RNG) (int, error)
}

type fixed int

// Fixed always yields n.
func Fixed(n int) IntSource { return fixed(n) }

func (f fixed) Int(*core.RNG) (int, error) { return int(f), nil }

type randomInt struct{ min, max int }

// RandomInt draws from [min, max) on every call.
func RandomInt(min, max int) IntSource { return randomInt{min: min, max: max} }

func (r randomInt) Int(rng *core.RNG) (int, error) { return rng.IntRange(r.min, r.max) }

// Generate grows a random point tree from root. depth is drawn once; branch
// is drawn once per parent, so the fan-out can vary between nodes. Every
// child is an independent uniform draw in [0,xScale)×[0,yScale), unrelated
// to its parent's position.
func Generate(rng *core.RNG, root geom.Point, depth, branch IntSource, xScale, yScale float64) (*Tree[geom.Point], error) {
	if err := geom.Validate(xScale, yScale); err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	d, err := depth.Int(rng)
	if err != nil {
		return nil, fmt.Errorf("depth: %w", err)
	}
	if d < 0 {
		return nil, fmt.Errorf("%w: depth %d", core.ErrInvalidRange, d)
	}
	t := New(root)
	if err := addLevels(t, rng, t.Root(), d, branch, xScale, yScale); err != nil {
		return nil, err
	}
	return t, nil
}

func addLevels(t *Tree[geom.Point], rng *core.RNG, parent NodeID, levels int, branch IntSource, xScale, yScale float64) error {
	if levels <= 0 {
		return nil
	}
	n, err := branch.Int(rng)
	if err != nil {
		return fmt.Errorf("branch factor: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("%w: branch factor %d", core.ErrInvalidRange, n)
	}
	if t.Len()+n > MaxGeneratedNodes {
		return fmt.Errorf("%w: more than %d nodes", ErrTooLarge, MaxGeneratedNodes)
	}
	first := NodeID(t.Len())
	for i := 0; i < n; i++ {
		x, err := rng.FloatRange(0, xScale)
		if err != nil {
			return err
		}
		y, err := rng.FloatRange(0, yScale)
		if err != nil {
			return err
		}
		if _, err := t.AddChild(parent, geom.Point{X: x, Y: y}); err != nil {
			return err
		}
	}
	for id := first; id < first+NodeID(n); id++ {
		if err := addLevels(t, rng, id, levels-1, branch, xScale, yScale); err != nil {
			return err
		}
	}
	return nil
}

// CirclingSpec configures Animate. Each node gets its own period and radius,
// jittered uniformly by up to ± the variance.
type CirclingSpec struct {
	Period         float64
	PeriodVariance float64
	Radius         float64
	RadiusVariance float64
}

// Animate turns every point into a DynamicPoint circling it.
func Animate(t *Tree[geom.Point], rng *core.RNG, spec CirclingSpec) (*Tree[dynpoint.DynamicPoint], error) {
	return TryConvert(t, func(p geom.Point) (dynpoint.DynamicPoint, error) {
		period := spec.Period + rng.Spread(spec.PeriodVariance)
		radius := spec.Radius + rng.Spread(spec.RadiusVariance)
		return dynpoint.Circling(p, period, radius)
	})
}

// Snapshot evaluates every dynamic point at time tm.
func Snapshot(t *Tree[dynpoint.DynamicPoint], tm float64) *Tree[geom.Point] {
	return Convert(t, func(dp dynpoint.DynamicPoint) geom.Point { return dp.PointAt(tm) })
}
