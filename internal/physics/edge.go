// Package physics resolves entity motion against the domain rectangle and
// supplies the velocity strategies moving entities are built from.
package physics

import (
	"fmt"

	"canvas-sims/internal/geom"
)

// ResolveEdge folds loc back into [min, max] and reflects vel off every edge
// that was crossed. Each axis gets one fold against max followed by one fold
// against min; an overshoot wider than the domain can survive both folds.
// A location already inside the rectangle is returned unchanged together with
// the unchanged velocity. A NaN or infinite velocity is rejected with
// geom.ErrInvalidNumber.
func ResolveEdge(loc geom.IntPoint, vel geom.Vec, min, max geom.IntPoint) (geom.IntPoint, geom.Vec, error) {
	if err := geom.Validate(vel.X, vel.Y); err != nil {
		return loc, vel, fmt.Errorf("velocity: %w", err)
	}
	out := geom.IntPoint{
		X: geom.LimitToBoundary(geom.LimitToBoundary(loc.X, max.X, geom.Greater), min.X, geom.Less),
		Y: geom.LimitToBoundary(geom.LimitToBoundary(loc.Y, max.Y, geom.Greater), min.Y, geom.Less),
	}
	if out == loc {
		return loc, vel, nil
	}
	var normals []geom.Vec
	switch {
	case out.X < loc.X:
		normals = append(normals, geom.NegX)
	case out.X > loc.X:
		normals = append(normals, geom.PosX)
	}
	switch {
	case out.Y < loc.Y:
		normals = append(normals, geom.NegY)
	case out.Y > loc.Y:
		normals = append(normals, geom.PosY)
	}
	for _, n := range normals {
		var err error
		if vel, err = geom.SafeReflect(vel, n); err != nil {
			return loc, vel, err
		}
	}
	return out, vel, nil
}

// EdgeAvoider keeps a moving entity inside its domain.
type EdgeAvoider interface {
	Avoid(loc geom.IntPoint, vel geom.Vec) (geom.IntPoint, geom.Vec, error)
}

type bounce struct {
	min, max geom.IntPoint
}

// NinetyDegreeBounce reflects off the edges of [min, max] using ResolveEdge.
func NinetyDegreeBounce(min, max geom.IntPoint) EdgeAvoider {
	return bounce{min: min, max: max}
}

func (b bounce) Avoid(loc geom.IntPoint, vel geom.Vec) (geom.IntPoint, geom.Vec, error) {
	return ResolveEdge(loc, vel, b.min, b.max)
}

type wrap struct {
	min, max geom.IntPoint
}

// Wrap teleports entities leaving one edge to the opposite edge, keeping
// their velocity.
func Wrap(min, max geom.IntPoint) EdgeAvoider {
	return wrap{min: min, max: max}
}

func (w wrap) Avoid(loc geom.IntPoint, vel geom.Vec) (geom.IntPoint, geom.Vec, error) {
	return geom.IntPoint{X: wrapAxis(loc.X, w.min.X, w.max.X), Y: wrapAxis(loc.Y, w.min.Y, w.max.Y)}, vel, nil
}

func wrapAxis(v, min, max int) int {
	span := max - min + 1
	if span <= 0 {
		return min
	}
	v = (v - min) % span
	if v < 0 {
		v += span
	}
	return v + min
}
