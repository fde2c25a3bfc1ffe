package physics

import (
	"math"

	"github.com/aquilax/go-perlin"

	"canvas-sims/internal/geom"
)

// Accelerator adjusts an entity's velocity before it moves.
type Accelerator interface {
	Accelerate(loc geom.IntPoint, vel geom.Vec, tick int) geom.Vec
}

// AcceleratorFunc adapts a plain function to Accelerator.
type AcceleratorFunc func(loc geom.IntPoint, vel geom.Vec, tick int) geom.Vec

func (f AcceleratorFunc) Accelerate(loc geom.IntPoint, vel geom.Vec, tick int) geom.Vec {
	return f(loc, vel, tick)
}

// NoOp returns the velocity untouched.
func NoOp() Accelerator {
	return AcceleratorFunc(func(_ geom.IntPoint, vel geom.Vec, _ int) geom.Vec { return vel })
}

// Gravity adds a constant per-tick acceleration.
func Gravity(g geom.Vec) Accelerator {
	return AcceleratorFunc(func(_ geom.IntPoint, vel geom.Vec, _ int) geom.Vec { return vel.Add(g) })
}

// Drag scales velocity by factor each tick; factors outside [0,1] are clamped.
func Drag(factor float64) Accelerator {
	f := geom.Clamp(0, 1, factor)
	return AcceleratorFunc(func(_ geom.IntPoint, vel geom.Vec, _ int) geom.Vec { return vel.Scale(f) })
}

// SpeedLimit caps the velocity magnitude at max.
func SpeedLimit(max float64) Accelerator {
	return AcceleratorFunc(func(_ geom.IntPoint, vel geom.Vec, _ int) geom.Vec {
		l := vel.Len()
		if l <= max || l == 0 {
			return vel
		}
		return vel.Scale(max / l)
	})
}

// NoiseField pushes entities along a Perlin flow field: the noise value at
// the entity's location picks a direction and strength scales the push.
type NoiseField struct {
	noise    *perlin.Perlin
	scale    float64
	strength float64
}

// NewNoiseField builds a flow field. scale is the spatial frequency applied
// to pixel coordinates.
func NewNoiseField(seed int64, scale, strength float64) *NoiseField {
	return &NoiseField{
		noise:    perlin.NewPerlin(2, 2, 3, seed),
		scale:    scale,
		strength: strength,
	}
}

// Angle returns the field direction at loc in [0, 2π].
func (n *NoiseField) Angle(loc geom.IntPoint) float64 {
	v := n.noise.Noise2D(float64(loc.X)*n.scale, float64(loc.Y)*n.scale)
	return (v + 1) / 2 * 2 * math.Pi
}

// At is the push the field applies at loc.
func (n *NoiseField) At(loc geom.IntPoint) geom.Vec {
	return geom.FromPolar(n.strength, n.Angle(loc))
}

func (n *NoiseField) Accelerate(loc geom.IntPoint, vel geom.Vec, _ int) geom.Vec {
	return vel.Add(n.At(loc))
}

// Chain applies accelerators in order.
func Chain(accels ...Accelerator) Accelerator {
	return AcceleratorFunc(func(loc geom.IntPoint, vel geom.Vec, tick int) geom.Vec {
		for _, a := range accels {
			vel = a.Accelerate(loc, vel, tick)
		}
		return vel
	})
}
