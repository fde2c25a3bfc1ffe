package geom

import "math"

// Vec is a 2D cartesian vector, used for velocities and surface normals.
type Vec struct {
	X, Y float64
}

// Polar is a velocity expressed as speed and heading in radians.
type Polar struct {
	Speed float64
	Theta float64
}

// Unit normals of the four axis-aligned walls.
var (
	PosX = Vec{X: 1}
	NegX = Vec{X: -1}
	PosY = Vec{Y: 1}
	NegY = Vec{Y: -1}
)

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{X: v.X + w.X, Y: v.Y + w.Y} }

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec { return Vec{X: v.X - w.X, Y: v.Y - w.Y} }

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec { return Vec{X: v.X * s, Y: v.Y * s} }

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 { return v.X*w.X + v.Y*w.Y }

// Len returns the euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Reflect returns incoming mirrored off a surface with the given unit normal:
// r = d - 2(d·n)n. Both arguments are values and are left untouched.
// Reflect does not check its inputs; NaN or Inf propagate into the result.
// Use SafeReflect for unchecked data.
func Reflect(incoming, unitNormal Vec) Vec {
	return incoming.Sub(unitNormal.Scale(2 * incoming.Dot(unitNormal)))
}

// SafeReflect is Reflect behind the Validate gate.
func SafeReflect(incoming, unitNormal Vec) (Vec, error) {
	if err := Validate(incoming.X, incoming.Y, unitNormal.X, unitNormal.Y); err != nil {
		return Vec{}, err
	}
	return Reflect(incoming, unitNormal), nil
}

// Vec converts the polar velocity to cartesian form.
func (p Polar) Vec() Vec {
	return FromPolar(p.Speed, p.Theta)
}

// FromPolar returns (speed·cos θ, speed·sin θ).
func FromPolar(speed, theta float64) Vec {
	return Vec{X: speed * math.Cos(theta), Y: speed * math.Sin(theta)}
}

// FromPolarToXY returns the polar displacement rounded to whole pixels.
func FromPolarToXY(speed, theta float64) (IntPoint, error) {
	if err := Validate(speed, theta); err != nil {
		return IntPoint{}, err
	}
	v := FromPolar(speed, theta)
	return Round(Point{X: v.X, Y: v.Y}), nil
}
