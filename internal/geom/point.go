package geom

import "math"

// Point is a real-valued coordinate. Z is optional and zero for 2D work.
type Point struct {
	X, Y, Z float64
}

// IntPoint is a pixel or grid coordinate. The only way to obtain one from a
// Point is Round, so sub-pixel drift never leaks into addressing.
type IntPoint struct {
	X, Y int
}

// Origin is the zero IntPoint.
var Origin = IntPoint{}

// Round converts p to the nearest IntPoint (halves round away from zero).
func Round(p Point) IntPoint {
	return IntPoint{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Floor converts p to an IntPoint by flooring both components.
func Floor(p Point) IntPoint {
	return IntPoint{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Point widens the receiver to a real-valued Point.
func (p IntPoint) Point() Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Add returns p + q.
func (p IntPoint) Add(q IntPoint) IntPoint {
	return IntPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Scale multiplies every component by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X*(1-t) + b.X*t,
		Y: a.Y*(1-t) + b.Y*t,
		Z: a.Z*(1-t) + b.Z*t,
	}
}

// PointOnLine returns the rounded point a fraction t of the way from start to end.
func PointOnLine(start, end IntPoint, t float64) IntPoint {
	return Round(Lerp(start.Point(), end.Point(), t))
}

// StepBetween returns begin advanced toward end by numSteps/stepsTaken of the span.
func StepBetween(begin, end float64, numSteps, stepsTaken float64) float64 {
	return begin + (end-begin)*(numSteps/stepsTaken)
}

// Index2D maps p to a row-major linear index.
func Index2D(p IntPoint, width int) int {
	return p.Y*width + p.X
}

// Point2D maps a row-major linear index back to its coordinate.
func Point2D(index, width int) IntPoint {
	return IntPoint{X: index % width, Y: index / width}
}
