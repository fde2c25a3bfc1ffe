// Package render defines the drawing surface sims paint onto and the
// concrete surfaces the shells use: an in-memory pixel canvas, a recorder for
// tests and headless runs, and (behind the ebiten tag) a GPU uploader.
package render

import (
	"image"
	"image/color"
	"math"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/geom"
)

// Canvas is the 2D drawing surface a sim draws one frame onto.
type Canvas interface {
	Size() (w, h int)
	Clear(c color.Color)
	FillRect(min, max geom.IntPoint, c color.Color)
	FillCircle(center geom.Point, radius float64, c color.Color)
	StrokePath(points []geom.Point, width float64, c color.Color)
	DrawImage(img image.Image, at geom.IntPoint)
}

// OpKind names a drawing primitive.
type OpKind int

const (
	OpClear OpKind = iota
	OpFillRect
	OpFillCircle
	OpStrokePath
	OpDrawImage
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFillRect:
		return "fill-rect"
	case OpFillCircle:
		return "fill-circle"
	case OpStrokePath:
		return "stroke-path"
	case OpDrawImage:
		return "draw-image"
	default:
		return "unknown"
	}
}

// Op is one recorded primitive. Points holds the rect corners, the circle
// center or the path vertices depending on Kind.
type Op struct {
	Kind   OpKind
	Points []geom.Point
	Radius float64
	Width  float64
	Color  colors.RGBA
	Image  image.Image
}

// Recorder is a Canvas that keeps the ordered list of primitives it was asked
// to draw. It never rasterizes anything.
type Recorder struct {
	w, h int
	ops  []Op
}

// NewRecorder returns a Recorder reporting the given surface size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) Clear(c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpClear, Color: colors.FromColor(c)})
}

func (r *Recorder) FillRect(min, max geom.IntPoint, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, Points: []geom.Point{min.Point(), max.Point()}, Color: colors.FromColor(c)})
}

func (r *Recorder) FillCircle(center geom.Point, radius float64, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpFillCircle, Points: []geom.Point{center}, Radius: radius, Color: colors.FromColor(c)})
}

func (r *Recorder) StrokePath(points []geom.Point, width float64, c color.Color) {
	path := make([]geom.Point, len(points))
	copy(path, points)
	r.ops = append(r.ops, Op{Kind: OpStrokePath, Points: path, Width: width, Color: colors.FromColor(c)})
}

func (r *Recorder) DrawImage(img image.Image, at geom.IntPoint) {
	r.ops = append(r.ops, Op{Kind: OpDrawImage, Points: []geom.Point{at.Point()}, Image: img})
}

// Ops returns the primitives recorded since the last Reset.
func (r *Recorder) Ops() []Op { return r.ops }

// Count returns how many primitives of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Reset drops the recorded primitives, keeping the backing storage.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }

// Replay draws the recorded primitives onto dst in order.
func (r *Recorder) Replay(dst Canvas) {
	for _, op := range r.ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Color)
		case OpFillRect:
			dst.FillRect(geom.Round(op.Points[0]), geom.Round(op.Points[1]), op.Color)
		case OpFillCircle:
			dst.FillCircle(op.Points[0], op.Radius, op.Color)
		case OpStrokePath:
			dst.StrokePath(op.Points, op.Width, op.Color)
		case OpDrawImage:
			dst.DrawImage(op.Image, geom.Round(op.Points[0]))
		}
	}
}

// QuadCurve flattens the quadratic Bézier from p0 to p1 with control point
// ctrl into segments+1 points. Fewer than one segment yields the endpoints.
func QuadCurve(p0, ctrl, p1 geom.Point, segments int) []geom.Point {
	if segments < 1 {
		return []geom.Point{p0, p1}
	}
	pts := make([]geom.Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		a := geom.Lerp(p0, ctrl, t)
		b := geom.Lerp(ctrl, p1, t)
		pts = append(pts, geom.Lerp(a, b, t))
	}
	return pts
}

// CurveSegments picks a flattening resolution for a curve spanning length
// pixels.
func CurveSegments(length float64) int {
	n := int(math.Ceil(length / 8))
	if n < 2 {
		return 2
	}
	if n > 32 {
		return 32
	}
	return n
}
