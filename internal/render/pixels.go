package render

import (
	"image"
	"image/color"
	"math"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/geom"
)

// PixelCanvas rasterizes primitives into a row-major RGBA byte buffer that
// can be uploaded to the GPU or encoded as an image.
type PixelCanvas struct {
	w, h int
	buf  []byte
}

// NewPixelCanvas allocates a transparent canvas of size w*h.
func NewPixelCanvas(w, h int) *PixelCanvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &PixelCanvas{w: w, h: h, buf: make([]byte, 4*w*h)}
}

func (pc *PixelCanvas) Size() (int, int) { return pc.w, pc.h }

// Bytes exposes the backing RGBA buffer. Callers must not retain it across
// draws if they need a stable copy.
func (pc *PixelCanvas) Bytes() []byte { return pc.buf }

// Image wraps the buffer as an *image.RGBA without copying.
func (pc *PixelCanvas) Image() *image.RGBA {
	return &image.RGBA{Pix: pc.buf, Stride: 4 * pc.w, Rect: image.Rect(0, 0, pc.w, pc.h)}
}

// At returns the pixel at (x, y), or transparent black outside the canvas.
func (pc *PixelCanvas) At(x, y int) colors.RGBA {
	if x < 0 || y < 0 || x >= pc.w || y >= pc.h {
		return colors.RGBA{}
	}
	base := 4 * (y*pc.w + x)
	return colors.RGBA{R: pc.buf[base], G: pc.buf[base+1], B: pc.buf[base+2], A: pc.buf[base+3]}
}

func (pc *PixelCanvas) Clear(c color.Color) {
	fillRGBA(pc.buf, colors.FromColor(c))
}

func (pc *PixelCanvas) FillRect(min, max geom.IntPoint, c color.Color) {
	col := colors.FromColor(c)
	x0, x1 := geom.ClampInt(0, pc.w, min.X), geom.ClampInt(0, pc.w, max.X)
	y0, y1 := geom.ClampInt(0, pc.h, min.Y), geom.ClampInt(0, pc.h, max.Y)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			pc.blend(x, y, col)
		}
	}
}

// FillCircle fills every pixel whose center lies within radius of center.
// Radii below half a pixel still light the pixel under the center.
func (pc *PixelCanvas) FillCircle(center geom.Point, radius float64, c color.Color) {
	if geom.Validate(center.X, center.Y, radius) != nil {
		return
	}
	col := colors.FromColor(c)
	if radius < 0.5 {
		p := geom.Floor(center)
		pc.blend(p.X, p.Y, col)
		return
	}
	r2 := radius * radius
	x0 := int(math.Floor(center.X - radius))
	x1 := int(math.Ceil(center.X + radius))
	y0 := int(math.Floor(center.Y - radius))
	y1 := int(math.Ceil(center.Y + radius))
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - center.Y
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - center.X
			if dx*dx+dy*dy <= r2 {
				pc.blend(x, y, col)
			}
		}
	}
}

// StrokePath draws the polyline through points. Widths up to one pixel use a
// DDA line; wider strokes stamp discs along each segment.
func (pc *PixelCanvas) StrokePath(points []geom.Point, width float64, c color.Color) {
	col := colors.FromColor(c)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if geom.Validate(a.X, a.Y, b.X, b.Y) != nil {
			continue
		}
		dx, dy := b.X-a.X, b.Y-a.Y
		steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
		if steps == 0 {
			steps = 1
		}
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			p := geom.Point{X: a.X + dx*t, Y: a.Y + dy*t}
			if width <= 1 {
				q := geom.Floor(p)
				pc.set(q.X, q.Y, col)
				continue
			}
			pc.FillCircle(p, width/2, col)
		}
	}
}

// DrawImage copies img onto the canvas with its top-left corner at at.
// Pixels are copied, not blended.
func (pc *PixelCanvas) DrawImage(img image.Image, at geom.IntPoint) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pc.set(at.X+x-b.Min.X, at.Y+y-b.Min.Y, colors.FromColor(img.At(x, y)))
		}
	}
}

func (pc *PixelCanvas) set(x, y int, c colors.RGBA) {
	if x < 0 || y < 0 || x >= pc.w || y >= pc.h {
		return
	}
	base := 4 * (y*pc.w + x)
	pc.buf[base+0] = c.R
	pc.buf[base+1] = c.G
	pc.buf[base+2] = c.B
	pc.buf[base+3] = c.A
}

// blend composites c over the existing pixel (non-premultiplied source over).
func (pc *PixelCanvas) blend(x, y int, c colors.RGBA) {
	if x < 0 || y < 0 || x >= pc.w || y >= pc.h {
		return
	}
	if c.A == 0xff {
		pc.set(x, y, c)
		return
	}
	if c.A == 0 {
		return
	}
	base := 4 * (y*pc.w + x)
	sa := uint32(c.A)
	inv := 255 - sa
	pc.buf[base+0] = uint8((uint32(c.R)*sa + uint32(pc.buf[base+0])*inv) / 255)
	pc.buf[base+1] = uint8((uint32(c.G)*sa + uint32(pc.buf[base+1])*inv) / 255)
	pc.buf[base+2] = uint8((uint32(c.B)*sa + uint32(pc.buf[base+2])*inv) / 255)
	pc.buf[base+3] = uint8(sa + uint32(pc.buf[base+3])*inv/255)
}

// fillRGBA sets every pixel in buf to c.
func fillRGBA(buf []byte, c colors.RGBA) {
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}
