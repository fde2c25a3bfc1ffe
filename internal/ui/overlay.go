//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/core"
	"canvas-sims/internal/raster"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type sourceProvider interface {
	Source() *raster.Image
}

type flowFieldProvider interface {
	FlowAt(x, y float64) (float64, float64)
}

// Overlay draws optional debugging visuals on top of the base simulation:
// the source image (1), its complement-luminance mask (2) and the flow
// field (3).
type Overlay struct {
	sim      core.Sim
	scale    int
	showSrc  bool
	showLum  bool
	showFlow bool

	src     *raster.Image
	srcImg  *ebiten.Image
	lumImg  *ebiten.Image
	pixel   *ebiten.Image
	samples []flowSample
	cacheW  int
	cacheH  int
	span    float64
}

type flowSample struct {
	cx, cy float64
	sx, sy float64
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// SetSim points the overlay at a rebuilt simulation.
func (o *Overlay) SetSim(sim core.Sim) {
	o.sim = sim
	o.samples = o.samples[:0]
	o.cacheW, o.cacheH = 0, 0
}

// Update toggles layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showSrc = !o.showSrc
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showLum = !o.showLum
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showFlow = !o.showFlow
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if provider, ok := o.sim.(sourceProvider); ok && (o.showSrc || o.showLum) {
		if src := provider.Source(); src != nil {
			o.ensureSource(src)
			if o.showSrc {
				o.drawSource(screen, o.srcImg, size)
			}
			if o.showLum {
				o.drawSource(screen, o.lumImg, size)
			}
		}
	}
	if o.showFlow {
		if provider, ok := o.sim.(flowFieldProvider); ok {
			o.drawFlowField(screen, provider, size)
		}
	}
}

// ensureSource rebuilds the cached images when the sim swaps its source.
func (o *Overlay) ensureSource(src *raster.Image) {
	if src == o.src && o.srcImg != nil {
		return
	}
	const (
		srcAlpha = 150
		maxAlpha = 170.0
	)
	lumTint := colors.RGBA{R: 255, G: 120, B: 40, A: 255}
	total := src.Width * src.Height
	srcBuf := make([]byte, 4*total)
	lumBuf := make([]byte, 4*total)
	for i := 0; i < total; i++ {
		c := src.Pixels[i]
		base := i * 4
		// Premultiplied, as ebiten expects.
		srcBuf[base+0] = premultiply(c.R, srcAlpha)
		srcBuf[base+1] = premultiply(c.G, srcAlpha)
		srcBuf[base+2] = premultiply(c.B, srcAlpha)
		srcBuf[base+3] = srcAlpha

		lum, err := src.ComplementLuminanceAt(src.Location(i))
		if err != nil || lum <= 0 {
			continue
		}
		alpha := uint8(math.Round(maxAlpha * clamp01(lum)))
		lumBuf[base+0] = premultiply(lumTint.R, alpha)
		lumBuf[base+1] = premultiply(lumTint.G, alpha)
		lumBuf[base+2] = premultiply(lumTint.B, alpha)
		lumBuf[base+3] = alpha
	}
	if o.srcImg == nil || o.srcImg.Bounds().Dx() != src.Width || o.srcImg.Bounds().Dy() != src.Height {
		o.srcImg = ebiten.NewImage(src.Width, src.Height)
		o.lumImg = ebiten.NewImage(src.Width, src.Height)
	}
	o.srcImg.WritePixels(srcBuf)
	o.lumImg.WritePixels(lumBuf)
	o.src = src
}

// drawSource fits img inside the sim view, centered.
func (o *Overlay) drawSource(screen, img *ebiten.Image, size core.Size) {
	b := img.Bounds()
	fit := math.Min(float64(size.W)/float64(b.Dx()), float64(size.H)/float64(b.Dy()))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(fit, fit)
	op.GeoM.Translate((float64(size.W)-fit*float64(b.Dx()))/2, (float64(size.H)-fit*float64(b.Dy()))/2)
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(img, op)
}

func (o *Overlay) drawFlowField(screen *ebiten.Image, provider flowFieldProvider, size core.Size) {
	if !o.ensureSamples(size) {
		return
	}
	const (
		calmThreshold = 1e-3
		headAngle     = math.Pi / 6
	)
	scale := float64(o.scale)
	length := o.span * 0.6
	headLength := math.Min(length*0.3, scale*4.5)
	tailLength := length * 0.4

	var strongest float64
	for _, s := range o.samples {
		strongest = math.Max(strongest, math.Hypot(provider.FlowAt(s.cx, s.cy)))
	}
	for _, s := range o.samples {
		vx, vy := provider.FlowAt(s.cx, s.cy)
		speed := math.Hypot(vx, vy)
		if speed < calmThreshold || strongest == 0 {
			o.drawPoint(screen, s.sx, s.sy, math.Max(scale*0.75, o.span*0.18), color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}
		nx, ny := vx/speed, vy/speed
		normalized := speed / strongest
		tipX := s.sx + nx*(length-tailLength)
		tipY := s.sy + ny*(length-tailLength)
		tailX := s.sx - nx*tailLength
		tailY := s.sy - ny*tailLength
		thickness := math.Max(1, scale*(0.65+0.4*normalized))
		col := arrowColor(normalized)
		o.drawLine(screen, tailX, tailY, tipX-nx*headLength, tipY-ny*headLength, thickness, col)

		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness*0.85, col)
	}
}

func (o *Overlay) ensureSamples(size core.Size) bool {
	if o.cacheW == size.W && o.cacheH == size.H && len(o.samples) > 0 {
		return true
	}
	const (
		targetSamples = 360.0
		minSpacing    = 6
		maxSpacing    = 24
	)
	spacing := int(math.Sqrt(float64(size.W*size.H) / targetSamples))
	spacing = max(minSpacing, min(maxSpacing, spacing))

	countX := max(1, (size.W+spacing-1)/spacing)
	countY := max(1, (size.H+spacing-1)/spacing)
	startX := max(0, (size.W-1-(countX-1)*spacing)/2)
	startY := max(0, (size.H-1-(countY-1)*spacing)/2)

	o.samples = o.samples[:0]
	for yi := 0; yi < countY; yi++ {
		cy := float64(min(size.H-1, startY+yi*spacing)) + 0.5
		for xi := 0; xi < countX; xi++ {
			cx := float64(min(size.W-1, startX+xi*spacing)) + 0.5
			o.samples = append(o.samples, flowSample{cx: cx, cy: cy, sx: cx * float64(o.scale), sy: cy * float64(o.scale)})
		}
	}
	o.cacheW, o.cacheH = size.W, size.H
	o.span = float64(spacing * o.scale)
	return len(o.samples) > 0
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	tint(op, col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	tint(op, col)
	screen.DrawImage(o.pixel, op)
}

// tint colors the white pixel image with a straight-alpha color.
func tint(op *ebiten.DrawImageOptions, col color.RGBA) {
	a := float32(col.A) / 255
	op.ColorScale.Scale(float32(col.R)/255*a, float32(col.G)/255*a, float32(col.B)/255*a, a)
}

func arrowColor(t float64) color.RGBA {
	lo := colors.RGBA{R: 80, G: 170, B: 230, A: 150}
	hi := colors.RGBA{R: 150, G: 240, B: 250, A: 240}
	c := colors.Blend(lo, hi, clamp01(t))
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func premultiply(v, alpha uint8) uint8 {
	return uint8(math.Round(float64(v) * float64(alpha) / 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
