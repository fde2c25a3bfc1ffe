//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Painter uploads a PixelCanvas into a single ebiten image each frame.
type Painter struct {
	w, h int
	img  *ebiten.Image
}

// NewPainter allocates a painter for a canvas of size w*h.
func NewPainter(w, h int) *Painter {
	return &Painter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Blit uploads the canvas pixels into the painter image and draws it scaled.
func (p *Painter) Blit(dst *ebiten.Image, src *PixelCanvas, scale int) {
	if w, h := src.Size(); w != p.w || h != p.h {
		return
	}
	p.img.WritePixels(src.Bytes())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *Painter) Size() (int, int) { return p.w, p.h }
