package particle

import (
	"math"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/modifier"
	"canvas-sims/internal/raster"
)

// ColorLookup picks an entity's color from where it is.
type ColorLookup interface {
	ColorAt(loc geom.IntPoint) (colors.RGBA, error)
}

type staticColor colors.RGBA

// StaticColor always returns c.
func StaticColor(c colors.RGBA) ColorLookup { return staticColor(c) }

func (s staticColor) ColorAt(geom.IntPoint) (colors.RGBA, error) { return colors.RGBA(s), nil }

type imageColor struct {
	img    *raster.Image
	spread float64
}

// ImageColor samples img at the entity location divided by spread, so a
// spread of 2 maps a canvas twice the image size onto it. Spreads below 1
// are treated as 1.
func ImageColor(img *raster.Image, spread float64) ColorLookup {
	if !(spread >= 1) {
		spread = 1
	}
	return imageColor{img: img, spread: spread}
}

func (c imageColor) ColorAt(loc geom.IntPoint) (colors.RGBA, error) {
	p := geom.Floor(loc.Point().Scale(1 / c.spread))
	return c.img.ColorAt(p)
}

// SizeFunc picks an entity's radius.
type SizeFunc interface {
	SizeAt(loc geom.IntPoint, tick int) float64
}

type staticSize float64

// StaticSize always returns s.
func StaticSize(s float64) SizeFunc { return staticSize(s) }

func (s staticSize) SizeAt(geom.IntPoint, int) float64 { return float64(s) }

type pulseSize struct {
	base float64
	m    modifier.Modifier
}

// PulseSize scales base by |m(tick)|.
func PulseSize(base float64, m modifier.Modifier) SizeFunc {
	return pulseSize{base: base, m: m}
}

func (p pulseSize) SizeAt(_ geom.IntPoint, tick int) float64 {
	return p.base * math.Abs(p.m.Value(float64(tick)))
}

// LuminanceSampler reports the complement luminance under a location.
// *raster.Image satisfies it.
type LuminanceSampler interface {
	ComplementLuminanceAt(loc geom.IntPoint) (float64, error)
}
