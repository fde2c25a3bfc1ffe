package raster

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"

	"canvas-sims/internal/colors"
)

// Perlin parameters used for generated source images.
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOcts  = 3
	noiseScale = 0.015
)

// Noise renders a w*h grayscale Perlin noise field, tinted by palette when
// one is supplied. The result stands in for a source image when none is
// configured.
func Noise(w, h int, seed int64, palette colors.Palette) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedRaster, w, h)
	}
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOcts, seed)
	px := make([]colors.RGBA, w*h)
	for i := range px {
		x, y := i%w, i/w
		v := (p.Noise2D(float64(x)*noiseScale, float64(y)*noiseScale) + 1) / 2
		v = math.Max(0, math.Min(1, v))
		px[i] = shade(v, palette)
	}
	return newImage(w, h, px), nil
}

// shade maps v in [0,1] to a gray level, or onto a ramp through palette.
func shade(v float64, palette colors.Palette) colors.RGBA {
	if len(palette) < 2 {
		g := uint8(v*255 + 0.5)
		return colors.RGBA{R: g, G: g, B: g, A: 0xff}
	}
	pos := v * float64(len(palette)-1)
	i := int(pos)
	if i >= len(palette)-1 {
		return palette[len(palette)-1]
	}
	return colors.Blend(palette[i], palette[i+1], pos-float64(i))
}
