package colors

import "canvas-sims/internal/geom"

// Luminance weights channels by perceived brightness (Rec. 709).
func Luminance(r, g, b float64) (float64, error) {
	if err := geom.Validate(r, g, b); err != nil {
		return 0, err
	}
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}

// Luminance returns the perceived brightness of c in [0, 255].
func (c RGB) Luminance() float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// Luminance ignores alpha.
func (c RGBA) Luminance() float64 {
	return c.Opaque().Luminance()
}

// ComplementLuminance maps brightness to [0, 1], dark colors near 1.
func ComplementLuminance(c RGBA) float64 {
	return 1 - c.Luminance()/255
}
