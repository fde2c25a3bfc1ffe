package colors

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"canvas-sims/pkg/core"
)

// Palette is an ordered set of colors a sim draws from.
type Palette []RGBA

// PaletteFromNumbers builds an opaque palette from packed 0xRRGGBB values.
func PaletteFromNumbers(values ...uint64) Palette {
	p := make(Palette, len(values))
	for i, v := range values {
		p[i] = RGBFromNumber(v).WithAlpha(0xff)
	}
	return p
}

// Random picks a palette entry. An empty palette yields opaque black.
func (p Palette) Random(rng *core.RNG) RGBA {
	idx := rng.Pick(len(p))
	if idx < 0 {
		return RGBA{A: 0xff}
	}
	return p[idx]
}

// Presets are the stock palettes, indexed by the "palette" sim option.
var Presets = []Palette{
	PaletteFromNumbers(0xf3b700, 0xfaa300, 0xe57c04, 0xff6201, 0xf63e02),
	PaletteFromNumbers(0xed6a5a, 0xf4f1bb, 0x9bc1bc, 0x5ca4a9, 0xe6ebe0),
	PaletteFromNumbers(0x50514f, 0xf25f5c, 0xffe066, 0x247ba0, 0x70c1b3),
	PaletteFromNumbers(0xedc4b3, 0xe6b8a2, 0xdeab90, 0xd69f7e, 0xcd9777, 0xc38e70, 0xb07d62, 0x9d6b53, 0x8a5a44, 0x774936),
	PaletteFromNumbers(0x673c4f, 0x7f557d, 0x726e97, 0x7698b3, 0x83b5d1),
	PaletteFromNumbers(0xe8aeb7, 0xb8e1ff, 0xa9fff7, 0x94fbab, 0x82aba1),
}

// Preset returns the preset at index i.
func Preset(i int) (Palette, error) {
	if i < 0 || i >= len(Presets) {
		return nil, fmt.Errorf("palette %d out of range [0,%d)", i, len(Presets))
	}
	return Presets[i], nil
}

// Colorful converts c to a go-colorful value; alpha is dropped.
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes a toward b in Lab space; t=0 gives a, t=1 gives b. Alpha is
// interpolated linearly.
func Blend(a, b RGBA, t float64) RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	r, g, bl := a.Colorful().BlendLab(b.Colorful(), t).Clamped().RGB255()
	alpha := float64(a.A)*(1-t) + float64(b.A)*t
	return RGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}

// HueRamp returns n evenly spaced, fully saturated hues.
func HueRamp(n int, saturation, value float64) Palette {
	p := make(Palette, n)
	for i := range p {
		r, g, b := colorful.Hsv(360*float64(i)/float64(n), saturation, value).Clamped().RGB255()
		p[i] = RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return p
}
