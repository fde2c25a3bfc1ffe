// Package colors implements the color encodings used by the simulations: RGB,
// RGBA and CMYK values with canonical hex strings, packed-integer
// constructors, luminance and palette helpers.
//
// All constructors are total: out-of-range input wraps (RGB/RGBA) or clamps
// (CMYK) instead of failing.
package colors

import (
	"fmt"
	"image/color"
	"math"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBA is an 8-bit color with straight (non-premultiplied) alpha.
type RGBA struct {
	R, G, B, A uint8
}

// CMYK holds ink percentages in [0, 100].
type CMYK struct {
	C, M, Y, K uint8
}

var (
	_ color.Color = RGB{}
	_ color.Color = RGBA{}
	_ color.Color = CMYK{}
)

// NewRGB normalizes each channel with channel().
func NewRGB(r, g, b float64) RGB {
	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

// NewRGBA normalizes each channel with channel().
func NewRGBA(r, g, b, a float64) RGBA {
	return RGBA{R: channel(r), G: channel(g), B: channel(b), A: channel(a)}
}

// NewCMYK clamps each channel into [0, 100].
func NewCMYK(c, m, y, k float64) CMYK {
	return CMYK{C: percent(c), M: percent(m), Y: percent(y), K: percent(k)}
}

// RGBFromNumber unpacks 0xRRGGBB; higher bits are discarded.
func RGBFromNumber(n uint64) RGB {
	return RGB{
		R: uint8((n % 0x1000000) / 0x10000),
		G: uint8((n % 0x10000) / 0x100),
		B: uint8(n % 0x100),
	}
}

// RGBAFromNumber unpacks 0xRRGGBBAA; higher bits are discarded.
func RGBAFromNumber(n uint64) RGBA {
	return RGBA{
		R: uint8((n % 0x100000000) / 0x1000000),
		G: uint8((n % 0x1000000) / 0x10000),
		B: uint8((n % 0x10000) / 0x100),
		A: uint8(n % 0x100),
	}
}

// channel truncates toward zero, wraps into [0, 256) and drops the sign.
func channel(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return uint8(math.Abs(math.Trunc(math.Mod(v, 256))))
}

func percent(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 100 {
		return 100
	}
	return uint8(v)
}

// Hex returns "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Hex returns "#rrggbbaa".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Hex encodes the four ink channels in the RGBA layout, "#ccmmyykk".
func (c CMYK) Hex() string {
	return RGBA{R: c.C, G: c.M, B: c.Y, A: c.K}.Hex()
}

func (c RGB) String() string  { return c.Hex() }
func (c RGBA) String() string { return c.Hex() }
func (c CMYK) String() string { return c.Hex() }

// RGBA implements image/color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// RGBA implements image/color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// RGBA implements image/color.Color by way of RGB.
func (c CMYK) RGBA() (r, g, b, a uint32) {
	return c.RGB().RGBA()
}

// RGB converts ink percentages to an opaque screen color.
func (c CMYK) RGB() RGB {
	k := 1 - float64(c.K)/100
	conv := func(v uint8) uint8 {
		return uint8(math.Round(255 * (1 - float64(v)/100) * k))
	}
	return RGB{R: conv(c.C), G: conv(c.M), B: conv(c.Y)}
}

// WithAlpha adds an alpha channel.
func (c RGB) WithAlpha(a uint8) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Opaque drops the alpha channel.
func (c RGBA) Opaque() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// FromColor converts any image/color value to straight-alpha RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}
