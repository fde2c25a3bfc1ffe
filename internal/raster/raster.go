// Package raster holds decoded images as flat, addressable pixel buffers that
// sims sample for color and luminance.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/core"
	"canvas-sims/internal/geom"
)

var (
	// ErrMalformedRaster reports pixel data whose length does not match the
	// declared dimensions.
	ErrMalformedRaster = errors.New("malformed raster")
	// ErrOutOfBounds reports a location outside the image.
	ErrOutOfBounds = errors.New("location out of bounds")
)

// OutOfBoundsError carries the offending location and the image size.
type OutOfBoundsError struct {
	Location      geom.IntPoint
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("location (%d,%d) is out of bounds of an image with width %d, height %d",
		e.Location.X, e.Location.Y, e.Width, e.Height)
}

// Is lets errors.Is match ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// Pixel pairs a color with the location it was read from.
type Pixel struct {
	Location geom.IntPoint
	Color    colors.RGBA
}

// Image is an immutable row-major pixel buffer. Pixel i sits at
// (i mod Width, i div Width) and len(Pixels) == Width*Height.
type Image struct {
	Width  int
	Height int
	Pixels []colors.RGBA
}

// FromRGBA builds an Image from packed 8-bit RGBA data.
func FromRGBA(w, h int, data []byte) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedRaster, w, h)
	}
	if len(data) != 4*w*h {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d, want %d", ErrMalformedRaster, len(data), w, h, 4*w*h)
	}
	px := make([]colors.RGBA, w*h)
	for i := range px {
		base := 4 * i
		px[i] = colors.RGBA{R: data[base], G: data[base+1], B: data[base+2], A: data[base+3]}
	}
	return newImage(w, h, px), nil
}

// FromImage converts any decoded image into an Image. Colors are stored
// non-premultiplied.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrMalformedRaster)
	}
	px := make([]colors.RGBA, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px = append(px, colors.FromColor(src.At(x, y)))
		}
	}
	return newImage(w, h, px), nil
}

func newImage(w, h int, px []colors.RGBA) *Image {
	return &Image{Width: w, Height: h, Pixels: px}
}

func (img *Image) grid() core.Grid { return core.NewGrid(img.Width, img.Height) }

// Contains reports whether loc addresses a pixel.
func (img *Image) Contains(loc geom.IntPoint) bool {
	return img.grid().Contains(loc.X, loc.Y)
}

// IndexFor maps loc to its linear pixel index. When allowOutOfBounds is set
// the index is computed without a bounds check and may not address a pixel.
func (img *Image) IndexFor(loc geom.IntPoint, allowOutOfBounds bool) (int, error) {
	if !allowOutOfBounds && !img.Contains(loc) {
		return 0, &OutOfBoundsError{Location: loc, Width: img.Width, Height: img.Height}
	}
	return img.grid().Index(loc.X, loc.Y), nil
}

// ColorAt returns the color at loc.
func (img *Image) ColorAt(loc geom.IntPoint) (colors.RGBA, error) {
	i, err := img.IndexFor(loc, false)
	if err != nil {
		return colors.RGBA{}, err
	}
	return img.Pixels[i], nil
}

// ColorAtIndex returns the color at a linear index.
func (img *Image) ColorAtIndex(i int) (colors.RGBA, error) {
	if i < 0 || i >= len(img.Pixels) {
		x, y := img.grid().Coords(i)
		return colors.RGBA{}, &OutOfBoundsError{Location: geom.IntPoint{X: x, Y: y}, Width: img.Width, Height: img.Height}
	}
	return img.Pixels[i], nil
}

// ComplementLuminanceAt returns 1 - luma/255 for the pixel at loc, so dark
// pixels score near 1 and bright ones near 0.
func (img *Image) ComplementLuminanceAt(loc geom.IntPoint) (float64, error) {
	c, err := img.ColorAt(loc)
	if err != nil {
		return 0, err
	}
	return colors.ComplementLuminance(c), nil
}

// Location maps a linear index back to its coordinate.
func (img *Image) Location(i int) geom.IntPoint {
	x, y := img.grid().Coords(i)
	return geom.IntPoint{X: x, Y: y}
}

// Pixel returns the i-th pixel together with its location.
func (img *Image) Pixel(i int) Pixel {
	return Pixel{Location: img.Location(i), Color: img.Pixels[i]}
}

// Each calls fn for every pixel in row-major order.
func (img *Image) Each(fn func(Pixel)) {
	for i := range img.Pixels {
		fn(img.Pixel(i))
	}
}

// Bounds returns the inclusive minimum and maximum valid locations.
func (img *Image) Bounds() (min, max geom.IntPoint) {
	return geom.Origin, geom.IntPoint{X: img.Width - 1, Y: img.Height - 1}
}

// ToImage copies the pixels into a standard library image.
func (img *Image) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i, c := range img.Pixels {
		base := 4 * i
		out.Pix[base+0] = c.R
		out.Pix[base+1] = c.G
		out.Pix[base+2] = c.B
		out.Pix[base+3] = c.A
	}
	return out
}

// Fill returns a w*h image of a single color.
func Fill(w, h int, c color.Color) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedRaster, w, h)
	}
	px := make([]colors.RGBA, w*h)
	col := colors.FromColor(c)
	for i := range px {
		px[i] = col
	}
	return newImage(w, h, px), nil
}
