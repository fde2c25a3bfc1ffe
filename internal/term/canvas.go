// Package term renders sims onto a terminal through tcell. Each cell shows
// two vertically stacked samples of the sim canvas using an upper half block.
package term

import (
	"github.com/gdamore/tcell/v2"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/render"
)

const halfBlock = '▀'

// Canvas is a full-resolution pixel canvas that can be flushed to a screen
// of any size.
type Canvas struct {
	*render.PixelCanvas
}

// NewCanvas returns a canvas matching the sim's pixel size.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{PixelCanvas: render.NewPixelCanvas(w, h)}
}

// Color converts c to a 24-bit terminal color; alpha is dropped.
func Color(c colors.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Flush samples the canvas onto the first rows of the screen. Each cell
// takes its foreground from the upper sample and its background from the
// lower one.
func (c *Canvas) Flush(screen tcell.Screen, rows int) {
	sw, sh := screen.Size()
	rows = min(rows, sh)
	if sw <= 0 || rows <= 0 {
		return
	}
	w, h := c.Size()
	for cy := 0; cy < rows; cy++ {
		ty := (2 * cy) * h / (2 * rows)
		by := (2*cy + 1) * h / (2 * rows)
		for cx := 0; cx < sw; cx++ {
			x := cx * w / sw
			style := tcell.StyleDefault.
				Foreground(Color(c.At(x, ty))).
				Background(Color(c.At(x, by)))
			screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}
