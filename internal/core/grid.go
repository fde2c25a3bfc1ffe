package core

// Grid maps 2D integer locations in a W×H rectangle to row-major indices.
type Grid struct {
	W, H int
}

// NewGrid describes a rectangle with the given dimensions.
func NewGrid(w, h int) Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Grid{W: w, H: h}
}

// Contains reports whether (x, y) lies inside the rectangle.
func (g Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Index returns the linear index for (x, y). The x term is reduced modulo
// the cell count so a runaway x cannot overflow on its own.
func (g Grid) Index(x, y int) int { return y*g.W + x%(g.H*g.W) }

// Coords maps a linear index back to (x, y).
func (g Grid) Coords(i int) (int, int) { return i % g.W, i / g.W }

// Len is the number of cells.
func (g Grid) Len() int { return g.W * g.H }
