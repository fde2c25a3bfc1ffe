package particle

import (
	"canvas-sims/internal/colors"
	"canvas-sims/internal/dynpoint"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/render"
)

// LocationFunc places an image-backed particle for a given tick.
type LocationFunc interface {
	LocationAt(home geom.IntPoint, tick int) geom.IntPoint
}

type pathLocation struct {
	path dynpoint.DynamicPoint
}

// FollowPath places the particle on path at time tick, rounded to a pixel.
func FollowPath(path dynpoint.DynamicPoint) LocationFunc {
	return pathLocation{path: path}
}

func (p pathLocation) LocationAt(_ geom.IntPoint, tick int) geom.IntPoint {
	return geom.Round(p.path.PointAt(float64(tick)))
}

type homeLocation struct{}

// StayHome keeps the particle at its home location.
func StayHome() LocationFunc { return homeLocation{} }

func (homeLocation) LocationAt(home geom.IntPoint, _ int) geom.IntPoint { return home }

// ImageBacked is a particle born from one source-image pixel. It keeps the
// pixel's color and home location and asks its LocationFunc where to be.
type ImageBacked struct {
	Home     geom.IntPoint
	Location geom.IntPoint
	Color    colors.RGBA
	Tick     int

	place LocationFunc
}

// NewImageBacked places a particle at place(home, 0).
func NewImageBacked(home geom.IntPoint, c colors.RGBA, place LocationFunc) *ImageBacked {
	if place == nil {
		place = StayHome()
	}
	return &ImageBacked{Home: home, Location: place.LocationAt(home, 0), Color: c, place: place}
}

// Update moves the particle to where it belongs at tick.
func (p *ImageBacked) Update(tick int) {
	p.Tick = tick
	p.Location = p.place.LocationAt(p.Home, tick)
}

// Draw fills a circle of the given radius at the current location.
func (p *ImageBacked) Draw(dst render.Canvas, radius float64) {
	dst.FillCircle(p.Location.Point(), radius, p.Color)
}
