package particle

import (
	"fmt"
	"math"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/physics"
	"canvas-sims/internal/render"
)

// Bouncer is a colored entity with a cartesian velocity that reflects off
// the edges of its domain. Sub-pixel motion is carried between ticks so slow
// bouncers still move.
type Bouncer struct {
	Location geom.IntPoint
	Velocity geom.Vec
	Min, Max geom.IntPoint
	Tick     int
	Color    colors.RGBA

	edge   physics.EdgeAvoider
	lookup ColorLookup
	size   SizeFunc
	accel  []physics.Accelerator
	carry  geom.Vec
}

// NewBouncer builds a bouncer and resolves its initial color. A nil edge
// avoider defaults to a ninety degree bounce off [min, max]; a nil lookup
// paints white.
func NewBouncer(loc geom.IntPoint, vel geom.Vec, min, max geom.IntPoint, size SizeFunc, edge physics.EdgeAvoider, lookup ColorLookup) (*Bouncer, error) {
	if err := geom.Validate(vel.X, vel.Y); err != nil {
		return nil, fmt.Errorf("velocity: %w", err)
	}
	if edge == nil {
		edge = physics.NinetyDegreeBounce(min, max)
	}
	if size == nil {
		size = StaticSize(1)
	}
	if lookup == nil {
		lookup = StaticColor(colors.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	}
	b := &Bouncer{
		Location: loc,
		Velocity: vel,
		Min:      min,
		Max:      max,
		edge:     edge,
		lookup:   lookup,
		size:     size,
	}
	b.clamp()
	c, err := lookup.ColorAt(b.Location)
	if err != nil {
		return nil, err
	}
	b.Color = c
	return b, nil
}

// AddAccelerator appends a velocity adjustment run before each move.
func (b *Bouncer) AddAccelerator(a physics.Accelerator) {
	b.accel = append(b.accel, a)
}

// Update moves the bouncer one tick, resolves edge crossings and refreshes
// its color.
func (b *Bouncer) Update() error {
	for _, a := range b.accel {
		b.Velocity = a.Accelerate(b.Location, b.Velocity, b.Tick)
	}
	if err := geom.Validate(b.Velocity.X, b.Velocity.Y); err != nil {
		return fmt.Errorf("velocity: %w", err)
	}

	step := b.Velocity.Add(b.carry)
	move := geom.IntPoint{X: int(math.Round(step.X)), Y: int(math.Round(step.Y))}
	b.carry = geom.Vec{X: step.X - float64(move.X), Y: step.Y - float64(move.Y)}

	moved := b.Location.Add(move)
	loc, vel, err := b.edge.Avoid(moved, b.Velocity)
	if err != nil {
		return fmt.Errorf("edge: %w", err)
	}
	if loc != moved {
		b.carry = geom.Vec{}
	}
	b.Location, b.Velocity = loc, vel
	b.clamp()
	b.Tick++

	c, err := b.lookup.ColorAt(b.Location)
	if err != nil {
		return err
	}
	b.Color = c
	return nil
}

// clamp pins the location into [Min, Max]; a two-fold reflection can leave
// an extreme overshoot outside.
func (b *Bouncer) clamp() {
	b.Location = geom.IntPoint{
		X: geom.ClampInt(b.Min.X, b.Max.X, b.Location.X),
		Y: geom.ClampInt(b.Min.Y, b.Max.Y, b.Location.Y),
	}
}

// Size is the current draw radius.
func (b *Bouncer) Size() float64 { return b.size.SizeAt(b.Location, b.Tick) }

// Draw fills the bouncer's circle.
func (b *Bouncer) Draw(dst render.Canvas) {
	dst.FillCircle(b.Location.Point(), b.Size(), b.Color)
}
