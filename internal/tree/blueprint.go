package tree

import (
	"fmt"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/geom"
	"canvas-sims/pkg/core"
)

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int
}

// Draw picks a value in [Min, Max].
func (r Range) Draw(rng *core.RNG) (int, error) {
	return rng.IntRange(r.Min, r.Max+1)
}

// SpikyNode is one joint of a blueprint-grown tree. Point is absolute.
type SpikyNode struct {
	Step  int
	Point geom.Point
	Width float64
	Color colors.RGBA
}

// Blueprint describes a family of spiky trees: each grown tree draws its own
// height, width and step count from the ranges, rises straight for
// TrunkPercent of its height and then forks level by level.
type Blueprint struct {
	Height       Range
	Width        Range
	Steps        Range
	Forks        Range
	TrunkPercent int
	Trunk        colors.RGBA
	Start        colors.RGBA
	Finish       colors.RGBA
	MaxNodes     int
}

// DefaultBlueprint is the stock spiky tree.
func DefaultBlueprint() Blueprint {
	return Blueprint{
		Height:       Range{Min: 100, Max: 800},
		Width:        Range{Min: 100, Max: 500},
		Steps:        Range{Min: 5, Max: 25},
		Forks:        Range{Min: 2, Max: 5},
		TrunkPercent: 33,
		Trunk:        colors.RGBA{R: 23, G: 23, B: 23, A: 0xff},
		Start:        colors.RGBA{R: 19, G: 9, B: 100, A: 0xff},
		Finish:       colors.RGBA{R: 199, G: 200, B: 88, A: 0xff},
		MaxNodes:     2048,
	}
}

// Validate checks the ranges and percentages.
func (b Blueprint) Validate() error {
	for name, r := range map[string]Range{"height": b.Height, "width": b.Width, "steps": b.Steps, "forks": b.Forks} {
		if r.Min > r.Max || r.Min < 0 {
			return fmt.Errorf("%w: %s [%d,%d]", core.ErrInvalidRange, name, r.Min, r.Max)
		}
	}
	if b.Steps.Min < 1 {
		return fmt.Errorf("%w: steps must be at least 1", core.ErrInvalidRange)
	}
	if b.TrunkPercent < 0 || b.TrunkPercent > 100 {
		return fmt.Errorf("%w: trunk percent %d", core.ErrInvalidRange, b.TrunkPercent)
	}
	if b.MaxNodes < 2 {
		return fmt.Errorf("%w: max nodes %d", core.ErrInvalidRange, b.MaxNodes)
	}
	return nil
}

// Plan is the per-tree draw from a Blueprint.
type Plan struct {
	Height, Width, Steps int
}

// Plan draws the dimensions for one tree.
func (b Blueprint) Plan(rng *core.RNG) (Plan, error) {
	var p Plan
	var err error
	if p.Height, err = b.Height.Draw(rng); err != nil {
		return p, err
	}
	if p.Width, err = b.Width.Draw(rng); err != nil {
		return p, err
	}
	if p.Steps, err = b.Steps.Draw(rng); err != nil {
		return p, err
	}
	return p, nil
}

// Grow builds one tree standing on base and growing toward -y. Levels are
// added breadth first until the plan's step count or MaxNodes is reached.
func Grow(rng *core.RNG, b Blueprint, base geom.Point) (*Tree[SpikyNode], Plan, error) {
	if err := b.Validate(); err != nil {
		return nil, Plan{}, err
	}
	plan, err := b.Plan(rng)
	if err != nil {
		return nil, Plan{}, err
	}

	trunkH := float64(plan.Height) * float64(b.TrunkPercent) / 100
	rise := (float64(plan.Height) - trunkH) / float64(plan.Steps)
	spread := float64(plan.Width) / float64(plan.Steps)
	baseWidth := max(1, float64(plan.Width)/40)

	t := New(SpikyNode{Step: 0, Point: base, Width: baseWidth, Color: b.Trunk})
	top, _ := t.AddChild(t.Root(), SpikyNode{
		Step:  0,
		Point: geom.Point{X: base.X, Y: base.Y - trunkH},
		Width: baseWidth,
		Color: b.Trunk,
	})

	frontier := []NodeID{top}
	for level := 1; level <= plan.Steps && len(frontier) > 0; level++ {
		frac := float64(level) / float64(plan.Steps)
		width := max(0.5, baseWidth*(1-frac))
		color := colors.Blend(b.Start, b.Finish, frac)
		var next []NodeID
		for _, parent := range frontier {
			forks, err := b.Forks.Draw(rng)
			if err != nil {
				return nil, plan, err
			}
			pp := t.Value(parent).Point
			for i := 0; i < forks; i++ {
				if t.Len() >= b.MaxNodes {
					return t, plan, nil
				}
				// Spread forks evenly across [-spread/2, spread/2] with jitter.
				slot := 0.0
				if forks > 1 {
					slot = float64(i)/float64(forks-1) - 0.5
				}
				dx := slot*spread + rng.Spread(spread/4)
				dy := rise * (0.75 + 0.5*rng.Source().Float64())
				id, err := t.AddChild(parent, SpikyNode{
					Step:  level,
					Point: geom.Point{X: pp.X + dx, Y: pp.Y - dy},
					Width: width,
					Color: color,
				})
				if err != nil {
					return nil, plan, err
				}
				next = append(next, id)
			}
		}
		frontier = next
	}
	return t, plan, nil
}
