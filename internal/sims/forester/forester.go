// Package forester draws random point trees whose nodes circle their
// original positions. Every node is a dot and every edge is a quadratic
// curve bent toward the tree's root.
package forester

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/core"
	"canvas-sims/internal/dynpoint"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/render"
	"canvas-sims/internal/sims/source"
	"canvas-sims/internal/tree"
	rng "canvas-sims/pkg/core"
)

// Config holds parameters for the forester sim.
type Config struct {
	Width          int
	Height         int
	Seed           int64
	Trees          int
	Depth          int
	Branch         int
	Period         float64
	PeriodVariance float64
	Radius         float64
	RadiusVariance float64
	BeginPalette   int
	EndPalette     int
	DotRadius      float64
	LineWidth      float64
	Background     string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:          640,
		Height:         480,
		Seed:           1,
		Trees:          3,
		Depth:          7,
		Branch:         2,
		Period:         20,
		PeriodVariance: 5,
		Radius:         400,
		RadiusVariance: 100,
		BeginPalette:   source.RandomPalette,
		EndPalette:     source.RandomPalette,
		DotRadius:      4,
		LineWidth:      1,
		Background:     "#101010",
	}
}

func validPalette(v int) bool {
	return v == source.RandomPalette || (v >= 0 && v < len(colors.Presets))
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.Width = core.IntValue(cfg, "w", c.Width, core.Positive[int])
	c.Height = core.IntValue(cfg, "h", c.Height, core.Positive[int])
	c.Seed = core.Int64Value(cfg, "seed", c.Seed)
	c.Trees = core.IntValue(cfg, "trees", c.Trees, core.Positive[int])
	c.Depth = core.IntValue(cfg, "depth", c.Depth, func(v int) bool { return v >= 0 && v <= 12 })
	c.Branch = core.IntValue(cfg, "branch", c.Branch, func(v int) bool { return v >= 0 && v <= 8 })
	c.Period = core.FloatValue(cfg, "period", c.Period, core.Positive[float64])
	c.PeriodVariance = core.FloatValue(cfg, "period_var", c.PeriodVariance, core.NonNegative[float64])
	c.Radius = core.FloatValue(cfg, "radius", c.Radius, core.NonNegative[float64])
	c.RadiusVariance = core.FloatValue(cfg, "radius_var", c.RadiusVariance, core.NonNegative[float64])
	c.BeginPalette = core.IntValue(cfg, "palette", c.BeginPalette, validPalette)
	c.EndPalette = core.IntValue(cfg, "end_palette", c.EndPalette, validPalette)
	c.DotRadius = core.FloatValue(cfg, "dot_radius", c.DotRadius, core.NonNegative[float64])
	c.LineWidth = core.FloatValue(cfg, "line_width", c.LineWidth, core.Positive[float64])
	if v := core.StringValue(cfg, "background", c.Background); v != c.Background {
		if _, err := colors.ParseHex(v); err == nil {
			c.Background = v
		}
	}
	return c
}

// Validate reports configurations that cannot animate.
func (c Config) Validate() error {
	if c.Period-c.PeriodVariance <= 0 {
		return fmt.Errorf("period %.2f must exceed its variance %.2f", c.Period, c.PeriodVariance)
	}
	return nil
}

type flowerTree struct {
	base    *tree.Tree[geom.Point]
	anim    *tree.Tree[dynpoint.DynamicPoint]
	now     *tree.Tree[geom.Point]
	dots    []colors.RGBA
	depths  []int
	height  int
	from    colors.RGBA
	to      colors.RGBA
	rootPos geom.Point
}

// Forester implements core.Sim.
type Forester struct {
	cfg   Config
	log   *slog.Logger
	bg    colors.RGBA
	trees []*flowerTree
	tick  int
}

// New builds the sim.
func New(cfg Config) (*Forester, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := colors.ParseHex(cfg.Background)
	if err != nil {
		return nil, err
	}
	s := &Forester{cfg: cfg, log: core.Logger("forester"), bg: bg}
	if err := s.build(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Forester) build(seed int64) error {
	r := rng.NewRNG(seed)
	begin, bi, err := source.Palette(s.cfg.BeginPalette, r)
	if err != nil {
		return err
	}
	end, ei, err := source.Palette(s.cfg.EndPalette, r)
	if err != nil {
		return err
	}
	w, h := float64(s.cfg.Width), float64(s.cfg.Height)
	spec := tree.CirclingSpec{
		Period:         s.cfg.Period,
		PeriodVariance: s.cfg.PeriodVariance,
		Radius:         s.cfg.Radius,
		RadiusVariance: s.cfg.RadiusVariance,
	}

	trees := make([]*flowerTree, 0, s.cfg.Trees)
	nodes := 0
	for len(trees) < s.cfg.Trees {
		x, err := r.FloatRange(0, w)
		if err != nil {
			return err
		}
		y, err := r.FloatRange(0, h)
		if err != nil {
			return err
		}
		base, err := tree.Generate(r, geom.Point{X: x, Y: y}, tree.Fixed(s.cfg.Depth), tree.Fixed(s.cfg.Branch), w, h)
		if err != nil {
			return fmt.Errorf("tree %d: %w", len(trees), err)
		}
		anim, err := tree.Animate(base, r, spec)
		if err != nil {
			return fmt.Errorf("animate tree %d: %w", len(trees), err)
		}
		ft := &flowerTree{
			base:   base,
			anim:   anim,
			dots:   make([]colors.RGBA, base.Len()),
			depths: make([]int, base.Len()),
			height: base.Height(),
			from:   begin.Random(r),
			to:     end.Random(r),
		}
		for i := range ft.dots {
			ft.dots[i] = begin.Random(r)
			ft.depths[i] = base.Depth(tree.NodeID(i))
		}
		ft.snapshot(0)
		trees = append(trees, ft)
		nodes += base.Len()
	}
	s.trees = trees
	s.tick = 0
	s.log.Info("built", "seed", seed, "trees", len(trees), "nodes", nodes, "palette", bi, "end_palette", ei)
	return nil
}

func (t *flowerTree) snapshot(tick int) {
	t.now = tree.Snapshot(t.anim, float64(tick))
	t.rootPos = t.now.Value(t.now.Root())
}

// Name returns the simulation identifier.
func (s *Forester) Name() string { return "forester" }

// Size returns the canvas dimensions.
func (s *Forester) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Reset regrows the forest with the given seed.
func (s *Forester) Reset(seed int64) {
	if err := s.build(seed); err != nil {
		s.log.Error("reset failed", "seed", seed, "err", err)
	}
}

// Step advances every tree by one tick.
func (s *Forester) Step() error {
	if len(s.trees) == 0 {
		return errors.New("forester: no trees")
	}
	s.tick++
	for _, t := range s.trees {
		t.snapshot(s.tick)
	}
	return nil
}

// Draw repaints the whole forest.
func (s *Forester) Draw(dst render.Canvas) {
	dst.Clear(s.bg)
	for _, t := range s.trees {
		t.draw(dst, s.cfg.DotRadius, s.cfg.LineWidth)
	}
}

func (t *flowerTree) draw(dst render.Canvas, dotRadius, lineWidth float64) {
	t.now.Walk(func(id tree.NodeID, p geom.Point) bool {
		dst.FillCircle(p, dotRadius, t.dots[id])
		return true
	})
	t.now.Walk(func(id tree.NodeID, p geom.Point) bool {
		parent, ok := t.now.Parent(id)
		if !ok {
			return true
		}
		q := t.now.Value(parent)
		length := math.Hypot(q.X-p.X, q.Y-p.Y)
		pts := render.QuadCurve(p, t.rootPos, q, render.CurveSegments(length))
		dst.StrokePath(pts, lineWidth, colors.Blend(t.from, t.to, float64(t.depths[id])/float64(max(1, t.height))))
		return true
	})
}

// Stats reports the node count and how far nodes sit from home on average.
func (s *Forester) Stats() map[string]float64 {
	var nodes int
	var drift float64
	for _, t := range s.trees {
		for i := 0; i < t.base.Len(); i++ {
			a, b := t.base.Value(tree.NodeID(i)), t.now.Value(tree.NodeID(i))
			drift += math.Hypot(a.X-b.X, a.Y-b.Y)
		}
		nodes += t.base.Len()
	}
	out := map[string]float64{
		"tick":  float64(s.tick),
		"trees": float64(len(s.trees)),
		"nodes": float64(nodes),
	}
	if nodes > 0 {
		out["mean_drift"] = drift / float64(nodes)
	}
	return out
}

// Parameters publishes the tunables for the HUD.
func (s *Forester) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Forest",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
				core.IntParam("trees", "Trees", s.cfg.Trees),
				core.IntParam("depth", "Depth", s.cfg.Depth),
				core.IntParam("branch", "Branch", s.cfg.Branch),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				core.FloatParam("period", "Period", s.cfg.Period),
				core.FloatParam("period_var", "Period variance", s.cfg.PeriodVariance),
				core.FloatParam("radius", "Radius", s.cfg.Radius),
				core.FloatParam("radius_var", "Radius variance", s.cfg.RadiusVariance),
			},
		},
		{
			Name: "Look",
			Params: []core.Parameter{
				core.IntParam("palette", "Dot palette", s.cfg.BeginPalette),
				core.IntParam("end_palette", "Tip palette", s.cfg.EndPalette),
				core.FloatParam("dot_radius", "Dot radius", s.cfg.DotRadius),
				core.FloatParam("line_width", "Line width", s.cfg.LineWidth),
				core.StringParam("background", "Background", s.cfg.Background),
			},
		},
	}}
}

func init() {
	core.Register("forester", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
