// Package wigglewacker grows a row of spiky blueprint trees along the bottom
// of the canvas and sways them. The sway grows with height so trunks stay
// planted while tips wave.
package wigglewacker

import (
	"fmt"
	"log/slog"
	"math"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/core"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/modifier"
	"canvas-sims/internal/render"
	"canvas-sims/internal/tree"
	rng "canvas-sims/pkg/core"
)

// Config holds parameters for the wigglewacker sim.
type Config struct {
	Width        int
	Height       int
	Seed         int64
	Trees        int
	HeightMin    int
	HeightMax    int
	WidthMin     int
	WidthMax     int
	StepsMin     int
	StepsMax     int
	ForksMin     int
	ForksMax     int
	TrunkPercent int
	MaxNodes     int
	Sway         float64
	SwaySpeed    float64
	SwayLag      float64
	TipRadius    float64
	Background   string
}

// DefaultConfig returns the default configuration. Tree sizes follow the
// stock blueprint and are capped to the canvas when built.
func DefaultConfig() Config {
	b := tree.DefaultBlueprint()
	return Config{
		Width:        640,
		Height:       480,
		Seed:         1,
		Trees:        5,
		HeightMin:    b.Height.Min,
		HeightMax:    b.Height.Max,
		WidthMin:     b.Width.Min,
		WidthMax:     b.Width.Max,
		StepsMin:     b.Steps.Min,
		StepsMax:     b.Steps.Max,
		ForksMin:     b.Forks.Min,
		ForksMax:     b.Forks.Max,
		TrunkPercent: b.TrunkPercent,
		MaxNodes:     512,
		Sway:         12,
		SwaySpeed:    0.05,
		SwayLag:      0.3,
		TipRadius:    2,
		Background:   "#0b0b14",
	}
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
	c.HeightMin = core.IntValue(cfg, "height_min", c.HeightMin, core.Positive[int])
	c.HeightMax = core.IntValue(cfg, "height_max", c.HeightMax, core.Positive[int])
	c.WidthMin = core.IntValue(cfg, "width_min", c.WidthMin, core.NonNegative[int])
	c.WidthMax = core.IntValue(cfg, "width_max", c.WidthMax, core.NonNegative[int])
	c.StepsMin = core.IntValue(cfg, "steps_min", c.StepsMin, core.Positive[int])
	c.StepsMax = core.IntValue(cfg, "steps_max", c.StepsMax, core.Positive[int])
	c.ForksMin = core.IntValue(cfg, "forks_min", c.ForksMin, core.NonNegative[int])
	c.ForksMax = core.IntValue(cfg, "forks_max", c.ForksMax, core.NonNegative[int])
	c.TrunkPercent = core.IntValue(cfg, "trunk_percent", c.TrunkPercent, func(v int) bool { return v >= 0 && v <= 100 })
	c.MaxNodes = core.IntValue(cfg, "max_nodes", c.MaxNodes, func(v int) bool { return v >= 2 })
	c.Sway = core.FloatValue(cfg, "sway", c.Sway, core.NonNegative[float64])
	c.SwaySpeed = core.FloatValue(cfg, "sway_speed", c.SwaySpeed, core.NonNegative[float64])
	c.SwayLag = core.FloatValue(cfg, "sway_lag", c.SwayLag, core.NonNegative[float64])
	c.TipRadius = core.FloatValue(cfg, "tip_radius", c.TipRadius, core.NonNegative[float64])
	if v := core.StringValue(cfg, "background", c.Background); v != c.Background {
		if _, err := colors.ParseHex(v); err == nil {
			c.Background = v
		}
	}
	return c
}

// Blueprint turns the config into a tree blueprint whose height and width
// ranges fit the canvas.
func (c Config) Blueprint() tree.Blueprint {
	b := tree.DefaultBlueprint()
	hiH := min(c.HeightMax, c.Height)
	hiW := min(c.WidthMax, c.Width)
	b.Height = tree.Range{Min: min(c.HeightMin, hiH), Max: hiH}
	b.Width = tree.Range{Min: min(c.WidthMin, hiW), Max: hiW}
	b.Steps = tree.Range{Min: c.StepsMin, Max: c.StepsMax}
	b.Forks = tree.Range{Min: c.ForksMin, Max: c.ForksMax}
	b.TrunkPercent = c.TrunkPercent
	b.MaxNodes = c.MaxNodes
	return b
}

type spikyTree struct {
	t      *tree.Tree[tree.SpikyNode]
	plan   tree.Plan
	phase  float64
	leaf   []bool
	placed []geom.Point
}

// WiggleWacker implements core.Sim.
type WiggleWacker struct {
	cfg    Config
	log    *slog.Logger
	bg     colors.RGBA
	tip    colors.RGBA
	sway   modifier.Modifier
	trees  []*spikyTree
	tick   int
	offset float64
}

// New builds the sim.
func New(cfg Config) (*WiggleWacker, error) {
	if err := cfg.Blueprint().Validate(); err != nil {
		return nil, err
	}
	bg, err := colors.ParseHex(cfg.Background)
	if err != nil {
		return nil, err
	}
	wave, err := modifier.SinWave(2 * math.Pi)
	if err != nil {
		return nil, err
	}
	s := &WiggleWacker{
		cfg:  cfg,
		log:  core.Logger("wigglewacker"),
		bg:   bg,
		tip:  cfg.Blueprint().Finish,
		sway: modifier.Affine(wave, cfg.Sway, 0),
	}
	if err := s.build(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *WiggleWacker) build(seed int64) error {
	r := rng.NewRNG(seed)
	b := s.cfg.Blueprint()
	gap := float64(s.cfg.Width) / float64(s.cfg.Trees)
	ground := float64(s.cfg.Height - 1)

	trees := make([]*spikyTree, 0, s.cfg.Trees)
	nodes := 0
	for i := 0; i < s.cfg.Trees; i++ {
		base := geom.Point{X: (float64(i) + 0.5) * gap, Y: ground}
		t, plan, err := tree.Grow(r, b, base)
		if err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		st := &spikyTree{
			t:      t,
			plan:   plan,
			phase:  r.Angle(),
			leaf:   make([]bool, t.Len()),
			placed: make([]geom.Point, t.Len()),
		}
		for id := range st.leaf {
			st.leaf[id] = len(t.Children(tree.NodeID(id))) == 0
		}
		trees = append(trees, st)
		nodes += t.Len()
		s.log.Debug("grew tree", "index", i, "height", plan.Height, "width", plan.Width, "steps", plan.Steps, "nodes", t.Len())
	}
	s.trees = trees
	s.tick = 0
	s.place()
	s.log.Info("built", "seed", seed, "trees", len(trees), "nodes", nodes)
	return nil
}

// place recomputes every node's swayed position for the current tick.
func (s *WiggleWacker) place() {
	s.offset = 0
	t := float64(s.tick) * s.cfg.SwaySpeed
	for _, st := range s.trees {
		steps := float64(max(1, st.plan.Steps))
		st.t.Walk(func(id tree.NodeID, n tree.SpikyNode) bool {
			weight := float64(n.Step) / steps
			dx := weight * s.sway.Value(t+st.phase+float64(n.Step)*s.cfg.SwayLag)
			st.placed[id] = geom.Point{X: n.Point.X + dx, Y: n.Point.Y}
			s.offset = math.Max(s.offset, math.Abs(dx))
			return true
		})
	}
}

// Name returns the simulation identifier.
func (s *WiggleWacker) Name() string { return "wigglewacker" }

// Size returns the canvas dimensions.
func (s *WiggleWacker) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Reset regrows the trees with the given seed.
func (s *WiggleWacker) Reset(seed int64) {
	if err := s.build(seed); err != nil {
		s.log.Error("reset failed", "seed", seed, "err", err)
	}
}

// Step advances the sway by one tick.
func (s *WiggleWacker) Step() error {
	s.tick++
	s.place()
	return nil
}

// Draw repaints the trees. Each edge takes its child's width and color.
func (s *WiggleWacker) Draw(dst render.Canvas) {
	dst.Clear(s.bg)
	for _, st := range s.trees {
		st.t.Walk(func(id tree.NodeID, n tree.SpikyNode) bool {
			parent, ok := st.t.Parent(id)
			if !ok {
				return true
			}
			dst.StrokePath([]geom.Point{st.placed[parent], st.placed[id]}, n.Width, n.Color)
			if st.leaf[id] && s.cfg.TipRadius > 0 {
				dst.FillCircle(st.placed[id], s.cfg.TipRadius, s.tip)
			}
			return true
		})
	}
}

// Stats reports the tree sizes and the widest current sway.
func (s *WiggleWacker) Stats() map[string]float64 {
	nodes, leaves := 0, 0
	for _, st := range s.trees {
		nodes += st.t.Len()
		leaves += st.t.Leaves()
	}
	return map[string]float64{
		"tick":     float64(s.tick),
		"trees":    float64(len(s.trees)),
		"nodes":    float64(nodes),
		"leaves":   float64(leaves),
		"max_sway": s.offset,
	}
}

// Parameters publishes the tunables for the HUD.
func (s *WiggleWacker) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
				core.IntParam("trees", "Trees", s.cfg.Trees),
				core.StringParam("background", "Background", s.cfg.Background),
			},
		},
		{
			Name: "Blueprint",
			Params: []core.Parameter{
				core.IntParam("height_min", "Height min", s.cfg.HeightMin),
				core.IntParam("height_max", "Height max", s.cfg.HeightMax),
				core.IntParam("width_min", "Width min", s.cfg.WidthMin),
				core.IntParam("width_max", "Width max", s.cfg.WidthMax),
				core.IntParam("steps_min", "Steps min", s.cfg.StepsMin),
				core.IntParam("steps_max", "Steps max", s.cfg.StepsMax),
				core.IntParam("forks_min", "Forks min", s.cfg.ForksMin),
				core.IntParam("forks_max", "Forks max", s.cfg.ForksMax),
				core.IntParam("trunk_percent", "Trunk %", s.cfg.TrunkPercent),
				core.IntParam("max_nodes", "Max nodes", s.cfg.MaxNodes),
			},
		},
		{
			Name: "Sway",
			Params: []core.Parameter{
				core.FloatParam("sway", "Amplitude", s.cfg.Sway),
				core.FloatParam("sway_speed", "Speed", s.cfg.SwaySpeed),
				core.FloatParam("sway_lag", "Lag per step", s.cfg.SwayLag),
				core.FloatParam("tip_radius", "Tip radius", s.cfg.TipRadius),
			},
		},
	}}
}

func init() {
	core.Register("wigglewacker", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
