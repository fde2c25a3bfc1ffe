// Package swarm drifts a pool of palette-colored particles over a source
// image; dark regions of the image steer and shrink them.
package swarm

import (
	"fmt"
	"log/slog"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/core"
	"canvas-sims/internal/particle"
	"canvas-sims/internal/raster"
	"canvas-sims/internal/render"
	"canvas-sims/internal/sims/source"
	rng "canvas-sims/pkg/core"
)

// Config holds parameters for the swarm sim.
type Config struct {
	Width       int
	Height      int
	Seed        int64
	Count       int
	Palette     int
	Image       string
	Modulation  particle.Modulation
	MinSize     float64
	MaxSize     float64
	MaxSpeed    float64
	LifespanMin int
	LifespanMax int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       640,
		Height:      480,
		Seed:        1,
		Count:       800,
		Palette:     source.RandomPalette,
		Modulation:  particle.ModulateAll,
		MinSize:     0.5,
		MaxSize:     5,
		MaxSpeed:    9,
		LifespanMin: 100,
		LifespanMax: 500,
	}
}

// FromMap populates a Config from a string map. Unparsable or out-of-range
// values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.Width = core.IntValue(cfg, "w", c.Width, core.Positive[int])
	c.Height = core.IntValue(cfg, "h", c.Height, core.Positive[int])
	c.Seed = core.Int64Value(cfg, "seed", c.Seed)
	c.Count = core.IntValue(cfg, "count", c.Count, core.NonNegative[int])
	c.Palette = core.IntValue(cfg, "palette", c.Palette, func(v int) bool {
		return v == source.RandomPalette || (v >= 0 && v < len(colors.Presets))
	})
	c.Image = core.StringValue(cfg, "image", c.Image)
	if v, ok := cfg["modulation"]; ok {
		if m, err := particle.ParseModulation(v); err == nil {
			c.Modulation = m
		}
	}
	c.MinSize = core.FloatValue(cfg, "min_size", c.MinSize, core.NonNegative[float64])
	c.MaxSize = core.FloatValue(cfg, "max_size", c.MaxSize, core.Positive[float64])
	c.MaxSpeed = core.FloatValue(cfg, "max_speed", c.MaxSpeed, core.NonNegative[float64])
	c.LifespanMin = core.IntValue(cfg, "lifespan_min", c.LifespanMin, core.NonNegative[int])
	c.LifespanMax = core.IntValue(cfg, "lifespan_max", c.LifespanMax, core.Positive[int])
	return c
}

// Swarm implements core.Sim.
type Swarm struct {
	cfg    Config
	log    *slog.Logger
	src    *raster.Image
	engine *particle.Engine

	palette    colors.Palette
	paletteIdx int
	background bool
	tick       int
}

// New builds a swarm over the configured source image.
func New(cfg Config) (*Swarm, error) {
	s := &Swarm{cfg: cfg, log: core.Logger("swarm")}
	if err := s.build(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Swarm) build(seed int64) error {
	r := rng.NewRNG(seed)
	palette, idx, err := source.Palette(s.cfg.Palette, r)
	if err != nil {
		return err
	}
	src, err := source.Image(s.cfg.Image, s.cfg.Width, s.cfg.Height, seed, nil)
	if err != nil {
		return fmt.Errorf("swarm source: %w", err)
	}
	dc := particle.DefaultDrifterConfig(src.Width, src.Height)
	dc.Count = s.cfg.Count
	dc.MinSize, dc.MaxSize = s.cfg.MinSize, s.cfg.MaxSize
	dc.MaxSpeed = s.cfg.MaxSpeed
	dc.LifespanMin, dc.LifespanMax = s.cfg.LifespanMin, s.cfg.LifespanMax
	dc.Modulation = s.cfg.Modulation
	engine, err := particle.NewEngine(dc, r, src, palette)
	if err != nil {
		return err
	}
	s.src, s.engine, s.palette, s.paletteIdx = src, engine, palette, idx
	s.background = false
	s.tick = 0
	s.log.Info("built", "seed", seed, "particles", dc.Count, "palette", idx,
		"source", fmt.Sprintf("%dx%d", src.Width, src.Height), "modulation", dc.Modulation.String())
	return nil
}

// Name returns the simulation identifier.
func (s *Swarm) Name() string { return "swarm" }

// Size matches the source image.
func (s *Swarm) Size() core.Size { return core.Size{W: s.src.Width, H: s.src.Height} }

// Source exposes the image the swarm samples.
func (s *Swarm) Source() *raster.Image { return s.src }

// Reset respawns every particle with the given seed.
func (s *Swarm) Reset(seed int64) {
	if err := s.build(seed); err != nil {
		s.log.Error("reset failed", "seed", seed, "err", err)
	}
}

// Step advances every particle.
func (s *Swarm) Step() error {
	s.tick++
	if err := s.engine.Step(); err != nil {
		return fmt.Errorf("swarm tick %d: %w", s.tick, err)
	}
	return nil
}

// Draw paints the background once and then the particles, so trails
// accumulate on a persistent canvas.
func (s *Swarm) Draw(dst render.Canvas) {
	if !s.background {
		bg := colors.RGBA{A: 0xff}
		if len(s.palette) > 0 {
			bg = s.palette[0]
		}
		dst.Clear(bg)
		s.background = true
	}
	s.engine.Draw(dst)
}

// Stats reports per-step aggregates.
func (s *Swarm) Stats() map[string]float64 {
	ps := s.engine.Particles()
	var size, speed float64
	for _, p := range ps {
		size += p.Size
		speed += p.Velocity.Speed
	}
	n := float64(max(1, len(ps)))
	return map[string]float64{
		"tick":       float64(s.tick),
		"respawns":   float64(s.engine.Respawns()),
		"mean_size":  size / n,
		"mean_speed": speed / n,
	}
}

// Parameters publishes the tunables for the HUD.
func (s *Swarm) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
				core.StringParam("image", "Source image", s.cfg.Image),
				core.IntParam("palette", "Palette", s.paletteIdx),
			},
		},
		{
			Name: "Particles",
			Params: []core.Parameter{
				core.IntParam("count", "Count", s.cfg.Count),
				core.StringParam("modulation", "Luminance modulation", s.cfg.Modulation.String()),
				core.FloatParam("min_size", "Min size", s.cfg.MinSize),
				core.FloatParam("max_size", "Max size", s.cfg.MaxSize),
				core.FloatParam("max_speed", "Max speed", s.cfg.MaxSpeed),
				core.IntParam("lifespan_min", "Lifespan min", s.cfg.LifespanMin),
				core.IntParam("lifespan_max", "Lifespan max", s.cfg.LifespanMax),
			},
		},
	}}
}

func init() {
	core.Register("swarm", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
