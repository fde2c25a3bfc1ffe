// Package imagetrace bounces particles around the frame of a source image,
// each painted with the image color beneath it, so the image is slowly
// traced out.
package imagetrace

import (
	"fmt"
	"log/slog"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/core"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/particle"
	"canvas-sims/internal/physics"
	"canvas-sims/internal/raster"
	"canvas-sims/internal/render"
	"canvas-sims/internal/sims/source"
	rng "canvas-sims/pkg/core"
)

// Edge modes.
const (
	EdgeBounce = "bounce"
	EdgeWrap   = "wrap"
)

// Config holds parameters for the imagetrace sim.
type Config struct {
	Width       int
	Height      int
	Seed        int64
	Count       int
	Palette     int
	Image       string
	Velocity    float64
	Size        float64
	Edge        string
	FlowScale   float64
	FlowForce   float64
	SpeedLimit  float64
	GravityY    float64
	ImageSpread float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       640,
		Height:      480,
		Seed:        1,
		Count:       1000,
		Palette:     source.RandomPalette,
		Velocity:    3,
		Size:        3,
		Edge:        EdgeBounce,
		FlowScale:   0.01,
		SpeedLimit:  6,
		ImageSpread: 1,
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
	c.Count = core.IntValue(cfg, "count", c.Count, core.NonNegative[int])
	c.Palette = core.IntValue(cfg, "palette", c.Palette, func(v int) bool {
		return v == source.RandomPalette || (v >= 0 && v < len(colors.Presets))
	})
	c.Image = core.StringValue(cfg, "image", c.Image)
	c.Velocity = core.FloatValue(cfg, "velocity", c.Velocity, core.NonNegative[float64])
	c.Size = core.FloatValue(cfg, "size", c.Size, core.Positive[float64])
	if v := core.StringValue(cfg, "edge", c.Edge); v == EdgeBounce || v == EdgeWrap {
		c.Edge = v
	}
	c.FlowScale = core.FloatValue(cfg, "flow_scale", c.FlowScale, core.Positive[float64])
	c.FlowForce = core.FloatValue(cfg, "flow_force", c.FlowForce, core.NonNegative[float64])
	c.SpeedLimit = core.FloatValue(cfg, "speed_limit", c.SpeedLimit, core.Positive[float64])
	c.GravityY = core.FloatValue(cfg, "gravity", c.GravityY, nil)
	c.ImageSpread = core.FloatValue(cfg, "image_spread", c.ImageSpread, func(v float64) bool { return v >= 1 })
	return c
}

// Trace implements core.Sim.
type Trace struct {
	cfg      Config
	log      *slog.Logger
	src      *raster.Image
	w, h     int
	bouncers []*particle.Bouncer
	field    *physics.NoiseField

	palette    colors.Palette
	paletteIdx int
	background bool
	tick       int
}

// New builds the sim. The canvas is the source image scaled by ImageSpread.
func New(cfg Config) (*Trace, error) {
	s := &Trace{cfg: cfg, log: core.Logger("imagetrace")}
	if err := s.build(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Trace) build(seed int64) error {
	r := rng.NewRNG(seed)
	palette, idx, err := source.Palette(s.cfg.Palette, r)
	if err != nil {
		return err
	}
	src, err := source.Image(s.cfg.Image, s.cfg.Width, s.cfg.Height, seed, palette)
	if err != nil {
		return fmt.Errorf("imagetrace source: %w", err)
	}
	w := int(float64(src.Width) * s.cfg.ImageSpread)
	h := int(float64(src.Height) * s.cfg.ImageSpread)
	lo, hi := geom.Origin, geom.IntPoint{X: w - 1, Y: h - 1}

	var edge physics.EdgeAvoider
	switch s.cfg.Edge {
	case EdgeWrap:
		edge = physics.Wrap(lo, hi)
	default:
		edge = physics.NinetyDegreeBounce(lo, hi)
	}
	var accels []physics.Accelerator
	var field *physics.NoiseField
	if s.cfg.FlowForce > 0 {
		field = physics.NewNoiseField(seed, s.cfg.FlowScale, s.cfg.FlowForce)
		accels = append(accels, field)
	}
	if s.cfg.GravityY != 0 {
		accels = append(accels, physics.Gravity(geom.Vec{Y: s.cfg.GravityY}))
	}
	if len(accels) > 0 {
		accels = append(accels, physics.SpeedLimit(s.cfg.SpeedLimit))
	}

	lookup := particle.ImageColor(src, s.cfg.ImageSpread)
	size := particle.StaticSize(s.cfg.Size)
	bouncers := make([]*particle.Bouncer, 0, s.cfg.Count)
	for i := 0; i < s.cfg.Count; i++ {
		loc := geom.IntPoint{X: r.Pick(w), Y: r.Pick(h)}
		vel := geom.Vec{X: r.Spread(s.cfg.Velocity), Y: r.Spread(s.cfg.Velocity)}
		b, err := particle.NewBouncer(loc, vel, lo, hi, size, edge, lookup)
		if err != nil {
			return fmt.Errorf("bouncer %d: %w", i, err)
		}
		for _, a := range accels {
			b.AddAccelerator(a)
		}
		bouncers = append(bouncers, b)
	}

	s.src, s.w, s.h, s.bouncers, s.field = src, w, h, bouncers, field
	s.palette, s.paletteIdx = palette, idx
	s.background = false
	s.tick = 0
	s.log.Info("built", "seed", seed, "bouncers", len(bouncers), "palette", idx,
		"edge", s.cfg.Edge, "accelerators", len(accels))
	return nil
}

// Name returns the simulation identifier.
func (s *Trace) Name() string { return "imagetrace" }

// Size is the traced canvas size.
func (s *Trace) Size() core.Size { return core.Size{W: s.w, H: s.h} }

// Source exposes the traced image.
func (s *Trace) Source() *raster.Image { return s.src }

// FlowAt samples the flow field at a canvas position. It is zero when the
// field is disabled.
func (s *Trace) FlowAt(x, y float64) (float64, float64) {
	if s.field == nil {
		return 0, 0
	}
	v := s.field.At(geom.Floor(geom.Point{X: x, Y: y}))
	return v.X, v.Y
}

// Reset rebuilds the bouncers with the given seed.
func (s *Trace) Reset(seed int64) {
	if err := s.build(seed); err != nil {
		s.log.Error("reset failed", "seed", seed, "err", err)
	}
}

// Step moves every bouncer and refreshes its color.
func (s *Trace) Step() error {
	s.tick++
	for i, b := range s.bouncers {
		if err := b.Update(); err != nil {
			return fmt.Errorf("imagetrace tick %d bouncer %d: %w", s.tick, i, err)
		}
	}
	return nil
}

// Draw paints the background once, then every bouncer.
func (s *Trace) Draw(dst render.Canvas) {
	if !s.background {
		bg := colors.RGBA{A: 0xff}
		if len(s.palette) > 0 {
			bg = s.palette[0]
		}
		dst.Clear(bg)
		s.background = true
	}
	for _, b := range s.bouncers {
		b.Draw(dst)
	}
}

// Stats reports the mean bouncer speed.
func (s *Trace) Stats() map[string]float64 {
	var speed float64
	for _, b := range s.bouncers {
		speed += b.Velocity.Len()
	}
	return map[string]float64{
		"tick":       float64(s.tick),
		"mean_speed": speed / float64(max(1, len(s.bouncers))),
	}
}

// Parameters publishes the tunables for the HUD.
func (s *Trace) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
				core.StringParam("image", "Source image", s.cfg.Image),
				core.FloatParam("image_spread", "Image spread", s.cfg.ImageSpread),
				core.IntParam("palette", "Palette", s.paletteIdx),
			},
		},
		{
			Name: "Bouncers",
			Params: []core.Parameter{
				core.IntParam("count", "Count", s.cfg.Count),
				core.FloatParam("velocity", "Initial velocity", s.cfg.Velocity),
				core.FloatParam("size", "Size", s.cfg.Size),
				core.StringParam("edge", "Edge mode", s.cfg.Edge),
			},
		},
		{
			Name: "Forces",
			Params: []core.Parameter{
				core.FloatParam("flow_force", "Flow force", s.cfg.FlowForce),
				core.FloatParam("flow_scale", "Flow scale", s.cfg.FlowScale),
				core.FloatParam("gravity", "Gravity", s.cfg.GravityY),
				core.FloatParam("speed_limit", "Speed limit", s.cfg.SpeedLimit),
			},
		},
	}}
}

func init() {
	core.Register("imagetrace", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
