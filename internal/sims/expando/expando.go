// Package expando explodes a source image: every pixel becomes a particle
// that travels from its place in the centered image to a mirrored, scaled
// position on the canvas, restarting each cycle. A spray factor ramps up and
// down each cycle and thins out which particles move and draw.
package expando

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/core"
	"canvas-sims/internal/dynpoint"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/modifier"
	"canvas-sims/internal/particle"
	"canvas-sims/internal/raster"
	"canvas-sims/internal/render"
	"canvas-sims/internal/sims/source"
	rng "canvas-sims/pkg/core"
)

// Config holds parameters for the expando sim.
type Config struct {
	Width        int
	Height       int
	Seed         int64
	Image        string
	ImageWidth   int
	ImageHeight  int
	KeepAspect   bool
	StepsInCycle int
	SprayStep    float64
	Background   string
	Easing       string
	Radius       float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:        640,
		Height:       480,
		Seed:         1,
		ImageWidth:   160,
		ImageHeight:  120,
		KeepAspect:   true,
		StepsInCycle: 200,
		SprayStep:    0.05,
		Background:   "#000000",
		Easing:       "linear",
		Radius:       1,
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
	c.Image = core.StringValue(cfg, "image", c.Image)
	c.ImageWidth = core.IntValue(cfg, "image_w", c.ImageWidth, core.Positive[int])
	c.ImageHeight = core.IntValue(cfg, "image_h", c.ImageHeight, core.Positive[int])
	c.KeepAspect = core.BoolValue(cfg, "keep_aspect", c.KeepAspect)
	c.StepsInCycle = core.IntValue(cfg, "steps", c.StepsInCycle, func(v int) bool { return v > 1 })
	c.SprayStep = core.FloatValue(cfg, "spray_step", c.SprayStep, core.NonNegative[float64])
	if v := core.StringValue(cfg, "background", c.Background); v != c.Background {
		if _, err := colors.ParseHex(v); err == nil {
			c.Background = v
		}
	}
	if v := core.StringValue(cfg, "easing", c.Easing); v != c.Easing {
		if _, err := modifier.Easing(v); err == nil {
			c.Easing = v
		}
	}
	c.Radius = core.FloatValue(cfg, "radius", c.Radius, core.Positive[float64])
	return c
}

// Expando implements core.Sim.
type Expando struct {
	cfg       Config
	log       *slog.Logger
	src       *raster.Image
	particles []*particle.ImageBacked
	bg        colors.RGBA
	easing    ease.TweenFunc

	spray     *gween.Tween
	sprayVal  float64
	expanding bool
	tick      int
	moved     int
}

// New builds the sim; the source image must fit inside the canvas.
func New(cfg Config) (*Expando, error) {
	bg, err := colors.ParseHex(cfg.Background)
	if err != nil {
		return nil, err
	}
	fn, err := modifier.Easing(cfg.Easing)
	if err != nil {
		return nil, err
	}
	s := &Expando{cfg: cfg, log: core.Logger("expando"), bg: bg, easing: fn}
	if err := s.build(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Expando) build(seed int64) error {
	iw, ih := min(s.cfg.ImageWidth, s.cfg.Width), min(s.cfg.ImageHeight, s.cfg.Height)
	palette, _, err := source.Palette(source.RandomPalette, rng.NewRNG(seed))
	if err != nil {
		return err
	}
	src, err := source.Image(s.cfg.Image, iw, ih, seed, palette)
	if err != nil {
		return fmt.Errorf("expando source: %w", err)
	}

	sw, sh := float64(s.cfg.Width), float64(s.cfg.Height)
	wMult, hMult := sw/float64(src.Width), sh/float64(src.Height)
	if s.cfg.KeepAspect {
		wMult = math.Min(wMult, hMult)
		hMult = wMult
	}
	// Top-left of the image when drawn at 1:1 in the middle of the canvas.
	origin := geom.Round(geom.Point{X: (sw - float64(src.Width)) / 2, Y: (sh - float64(src.Height)) / 2})
	screenCenter := geom.Round(geom.Point{X: sw / 2, Y: sh / 2})
	imageCenter := geom.Round(geom.Point{X: float64(src.Width) / 2, Y: float64(src.Height) / 2})

	particles := make([]*particle.ImageBacked, 0, len(src.Pixels))
	var buildErr error
	src.Each(func(px raster.Pixel) {
		if buildErr != nil {
			return
		}
		home := px.Location.Add(origin)
		target := geom.Round(geom.Point{
			X: float64(screenCenter.X) + float64(imageCenter.X-px.Location.X)*wMult,
			Y: float64(screenCenter.Y) + float64(imageCenter.Y-px.Location.Y)*hMult,
		})
		path, err := dynpoint.Eased(home.Point(), target.Point(), float64(s.cfg.StepsInCycle), s.easing)
		if err != nil {
			buildErr = err
			return
		}
		particles = append(particles, particle.NewImageBacked(home, px.Color, particle.FollowPath(path)))
	})
	if buildErr != nil {
		return buildErr
	}

	s.src, s.particles = src, particles
	s.tick, s.moved = 0, 0
	s.expanding = true
	s.sprayVal = 1
	s.spray = s.rampFrom(1)
	s.log.Info("built", "seed", seed, "particles", len(particles),
		"source", fmt.Sprintf("%dx%d", src.Width, src.Height), "scale", wMult)
	return nil
}

// rampFrom starts the spray tween for the current direction.
func (s *Expando) rampFrom(v float64) *gween.Tween {
	span := s.cfg.SprayStep * float64(s.cfg.StepsInCycle-1)
	to := v + span
	if !s.expanding {
		to = math.Max(1, v-span)
	}
	return gween.New(float32(v), float32(to), float32(s.cfg.StepsInCycle-1), ease.Linear)
}

// SprayFactor is the current particle stride, never below 1.
func (s *Expando) SprayFactor() int {
	return max(1, int(s.sprayVal))
}

// Name returns the simulation identifier.
func (s *Expando) Name() string { return "expando" }

// Size returns the canvas dimensions.
func (s *Expando) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Source exposes the exploded image.
func (s *Expando) Source() *raster.Image { return s.src }

// Reset rebuilds the particles with the given seed.
func (s *Expando) Reset(seed int64) {
	if err := s.build(seed); err != nil {
		s.log.Error("reset failed", "seed", seed, "err", err)
	}
}

// Step advances the spray ramp and moves every SprayFactor-th particle.
func (s *Expando) Step() error {
	s.tick++
	if s.tick%s.cfg.StepsInCycle == 0 {
		s.expanding = !s.expanding
		s.spray = s.rampFrom(s.sprayVal)
		s.log.Debug("cycle", "tick", s.tick, "expanding", s.expanding, "spray", s.SprayFactor())
	} else {
		v, _ := s.spray.Update(1)
		s.sprayVal = float64(v)
	}
	stride := s.SprayFactor()
	s.moved = 0
	for i, p := range s.particles {
		if i%stride == 0 {
			p.Update(s.tick)
			s.moved++
		}
	}
	return nil
}

// Draw clears the canvas and paints the particles the spray factor lets
// through.
func (s *Expando) Draw(dst render.Canvas) {
	dst.Clear(s.bg)
	stride := s.SprayFactor()
	for i, p := range s.particles {
		if i%stride < 2 {
			p.Draw(dst, s.cfg.Radius)
		}
	}
}

// Stats reports the spray factor and how many particles moved.
func (s *Expando) Stats() map[string]float64 {
	return map[string]float64{
		"tick":      float64(s.tick),
		"spray":     s.sprayVal,
		"moved":     float64(s.moved),
		"particles": float64(len(s.particles)),
	}
}

// Parameters publishes the tunables for the HUD.
func (s *Expando) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
				core.StringParam("image", "Source image", s.cfg.Image),
				core.IntParam("image_w", "Image width", s.cfg.ImageWidth),
				core.IntParam("image_h", "Image height", s.cfg.ImageHeight),
				core.StringParam("background", "Background", s.cfg.Background),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				core.IntParam("steps", "Steps in cycle", s.cfg.StepsInCycle),
				core.FloatParam("spray_step", "Spray step", s.cfg.SprayStep),
				core.StringParam("easing", "Easing", s.cfg.Easing),
				core.FloatParam("radius", "Radius", s.cfg.Radius),
			},
		},
	}}
}

func init() {
	core.Register("expando", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
}
