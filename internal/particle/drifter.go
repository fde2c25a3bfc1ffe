// Package particle implements the pooled moving entities sims are built
// from: image-modulated drifters, reflecting bouncers and particles whose
// location is a function of time.
package particle

import (
	"errors"
	"fmt"
	"math"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/render"
	"canvas-sims/pkg/core"
)

// Particle is a drifting entity with a polar velocity. Location always lies
// within [0, Max] of the engine that owns it.
type Particle struct {
	ID       int
	Location geom.IntPoint
	Velocity geom.Polar
	Tick     int
	TTL      int
	Lifespan int
	Size     float64
	Color    colors.RGBA
	Palette  colors.Palette
}

// DrifterConfig controls how drifters are spawned and perturbed.
type DrifterConfig struct {
	Count       int
	Max         geom.IntPoint
	MinSize     float64
	MaxSize     float64
	MaxSpeed    float64
	LifespanMin int
	LifespanMax int
	SpeedJitter float64
	AngleJitter float64
	Modulation  Modulation
}

// DefaultDrifterConfig mirrors the stock particle tuning for a w*h domain.
func DefaultDrifterConfig(w, h int) DrifterConfig {
	return DrifterConfig{
		Count:       500,
		Max:         geom.IntPoint{X: w - 1, Y: h - 1},
		MinSize:     0.5,
		MaxSize:     5,
		MaxSpeed:    9,
		LifespanMin: 100,
		LifespanMax: 500,
		SpeedJitter: 0.01,
		AngleJitter: math.Pi / 8,
		Modulation:  ModulateAll,
	}
}

func (c DrifterConfig) validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count %d must not be negative", c.Count)
	}
	if c.Max.X < 0 || c.Max.Y < 0 {
		return fmt.Errorf("max location %v must not be negative", c.Max)
	}
	if err := geom.Validate(c.MinSize, c.MaxSize, c.MaxSpeed, c.SpeedJitter, c.AngleJitter); err != nil {
		return err
	}
	if c.MinSize > c.MaxSize {
		return fmt.Errorf("%w: size [%v,%v]", core.ErrInvalidRange, c.MinSize, c.MaxSize)
	}
	if c.LifespanMin >= c.LifespanMax {
		return fmt.Errorf("%w: lifespan [%d,%d)", core.ErrInvalidRange, c.LifespanMin, c.LifespanMax)
	}
	return nil
}

// Engine owns a fixed pool of drifters. Entities are never removed; when a
// drifter's TTL drops below zero it is respawned in place.
type Engine struct {
	cfg       DrifterConfig
	rng       *core.RNG
	sampler   LuminanceSampler
	particles []Particle
	respawns  int
}

// NewEngine spawns cfg.Count drifters at random locations. sampler may be nil,
// in which case no luminance modulation takes place.
func NewEngine(cfg DrifterConfig, rng *core.RNG, sampler LuminanceSampler, palette colors.Palette) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("drifter config: %w", err)
	}
	e := &Engine{cfg: cfg, rng: rng, sampler: sampler, particles: make([]Particle, cfg.Count)}
	for i := range e.particles {
		loc := geom.IntPoint{X: rng.Pick(cfg.Max.X + 1), Y: rng.Pick(cfg.Max.Y + 1)}
		if err := e.spawn(&e.particles[i], i, loc, palette); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// spawn (re)initializes p with fresh velocity, size and lifespan.
func (e *Engine) spawn(p *Particle, id int, loc geom.IntPoint, palette colors.Palette) error {
	speed, err := e.rng.FloatRange(0, e.cfg.MaxSpeed)
	if err != nil {
		return err
	}
	size, err := e.rng.FloatRange(e.cfg.MinSize, e.cfg.MaxSize)
	if err != nil {
		return err
	}
	life, err := e.rng.IntRange(e.cfg.LifespanMin, e.cfg.LifespanMax)
	if err != nil {
		return err
	}
	*p = Particle{
		ID:       id,
		Location: e.clampLocation(loc),
		Velocity: geom.Polar{Speed: speed, Theta: e.rng.Angle()},
		Lifespan: life,
		TTL:      life,
		Size:     size,
		Color:    palette.Random(e.rng),
		Palette:  palette,
	}
	return nil
}

func (e *Engine) clampLocation(loc geom.IntPoint) geom.IntPoint {
	return geom.IntPoint{
		X: geom.ClampInt(0, e.cfg.Max.X, loc.X),
		Y: geom.ClampInt(0, e.cfg.Max.Y, loc.Y),
	}
}

// Particles exposes the pool. Callers must not append to it.
func (e *Engine) Particles() []Particle { return e.particles }

// Respawns counts respawns since construction.
func (e *Engine) Respawns() int { return e.respawns }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() DrifterConfig { return e.cfg }

// Step advances every drifter by one tick.
func (e *Engine) Step() error {
	var errs []error
	for i := range e.particles {
		if err := e.update(&e.particles[i]); err != nil {
			errs = append(errs, fmt.Errorf("particle %d: %w", e.particles[i].ID, err))
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) update(p *Particle) error {
	lum := 1.0
	if e.sampler != nil && e.cfg.Modulation != ModulateNone {
		v, err := e.sampler.ComplementLuminanceAt(p.Location)
		if err != nil {
			return err
		}
		lum = v
	}

	dSize := e.rng.Spread(e.cfg.MaxSize / 10)
	p.Velocity.Speed += e.rng.Spread(e.cfg.SpeedJitter)
	p.Velocity.Theta += e.rng.Spread(e.cfg.AngleJitter)

	speed, theta := p.Velocity.Speed, p.Velocity.Theta
	if e.cfg.Modulation.Has(ModulateSpeed) {
		speed *= lum
	}
	if e.cfg.Modulation.Has(ModulateAngle) {
		theta *= lum
	}
	delta, err := geom.FromPolarToXY(speed, theta)
	if err != nil {
		return err
	}
	p.Location = e.clampLocation(p.Location.Add(delta))
	if p.Location.X >= e.cfg.Max.X {
		p.Velocity.Theta += math.Pi / 2
	}
	if p.Location.Y >= e.cfg.Max.Y {
		p.Velocity.Theta += math.Pi / 2
	}

	p.Size = geom.Clamp(e.cfg.MinSize, e.cfg.MaxSize, p.Size+dSize)
	if e.cfg.Modulation.Has(ModulateSize) {
		p.Size *= lum
	}

	p.Tick++
	p.TTL--
	if p.TTL < 0 {
		e.respawns++
		return e.spawn(p, p.ID, p.Location, p.Palette)
	}
	return nil
}

// Draw fills one circle per drifter.
func (e *Engine) Draw(dst render.Canvas) {
	for i := range e.particles {
		p := &e.particles[i]
		dst.FillCircle(p.Location.Point(), p.Size, p.Color)
	}
}
