package particle

import (
	"errors"
	"math"
	"testing"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/dynpoint"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/physics"
	"canvas-sims/internal/raster"
	"canvas-sims/internal/render"
	"canvas-sims/pkg/core"
)

type flatLuma float64

func (f flatLuma) ComplementLuminanceAt(geom.IntPoint) (float64, error) { return float64(f), nil }

type failingLuma struct{}

func (failingLuma) ComplementLuminanceAt(loc geom.IntPoint) (float64, error) {
	return 0, &raster.OutOfBoundsError{Location: loc}
}

func smallConfig() DrifterConfig {
	cfg := DefaultDrifterConfig(40, 30)
	cfg.Count = 25
	cfg.LifespanMin = 3
	cfg.LifespanMax = 6
	return cfg
}

func inBounds(p Particle, max geom.IntPoint) bool {
	return p.Location.X >= 0 && p.Location.Y >= 0 && p.Location.X <= max.X && p.Location.Y <= max.Y
}

func TestDrifterStaysInBounds(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg, core.NewRNG(1), flatLuma(0.7), colors.Presets[0])
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	for step := 0; step < 200; step++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		for _, p := range e.Particles() {
			if !inBounds(p, cfg.Max) {
				t.Fatalf("step %d: particle %d escaped to %v", step, p.ID, p.Location)
			}
			if p.Size < 0 || p.Size > cfg.MaxSize {
				t.Fatalf("step %d: particle %d size %v", step, p.ID, p.Size)
			}
		}
	}
}

func TestDrifterRespawnKeepsIdentity(t *testing.T) {
	cfg := smallConfig()
	cfg.Count = 1
	palette := colors.Presets[2]
	e, err := NewEngine(cfg, core.NewRNG(7), nil, palette)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	first := e.Particles()[0]
	var before geom.Polar
	for e.Respawns() == 0 {
		before = e.Particles()[0].Velocity
		if err := e.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	p := e.Particles()[0]
	if p.Velocity == before {
		t.Fatalf("velocity not redrawn on respawn: %v", p.Velocity)
	}
	if p.Velocity.Speed < 0 || p.Velocity.Speed > cfg.MaxSpeed {
		t.Fatalf("respawn speed %v outside [0,%v]", p.Velocity.Speed, cfg.MaxSpeed)
	}
	if p.Velocity.Theta < 0 || p.Velocity.Theta >= 2*math.Pi {
		t.Fatalf("respawn angle %v outside [0,2π)", p.Velocity.Theta)
	}
	if p.ID != first.ID {
		t.Fatalf("id changed: %d -> %d", first.ID, p.ID)
	}
	if len(p.Palette) != len(palette) || &p.Palette[0] != &palette[0] {
		t.Fatalf("palette not retained")
	}
	if p.TTL != p.Lifespan {
		t.Fatalf("TTL = %d, want full lifespan %d", p.TTL, p.Lifespan)
	}
	if p.Lifespan < cfg.LifespanMin || p.Lifespan >= cfg.LifespanMax {
		t.Fatalf("lifespan %d outside [%d,%d)", p.Lifespan, cfg.LifespanMin, cfg.LifespanMax)
	}
	if p.Tick != 0 {
		t.Fatalf("tick not reset: %d", p.Tick)
	}
}

func TestDrifterSamplerErrorsSurface(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg, core.NewRNG(3), failingLuma{}, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.Step(); !errors.Is(err, raster.ErrOutOfBounds) {
		t.Fatalf("Step err = %v, want ErrOutOfBounds", err)
	}
}

func TestDrifterConfigValidation(t *testing.T) {
	cfg := smallConfig()
	cfg.LifespanMin, cfg.LifespanMax = 10, 10
	if _, err := NewEngine(cfg, core.NewRNG(1), nil, nil); !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestZeroLuminanceFreezesMotion(t *testing.T) {
	cfg := smallConfig()
	cfg.LifespanMin, cfg.LifespanMax = 1000, 1001
	e, err := NewEngine(cfg, core.NewRNG(5), flatLuma(0), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	before := make([]geom.IntPoint, len(e.Particles()))
	for i, p := range e.Particles() {
		before[i] = p.Location
	}
	if err := e.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for i, p := range e.Particles() {
		if p.Location != before[i] {
			t.Fatalf("particle %d moved under zero luminance: %v -> %v", i, before[i], p.Location)
		}
		if p.Size != 0 {
			t.Fatalf("particle %d size %v, want 0", i, p.Size)
		}
	}
}

func TestParseModulation(t *testing.T) {
	cases := map[string]Modulation{
		"":           ModulateNone,
		"none":       ModulateNone,
		"size":       ModulateSize,
		"speed,size": ModulateSpeed | ModulateSize,
		"motion":     ModulateMotion,
		"all":        ModulateAll,
	}
	for in, want := range cases {
		got, err := ParseModulation(in)
		if err != nil || got != want {
			t.Errorf("ParseModulation(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseModulation("spin"); err == nil {
		t.Fatal("unknown modulation accepted")
	}
	if s := (ModulateSpeed | ModulateSize).String(); s != "speed,size" {
		t.Fatalf("String = %q", s)
	}
}

func TestBouncerReflects(t *testing.T) {
	min, max := geom.IntPoint{}, geom.IntPoint{X: 10, Y: 10}
	b, err := NewBouncer(geom.IntPoint{X: 9, Y: 5}, geom.Vec{X: 3}, min, max, StaticSize(2), nil, StaticColor(colors.RGBA{R: 1, A: 0xff}))
	if err != nil {
		t.Fatalf("NewBouncer: %v", err)
	}
	if err := b.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if b.Location != (geom.IntPoint{X: 8, Y: 5}) {
		t.Fatalf("location = %v, want (8,5)", b.Location)
	}
	if b.Velocity != (geom.Vec{X: -3}) {
		t.Fatalf("velocity = %v, want (-3,0)", b.Velocity)
	}
	if b.Size() != 2 {
		t.Fatalf("size = %v", b.Size())
	}
}

func TestBouncerCarriesSubPixelMotion(t *testing.T) {
	max := geom.IntPoint{X: 100, Y: 100}
	b, err := NewBouncer(geom.IntPoint{X: 50, Y: 50}, geom.Vec{X: 0.25}, geom.IntPoint{}, max, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBouncer: %v", err)
	}
	for i := 0; i < 8; i++ {
		if err := b.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if b.Location.X != 52 {
		t.Fatalf("x = %d after 8 ticks at 0.25, want 52", b.Location.X)
	}
}

func TestBouncerClampsExtremeOvershoot(t *testing.T) {
	max := geom.IntPoint{X: 10, Y: 10}
	b, err := NewBouncer(geom.IntPoint{X: 5, Y: 5}, geom.Vec{X: 40}, geom.IntPoint{}, max, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBouncer: %v", err)
	}
	if err := b.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if b.Location.X < 0 || b.Location.X > 10 {
		t.Fatalf("x = %d escaped [0,10]", b.Location.X)
	}
}

func TestBouncerImageColor(t *testing.T) {
	data := make([]byte, 4*4*4)
	for i := 0; i < 16; i++ {
		data[4*i] = uint8(i * 10)
		data[4*i+3] = 0xff
	}
	img, err := raster.FromRGBA(4, 4, data)
	if err != nil {
		t.Fatalf("FromRGBA: %v", err)
	}
	b, err := NewBouncer(geom.IntPoint{X: 2, Y: 2}, geom.Vec{}, geom.IntPoint{}, geom.IntPoint{X: 7, Y: 7}, nil, nil, ImageColor(img, 2))
	if err != nil {
		t.Fatalf("NewBouncer: %v", err)
	}
	if b.Color.R != 50 {
		t.Fatalf("color R = %d, want pixel (1,1) = 50", b.Color.R)
	}
}

func TestBouncerAccelerators(t *testing.T) {
	b, err := NewBouncer(geom.IntPoint{X: 5, Y: 0}, geom.Vec{}, geom.IntPoint{}, geom.IntPoint{X: 10, Y: 10}, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBouncer: %v", err)
	}
	b.AddAccelerator(physics.Gravity(geom.Vec{Y: 1}))
	for i := 0; i < 3; i++ {
		if err := b.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if b.Location.Y != 6 {
		t.Fatalf("y = %d, want 1+2+3 = 6", b.Location.Y)
	}
}

func TestImageBackedFollowsPath(t *testing.T) {
	path, err := dynpoint.Linear(geom.Point{}, geom.Point{X: 10, Y: 10}, 10)
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	p := NewImageBacked(geom.IntPoint{}, colors.RGBA{A: 0xff}, FollowPath(path))
	p.Update(5)
	if p.Location != (geom.IntPoint{X: 5, Y: 5}) {
		t.Fatalf("location = %v", p.Location)
	}
	rec := render.NewRecorder(10, 10)
	p.Draw(rec, 1)
	if rec.Count(render.OpFillCircle) != 1 {
		t.Fatalf("expected one circle, got %v", rec.Ops())
	}
	home := NewImageBacked(geom.IntPoint{X: 3, Y: 4}, colors.RGBA{}, nil)
	home.Update(9)
	if home.Location != home.Home {
		t.Fatalf("StayHome moved to %v", home.Location)
	}
}
