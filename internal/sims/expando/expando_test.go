package expando

import (
	"testing"

	"canvas-sims/internal/core"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/render"
)

func smallConfig() Config {
	return FromMap(map[string]string{
		"w": "40", "h": "40", "image_w": "10", "image_h": "10",
		"steps": "10", "spray_step": "0.5", "seed": "4",
	})
}

func TestFromMapRejectsUnknownEasing(t *testing.T) {
	c := FromMap(map[string]string{"easing": "wobble", "background": "nope", "steps": "1"})
	def := DefaultConfig()
	if c.Easing != def.Easing || c.Background != def.Background || c.StepsInCycle != def.StepsInCycle {
		t.Fatalf("invalid values should keep defaults: %+v", c)
	}
	if FromMap(map[string]string{"easing": "out-bounce"}).Easing != "out-bounce" {
		t.Fatal("known easing rejected")
	}
}

func TestParticlesStartCenteredAndTravel(t *testing.T) {
	s, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(s.particles) != 100 {
		t.Fatalf("particles = %d, want 100", len(s.particles))
	}
	p := s.particles[0]
	if want := (geom.IntPoint{X: 15, Y: 15}); p.Location != want {
		t.Fatalf("start = %v, want %v", p.Location, want)
	}
	for i := 0; i < 5; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}
	// Halfway between (15,15) and the mirrored target (40,40).
	if want := (geom.IntPoint{X: 28, Y: 28}); p.Location != want {
		t.Fatalf("midway = %v, want %v", p.Location, want)
	}
}

func TestSprayRampsUpThenDown(t *testing.T) {
	s, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Step()
	if s.SprayFactor() != 1 || s.moved != 100 {
		t.Fatalf("after one step spray=%d moved=%d", s.SprayFactor(), s.moved)
	}
	for i := 1; i < 9; i++ {
		s.Step()
	}
	if s.SprayFactor() != 5 {
		t.Fatalf("peak spray = %d, want 5", s.SprayFactor())
	}
	if s.moved != 20 {
		t.Fatalf("moved = %d, want 20", s.moved)
	}

	rec := render.NewRecorder(40, 40)
	s.Draw(rec)
	if rec.Count(render.OpClear) != 1 || rec.Count(render.OpFillCircle) != 40 {
		t.Fatalf("draw ops: clear=%d circles=%d", rec.Count(render.OpClear), rec.Count(render.OpFillCircle))
	}

	for i := 0; i < 10; i++ {
		s.Step()
	}
	if s.SprayFactor() != 1 {
		t.Fatalf("spray after contracting = %d, want 1", s.SprayFactor())
	}
}

func TestRegisteredAndReset(t *testing.T) {
	sim, err := core.New("expando", map[string]string{"w": "20", "h": "20", "image_w": "40", "image_h": "5"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := sim.(*Expando)
	if s.Source().Width != 20 || s.Source().Height != 5 {
		t.Fatalf("source %dx%d should be capped to the canvas", s.Source().Width, s.Source().Height)
	}
	s.Step()
	s.Reset(7)
	if s.tick != 0 || s.SprayFactor() != 1 {
		t.Fatalf("reset left tick=%d spray=%d", s.tick, s.SprayFactor())
	}
	if len(s.Parameters().Groups) != 2 {
		t.Fatal("expected two parameter groups")
	}
}
