package core

import (
	"fmt"
	"sort"

	"canvas-sims/internal/render"
)

// Size describes the dimensions of a simulation surface in pixels.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a generative simulation must implement.
// A driver calls Step then Draw once per frame.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() error
	Draw(dst render.Canvas)
}

// StatsProvider is implemented by sims that expose per-step metrics.
type StatsProvider interface {
	Stats() map[string]float64
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists registered sims in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named sim from the registry.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %v)", name, Names())
	}
	return f(cfg)
}
