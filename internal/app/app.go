//go:build ebiten

package app

import (
	"fmt"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"time"

	"canvas-sims/internal/core"
	"canvas-sims/internal/render"
	"canvas-sims/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	cfg     map[string]string
	canvas  *render.PixelCanvas
	painter *render.Painter
	overlay *ui.Overlay
	hud     *ui.HUD
	log     *slog.Logger

	hudWidth int
	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	ticks    int
}

// New constructs a Game for the provided simulation. cfg is the factory
// config the sim was built from; HUD edits rebuild the sim from it.
func New(sim core.Sim, cfg map[string]string, scale int, seed int64, hudWidth int) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		sim:      sim,
		cfg:      maps.Clone(cfg),
		overlay:  ui.NewOverlay(sim, scale),
		log:      core.Logger(sim.Name()),
		hudWidth: hudWidth,
		scale:    scale,
		seed:     seed,
	}
	if g.cfg == nil {
		g.cfg = map[string]string{}
	}
	g.hud = ui.NewHUD(sim, hudWidth, g.setParameter)
	g.allocate()
	return g
}

func (g *Game) allocate() {
	s := g.sim.Size()
	g.canvas = render.NewPixelCanvas(s.W, s.H)
	g.painter = render.NewPainter(s.W, s.H)
}

// setParameter rebuilds the sim with one config key changed. A rejected
// value leaves the running sim untouched.
func (g *Game) setParameter(key, value string) {
	cfg := maps.Clone(g.cfg)
	cfg[key] = value
	cfg["seed"] = fmt.Sprint(g.seed)
	sim, err := core.New(g.sim.Name(), cfg)
	if err != nil {
		g.log.Warn("parameter rejected", "key", key, "value", value, "err", err)
		return
	}
	g.log.Info("parameter changed", "key", key, "value", value)
	g.cfg = cfg
	g.sim = sim
	g.ticks = 0
	g.overlay.SetSim(sim)
	g.hud.SetSim(sim)
	g.allocate()
	ebiten.SetWindowSize(g.Layout(0, 0))
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.ticks = 0
	g.tickOnce = false
	g.log.Info("reset", "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.screenshot()
	}

	g.overlay.Update()
	g.hud.Update(g.sim.Size().W * g.scale)

	if !g.paused || g.tickOnce {
		if err := g.sim.Step(); err != nil {
			return fmt.Errorf("%s tick %d: %w", g.sim.Name(), g.ticks, err)
		}
		g.ticks++
		g.tickOnce = false
	}
	return nil
}

func (g *Game) screenshot() {
	name := fmt.Sprintf("%s-%d-%d.png", g.sim.Name(), g.seed, g.ticks)
	f, err := os.Create(name)
	if err != nil {
		g.log.Error("screenshot", "err", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, g.canvas.Image()); err != nil {
		g.log.Error("screenshot", "err", err)
		return
	}
	g.log.Info("screenshot saved", "file", name)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.sim.Draw(g.canvas)
	g.painter.Blit(screen, g.canvas, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
