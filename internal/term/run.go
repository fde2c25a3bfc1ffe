package term

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"canvas-sims/internal/core"
)

// Action is what a key press asks the driver to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionStep
	ActionReset
)

// KeyAction maps a key to an Action. Esc, Ctrl-C and q quit; space pauses;
// s single-steps while paused; r reseeds.
func KeyAction(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return ActionQuit
		case ' ':
			return ActionPause
		case 's', 'S':
			return ActionStep
		case 'r', 'R':
			return ActionReset
		}
	}
	return ActionNone
}

// Options tunes the terminal driver.
type Options struct {
	TPS    int
	FPS    int
	Seed   int64
	Status bool
	Logger *slog.Logger
}

// Driver owns the canvas and pacing for one sim on one screen.
type Driver struct {
	screen tcell.Screen
	sim    core.Sim
	canvas *Canvas
	opts   Options
	log    *slog.Logger

	paused bool
	ticks  int
	seed   int64
}

// NewDriver prepares sim for display on screen.
func NewDriver(screen tcell.Screen, sim core.Sim, opts Options) *Driver {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	log := opts.Logger
	if log == nil {
		log = core.Logger(sim.Name())
	}
	sz := sim.Size()
	return &Driver{
		screen: screen,
		sim:    sim,
		canvas: NewCanvas(sz.W, sz.H),
		opts:   opts,
		log:    log,
		seed:   opts.Seed,
	}
}

// Paused reports whether ticking is suspended.
func (d *Driver) Paused() bool { return d.paused }

// Ticks is the number of sim steps taken since the last reset.
func (d *Driver) Ticks() int { return d.ticks }

// Apply performs a key action. It reports false when the driver should stop.
func (d *Driver) Apply(a Action) (bool, error) {
	switch a {
	case ActionQuit:
		return false, nil
	case ActionPause:
		d.paused = !d.paused
		d.log.Info("pause toggled", "paused", d.paused, "tick", d.ticks)
	case ActionStep:
		if d.paused {
			return true, d.Frame(1)
		}
	case ActionReset:
		d.seed++
		d.sim.Reset(d.seed)
		d.ticks = 0
		d.log.Info("reset", "seed", d.seed)
	}
	return true, nil
}

// Frame advances the sim by steps ticks, draws it, and shows the screen.
func (d *Driver) Frame(steps int) error {
	for i := 0; i < steps; i++ {
		if err := d.sim.Step(); err != nil {
			return fmt.Errorf("%s tick %d: %w", d.sim.Name(), d.ticks, err)
		}
		d.ticks++
	}
	d.sim.Draw(d.canvas)
	_, sh := d.screen.Size()
	rows := sh
	if d.opts.Status && sh > 1 {
		rows = sh - 1
		d.drawStatus(sh - 1)
	}
	d.canvas.Flush(d.screen, rows)
	d.screen.Show()
	return nil
}

func (d *Driver) drawStatus(row int) {
	var b strings.Builder
	fmt.Fprintf(&b, " %s  tick %d", d.sim.Name(), d.ticks)
	if d.paused {
		b.WriteString("  [paused]")
	}
	if sp, ok := d.sim.(core.StatsProvider); ok {
		stats := sp.Stats()
		for _, k := range slices.Sorted(maps.Keys(stats)) {
			if k == "tick" {
				continue
			}
			fmt.Fprintf(&b, "  %s=%.3g", k, stats[k])
		}
	}
	sw, _ := d.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	line := []rune(b.String())
	for x := 0; x < sw; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		d.screen.SetContent(x, row, r, nil, style)
	}
}

// Run drives sim on screen until ctx is done or a quit key arrives. The
// screen must already be initialised; the caller finalises it.
func Run(ctx context.Context, screen tcell.Screen, sim core.Sim, opts Options) error {
	d := NewDriver(screen, sim, opts)
	step := core.NewFixedStep(opts.TPS)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(d.opts.FPS))
	defer ticker.Stop()

	d.log.Info("terminal run started", "tps", opts.TPS, "fps", d.opts.FPS)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				cont, err := d.Apply(KeyAction(ev.Key(), ev.Rune()))
				if err != nil {
					return err
				}
				if !cont {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			n := step.Due()
			if d.paused {
				n = 0
			}
			if err := d.Frame(n); err != nil {
				return err
			}
		}
	}
}
