package term

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/core"
	"canvas-sims/internal/geom"
	"canvas-sims/internal/render"
)

var (
	red  = colors.RGBA{R: 255, A: 255}
	blue = colors.RGBA{B: 255, A: 255}
)

// bands paints the top half red and the bottom half blue.
type bands struct {
	steps  int
	resets int
	fail   bool
}

func (b *bands) Name() string    { return "bands" }
func (b *bands) Size() core.Size { return core.Size{W: 8, H: 6} }
func (b *bands) Reset(int64)     { b.resets++; b.steps = 0 }
func (b *bands) Stats() map[string]float64 {
	return map[string]float64{"tick": float64(b.steps), "width": 8}
}
func (b *bands) Step() error {
	if b.fail {
		return errors.New("boom")
	}
	b.steps++
	return nil
}
func (b *bands) Draw(dst render.Canvas) {
	dst.Clear(blue)
	dst.FillRect(geom.IntPoint{}, geom.IntPoint{X: 8, Y: 3}, red)
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	// Init resets the simulation screen to 80x25.
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func cellColors(t *testing.T, screen tcell.Screen, x, y int) (fg, bg tcell.Color) {
	t.Helper()
	mainc, _, style, _ := screen.GetContent(x, y)
	if mainc != halfBlock {
		t.Fatalf("cell %d,%d = %q, want half block", x, y, mainc)
	}
	fg, bg, _ = style.Decompose()
	return fg, bg
}

func TestFlushSamplesTwoRowsPerCell(t *testing.T) {
	screen := newScreen(t, 4, 3)
	d := NewDriver(screen, &bands{}, Options{})
	if err := d.Frame(2); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if d.Ticks() != 2 {
		t.Fatalf("ticks = %d, want 2", d.Ticks())
	}
	tests := []struct {
		row    int
		fg, bg colors.RGBA
	}{
		{0, red, red},
		{1, red, blue},
		{2, blue, blue},
	}
	for _, tt := range tests {
		for x := 0; x < 4; x++ {
			fg, bg := cellColors(t, screen, x, tt.row)
			if fg != Color(tt.fg) || bg != Color(tt.bg) {
				t.Errorf("cell %d,%d fg=%v bg=%v, want %v/%v", x, tt.row, fg, bg, Color(tt.fg), Color(tt.bg))
			}
		}
	}
}

func TestStatusLineReservesLastRow(t *testing.T) {
	screen := newScreen(t, 40, 4)
	d := NewDriver(screen, &bands{}, Options{Status: true})
	if err := d.Frame(1); err != nil {
		t.Fatal(err)
	}
	var line strings.Builder
	for x := 0; x < 40; x++ {
		r, _, _, _ := screen.GetContent(x, 3)
		line.WriteRune(r)
	}
	if got := line.String(); !strings.Contains(got, "bands") || !strings.Contains(got, "width=8") {
		t.Fatalf("status line = %q", got)
	}
	if strings.Contains(line.String(), "tick=") {
		t.Fatal("tick should not be repeated as a stat")
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Action
	}{
		{tcell.KeyEscape, 0, ActionQuit},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyRune, ' ', ActionPause},
		{tcell.KeyRune, 's', ActionStep},
		{tcell.KeyRune, 'r', ActionReset},
		{tcell.KeyRune, 'x', ActionNone},
		{tcell.KeyEnter, 0, ActionNone},
	}
	for _, tt := range tests {
		if got := KeyAction(tt.key, tt.r); got != tt.want {
			t.Errorf("KeyAction(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestApplyPauseStepReset(t *testing.T) {
	screen := newScreen(t, 4, 3)
	sim := &bands{}
	d := NewDriver(screen, sim, Options{Seed: 10})

	if cont, _ := d.Apply(ActionStep); !cont || sim.steps != 0 {
		t.Fatal("single step should only work while paused")
	}
	d.Apply(ActionPause)
	if !d.Paused() {
		t.Fatal("expected paused")
	}
	if _, err := d.Apply(ActionStep); err != nil || sim.steps != 1 {
		t.Fatalf("step while paused: steps=%d err=%v", sim.steps, err)
	}
	d.Apply(ActionReset)
	if sim.resets != 1 || d.Ticks() != 0 {
		t.Fatalf("reset: resets=%d ticks=%d", sim.resets, d.Ticks())
	}
	if cont, _ := d.Apply(ActionQuit); cont {
		t.Fatal("quit should stop the driver")
	}
}

func TestFrameWrapsStepErrors(t *testing.T) {
	screen := newScreen(t, 4, 3)
	d := NewDriver(screen, &bands{fail: true}, Options{})
	err := d.Frame(1)
	if err == nil || !strings.Contains(err.Error(), "bands tick 0") {
		t.Fatalf("err = %v", err)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	screen := newScreen(t, 8, 4)
	sim := &bands{}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := Run(ctx, screen, sim, Options{TPS: 60, FPS: 100}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.steps == 0 {
		t.Fatal("sim never stepped")
	}
}
