//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"maps"
	"slices"
	"strings"

	"canvas-sims/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// ChangeFunc receives a nudged parameter. The app rebuilds the sim with it.
type ChangeFunc func(key, value string)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	stats      map[string]float64
	onChange   ChangeFunc

	rows         []hudRow
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

type hudRow struct {
	header    string
	param     core.Parameter
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int, onChange ChangeFunc) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width, onChange: onChange}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.SetSim(sim)
	return h
}

// SetSim points the HUD at a rebuilt simulation.
func (h *HUD) SetSim(sim core.Sim) {
	h.sim = sim
	h.title = buildTitle(sim)
	h.refresh()
}

// Update refreshes the cached snapshot and stats and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.refresh()
	h.handleInput()
}

func (h *HUD) refresh() {
	h.snapshot = core.ParameterSnapshot{}
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	}
	h.stats = nil
	if provider, ok := h.sim.(core.StatsProvider); ok {
		h.stats = provider.Stats()
	}
	h.layoutRows()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawRows()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Parameters"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s Parameters", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) handleInput() {
	if h.onChange == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for _, row := range h.rows {
		if row.header != "" || !row.param.Adjustable() {
			continue
		}
		dir := 0
		switch {
		case pointInRect(px, my, row.minusRect):
			dir = -1
		case pointInRect(px, my, row.plusRect):
			dir = 1
		}
		if dir == 0 {
			continue
		}
		if v, ok := row.param.Nudge(dir); ok {
			h.onChange(row.param.Key, v)
		}
		return
	}
}

func (h *HUD) layoutRows() {
	h.rows = h.rows[:0]
	top := controlsTop
	for _, g := range h.snapshot.Groups {
		h.rows = append(h.rows, hudRow{header: g.Name, top: top})
		top += headerHeight
		for _, p := range g.Params {
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
			minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
			h.rows = append(h.rows, hudRow{param: p, top: top, minusRect: minus, plusRect: plus})
			top += lineHeight
		}
	}
}

var (
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	headerColor = color.RGBA{R: 150, G: 170, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

func (h *HUD) drawRows() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.rows) == 0 {
		text.Draw(h.panel, "No parameters", face, panelPadding, panelPadding+headerBaseline+infoSpacing, dimColor)
	}
	bottom := controlsTop
	for _, row := range h.rows {
		if row.header != "" {
			text.Draw(h.panel, row.header, face, panelPadding, row.top+labelBaseline-6, headerColor)
			bottom = row.top + headerHeight
			continue
		}
		y := row.top + labelBaseline
		text.Draw(h.panel, row.param.Label, face, panelPadding, y, labelColor)
		value := row.param.Value
		if value == "" {
			value = "--"
		}
		right := h.width - panelPadding
		if row.param.Adjustable() {
			right = row.minusRect.Min.X - buttonGap
			h.drawButton(row.minusRect, "-", h.onChange != nil)
			h.drawButton(row.plusRect, "+", h.onChange != nil)
		}
		valueColor := labelColor
		if !row.param.Adjustable() {
			valueColor = dimColor
		}
		text.Draw(h.panel, value, face, right-text.BoundString(face, value).Dx(), y, valueColor)
		bottom = row.top + lineHeight
	}
	h.drawStats(bottom + infoSpacing/2)
}

func (h *HUD) drawStats(top int) {
	if len(h.stats) == 0 {
		return
	}
	face := basicfont.Face7x13
	text.Draw(h.panel, "Stats", face, panelPadding, top, headerColor)
	y := top + statsLine
	for _, k := range slices.Sorted(maps.Keys(h.stats)) {
		text.Draw(h.panel, fmt.Sprintf("%-12s %10.3f", k, h.stats[k]), face, panelPadding, y, dimColor)
		y += statsLine
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	tint(op, bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 24
	headerHeight   = 20
	buttonSize     = 18
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 16
	infoSpacing    = 36
	statsLine      = 15
	controlsTop    = panelPadding + headerBaseline + 14
)
