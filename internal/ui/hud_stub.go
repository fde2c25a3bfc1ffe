//go:build !ebiten

package ui

import "canvas-sims/internal/core"

// ChangeFunc receives a nudged parameter.
type ChangeFunc func(key, value string)

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int, ChangeFunc) *HUD { return nil }

// SetSim is a no-op in the headless build.
func (h *HUD) SetSim(core.Sim) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
