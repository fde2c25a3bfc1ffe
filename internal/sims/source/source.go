// Package source resolves the inputs shared by the image-driven sims: the
// source raster and the color palette.
package source

import (
	"fmt"

	"canvas-sims/internal/colors"
	"canvas-sims/internal/raster"
	"canvas-sims/pkg/core"
)

// RandomPalette selects a preset at random.
const RandomPalette = -1

// Palette returns the preset at index, or a random preset when index is
// RandomPalette. The last preset is never picked at random.
func Palette(index int, rng *core.RNG) (colors.Palette, int, error) {
	if index == RandomPalette {
		n := len(colors.Presets) - 1
		if n < 1 {
			n = 1
		}
		index = rng.Pick(n)
	}
	p, err := colors.Preset(index)
	if err != nil {
		return nil, index, err
	}
	return p, index, nil
}

// Image loads the file at path, shrinking it to fit w*h when it is larger.
// An empty path yields Perlin noise of size w*h tinted with palette.
func Image(path string, w, h int, seed int64, palette colors.Palette) (*raster.Image, error) {
	if path == "" {
		return raster.Noise(w, h, seed, palette)
	}
	img, err := raster.Load(path)
	if err != nil {
		return nil, err
	}
	if img.Width <= w && img.Height <= h {
		return img, nil
	}
	fitted, _, _, err := raster.Fit(img, w, h, true)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", path, err)
	}
	return fitted, nil
}
