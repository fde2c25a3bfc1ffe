package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"canvas-sims/internal/colors"
	"canvas-sims/pkg/core"
)

func TestPaletteSelection(t *testing.T) {
	p, idx, err := Palette(2, core.NewRNG(1))
	if err != nil || idx != 2 || len(p) != len(colors.Presets[2]) {
		t.Fatalf("Palette(2) = %v, %d, %v", p, idx, err)
	}
	for i := 0; i < 50; i++ {
		_, idx, err := Palette(RandomPalette, core.NewRNG(int64(i)))
		if err != nil {
			t.Fatalf("random palette: %v", err)
		}
		if idx < 0 || idx >= len(colors.Presets)-1 {
			t.Fatalf("random index %d", idx)
		}
	}
	if _, _, err := Palette(99, core.NewRNG(1)); err == nil {
		t.Fatal("out of range palette accepted")
	}
}

func TestImageFallsBackToNoise(t *testing.T) {
	img, err := Image("", 32, 16, 4, nil)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if img.Width != 32 || img.Height != 16 {
		t.Fatalf("noise size %dx%d", img.Width, img.Height)
	}
}

func TestImageShrinksLargeFiles(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	src.Set(0, 0, color.NRGBA{A: 0xff})
	path := filepath.Join(t.TempDir(), "big.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := Image(path, 50, 50, 0, nil)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if img.Width != 50 || img.Height != 25 {
		t.Fatalf("fitted size %dx%d, want 50x25", img.Width, img.Height)
	}
	if _, err := Image(filepath.Join(t.TempDir(), "missing.png"), 10, 10, 0, nil); err == nil {
		t.Fatal("missing file accepted")
	}
}
