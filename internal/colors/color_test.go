package colors

import (
	"errors"
	"math"
	"testing"
)

func TestHexStrings(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"white no alpha", NewRGB(0xff, 0xff, 0xff).Hex(), "#ffffff"},
		{"white 50% alpha", NewRGBA(0xff, 0xff, 0xff, 0x80).Hex(), "#ffffff80"},
		{"red wraps oversize blue", NewRGB(0xff, 0x00, 0xf00).Hex(), "#ff0000"},
		{"red 50% alpha", NewRGBA(0xff, 0x00, 0x00, 0x80).Hex(), "#ff000080"},
		{"cmyk uses rgba layout", NewCMYK(10, 20, 150, -5).Hex(), "#0a146400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestNormalizationNeverPanics(t *testing.T) {
	c := NewRGBA(-300, math.NaN(), 511.9, math.Inf(1))
	if c != (RGBA{R: 44, G: 0, B: 255, A: 0}) {
		t.Fatalf("unexpected normalization: %+v", c)
	}
}

func TestFromNumber(t *testing.T) {
	if got := RGBFromNumber(0xFFAABB); got != (RGB{0xFF, 0xAA, 0xBB}) {
		t.Fatalf("RGBFromNumber = %+v", got)
	}
	if got := RGBAFromNumber(0xFFAABB); got != (RGBA{0x00, 0xFF, 0xAA, 0xBB}) {
		t.Fatalf("RGBAFromNumber = %+v", got)
	}
	if got := RGBFromNumber(0x0A); got != (RGB{0, 0, 0x0A}) {
		t.Fatalf("short RGB = %+v", got)
	}
	if got := RGBAFromNumber(0x0A); got != (RGBA{0, 0, 0, 0x0A}) {
		t.Fatalf("short RGBA = %+v", got)
	}
	if got := RGBFromNumber(0x040506070809); got != (RGB{0x07, 0x08, 0x09}) {
		t.Fatalf("long RGB = %+v", got)
	}
	if got := RGBAFromNumber(0x040506070809); got != (RGBA{0x06, 0x07, 0x08, 0x09}) {
		t.Fatalf("long RGBA = %+v", got)
	}
}

func TestParseHexBytes(t *testing.T) {
	good := map[string][]byte{
		"FFFFFF": {255, 255, 255},
		"FFAA67": {255, 170, 103},
		"00aa67": {0, 170, 103},
	}
	for in, want := range good {
		got, err := ParseHexBytes(in)
		if err != nil {
			t.Fatalf("ParseHexBytes(%q) error: %v", in, err)
		}
		if string(got) != string(want) {
			t.Fatalf("ParseHexBytes(%q) = %v, want %v", in, got, want)
		}
	}

	empty, err := ParseHexBytes("")
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty input = %v, %v; want [], nil", empty, err)
	}

	for _, bad := range []string{"FAA67", "XXAA67", "  "} {
		if _, err := ParseHexBytes(bad); !errors.Is(err, ErrMalformedHex) {
			t.Fatalf("ParseHexBytes(%q) error = %v, want ErrMalformedHex", bad, err)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil || c != (RGBA{255, 128, 0, 255}) {
		t.Fatalf("ParseHex = %+v, %v", c, err)
	}
	c, err = ParseHex("10203040")
	if err != nil || c != (RGBA{0x10, 0x20, 0x30, 0x40}) {
		t.Fatalf("ParseHex with alpha = %+v, %v", c, err)
	}
	if _, err := ParseHex("#abc"); !errors.Is(err, ErrMalformedHex) {
		t.Fatalf("short hex error = %v", err)
	}
}

func TestLuminance(t *testing.T) {
	if got := (RGB{255, 255, 255}).Luminance(); math.Abs(got-255) > 1e-9 {
		t.Fatalf("white luminance = %v", got)
	}
	if got := ComplementLuminance(RGBA{A: 255}); got != 1 {
		t.Fatalf("black complement = %v, want 1", got)
	}
	if got := ComplementLuminance(RGBA{255, 255, 255, 255}); math.Abs(got) > 1e-9 {
		t.Fatalf("white complement = %v, want 0", got)
	}
	if _, err := Luminance(1, math.NaN(), 3); err == nil {
		t.Fatal("NaN channel accepted")
	}
}

func TestCMYKToRGB(t *testing.T) {
	if got := NewCMYK(0, 0, 0, 0).RGB(); got != (RGB{255, 255, 255}) {
		t.Fatalf("no ink = %+v", got)
	}
	if got := NewCMYK(0, 0, 0, 100).RGB(); got != (RGB{}) {
		t.Fatalf("full key = %+v", got)
	}
	if got := NewCMYK(100, 0, 100, 0).RGB(); got != (RGB{0, 255, 0}) {
		t.Fatalf("cyan+yellow = %+v", got)
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGBA{10, 20, 30, 0}
	b := RGBA{200, 100, 50, 255}
	if Blend(a, b, 0) != a || Blend(a, b, 1) != b {
		t.Fatal("blend endpoints should return inputs")
	}
	mid := Blend(a, b, 0.5)
	if mid.A < 127 || mid.A > 128 {
		t.Fatalf("alpha midpoint = %d", mid.A)
	}
}

func TestPresetBounds(t *testing.T) {
	if _, err := Preset(len(Presets)); err == nil {
		t.Fatal("out of range preset accepted")
	}
	p, err := Preset(0)
	if err != nil || len(p) != 5 {
		t.Fatalf("Preset(0) = %v, %v", p, err)
	}
}
