package modifier

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func TestWavesWrapAtPeriod(t *testing.T) {
	sin, err := SinWave(10)
	if err != nil {
		t.Fatalf("SinWave: %v", err)
	}
	cos, err := CosWave(10)
	if err != nil {
		t.Fatalf("CosWave: %v", err)
	}
	if got := sin.Value(13); !near(got, math.Sin(3)) {
		t.Fatalf("sin(13 mod 10) = %v", got)
	}
	if got := cos.Value(20); !near(got, 1) {
		t.Fatalf("cos(20 mod 10) = %v", got)
	}
}

func TestWaveRejectsBadPeriod(t *testing.T) {
	for _, p := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := SinWave(p); err == nil {
			t.Fatalf("SinWave(%v) accepted", p)
		}
	}
}

func TestTriangle(t *testing.T) {
	tri, err := Triangle(4)
	if err != nil {
		t.Fatalf("Triangle: %v", err)
	}
	want := map[float64]float64{0: 0, 1: 0.5, 2: 1, 3: 0.5, 4: 0, -1: 0.5}
	for in, w := range want {
		if got := tri.Value(in); !near(got, w) {
			t.Errorf("Triangle(%v) = %v, want %v", in, got, w)
		}
	}
}

func TestEasedLinearSawtooth(t *testing.T) {
	m, err := Eased(ease.Linear, 2, 6, 4)
	if err != nil {
		t.Fatalf("Eased: %v", err)
	}
	cases := map[float64]float64{0: 2, 1: 3, 2: 4, 4: 2, 5: 3}
	for in, w := range cases {
		if got := m.Value(in); !near(got, w) {
			t.Errorf("Eased(%v) = %v, want %v", in, got, w)
		}
	}
}

func TestEasingLookup(t *testing.T) {
	if _, err := Easing("in-out-sine"); err != nil {
		t.Fatalf("Easing: %v", err)
	}
	if _, err := Easing("wobble"); err == nil {
		t.Fatal("unknown easing accepted")
	}
	if got := Affine(Constant(2), 3, 1).Value(0); got != 7 {
		t.Fatalf("Affine = %v", got)
	}
}
