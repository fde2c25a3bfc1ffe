package core

import (
	"errors"
	"math"
	"testing"
)

func TestIntRangeNeverReturnsMax(t *testing.T) {
	rng := NewRNG(7)
	gotMin, gotMaxMinusOne := false, false
	for i := 0; i < 1000; i++ {
		v, err := rng.IntRange(0, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < 0 || v >= 10 {
			t.Fatalf("value %d outside [0,10)", v)
		}
		switch v {
		case 0:
			gotMin = true
		case 9:
			gotMaxMinusOne = true
		}
	}
	if !gotMin || !gotMaxMinusOne {
		t.Fatalf("expected both 0 and 9 over 1000 draws, got min=%v max-1=%v", gotMin, gotMaxMinusOne)
	}
}

func TestIntRangeRejectsInvertedBounds(t *testing.T) {
	rng := NewRNG(1)
	for _, tc := range [][2]int{{5, 5}, {10, 0}} {
		if _, err := rng.IntRange(tc[0], tc[1]); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("IntRange(%d,%d) error = %v, want ErrInvalidRange", tc[0], tc[1], err)
		}
	}
}

func TestIntRangeWideBounds(t *testing.T) {
	rng := NewRNG(1)
	cases := [][2]int{{math.MinInt, math.MaxInt}, {math.MinInt, 0}, {-1, math.MaxInt}, {math.MaxInt - 1, math.MaxInt}}
	for _, tc := range cases {
		for i := 0; i < 200; i++ {
			v, err := rng.IntRange(tc[0], tc[1])
			if err != nil {
				t.Fatalf("IntRange(%d,%d): %v", tc[0], tc[1], err)
			}
			if v < tc[0] || v >= tc[1] {
				t.Fatalf("IntRange(%d,%d) = %d out of range", tc[0], tc[1], v)
			}
		}
	}
}

func TestFloatRange(t *testing.T) {
	rng := NewRNG(3)
	for i := 0; i < 500; i++ {
		v, err := rng.FloatRange(-2, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < -2 || v >= 2 {
			t.Fatalf("value %f outside [-2,2)", v)
		}
	}
	if v, err := rng.FloatRange(3, 3); err != nil || v != 3 {
		t.Fatalf("FloatRange(3,3) = %v, %v; want 3, nil", v, err)
	}
	if _, err := rng.FloatRange(4, 1); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestDeterministicSeed(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 50; i++ {
		va, _ := a.IntRange(0, 1000)
		vb, _ := b.IntRange(0, 1000)
		if va != vb {
			t.Fatalf("draw %d differs: %d vs %d", i, va, vb)
		}
	}
}
