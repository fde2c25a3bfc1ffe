package core

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidRange reports a random range whose bounds are inverted or empty.
var ErrInvalidRange = errors.New("invalid random range")

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// IntRange returns a random int in [min, max). max itself is never returned,
// so min must be strictly below max.
func (r *RNG) IntRange(min, max int) (int, error) {
	if min >= max {
		return 0, fmt.Errorf("%w: min %d must be < max %d", ErrInvalidRange, min, max)
	}
	// The span is computed in uint64 so wide ranges do not overflow.
	span := uint64(max) - uint64(min)
	return min + int(r.r.Uint64N(span)), nil
}

// FloatRange returns a random float64 in [min, max). Equal bounds yield min.
func (r *RNG) FloatRange(min, max float64) (float64, error) {
	if math.IsNaN(min) || math.IsNaN(max) || min > max {
		return 0, fmt.Errorf("%w: min %v must be <= max %v", ErrInvalidRange, min, max)
	}
	return min + r.r.Float64()*(max-min), nil
}

// Spread returns a random float64 in [-amount, amount). Negative amounts are
// treated as their magnitude.
func (r *RNG) Spread(amount float64) float64 {
	amount = math.Abs(amount)
	return -amount + r.r.Float64()*2*amount
}

// Angle returns a random angle in [0, 2π).
func (r *RNG) Angle() float64 {
	return r.r.Float64() * 2 * math.Pi
}

// Pick returns a random index into a collection of length n, or -1 when n is 0.
func (r *RNG) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	return r.r.IntN(n)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
