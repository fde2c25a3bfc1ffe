package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidNumber reports a NaN or infinite input to a math routine.
var ErrInvalidNumber = errors.New("invalid numeric input")

// Validate is the shared gate for numeric inputs. It fails on the first NaN
// or infinite value.
func Validate(values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: argument %d is %v", ErrInvalidNumber, i, v)
		}
	}
	return nil
}

// Clamp limits value to [min, max]. NaN collapses to min.
func Clamp(min, max, value float64) float64 {
	switch {
	case math.IsNaN(value):
		return min
	case value < min:
		return min
	case value > max:
		return max
	}
	return value
}

// SafeClamp is Clamp behind the Validate gate.
func SafeClamp(min, max, value float64) (float64, error) {
	if err := Validate(min, max, value); err != nil {
		return 0, err
	}
	return Clamp(min, max, value), nil
}

// ClampInt limits value to [min, max].
func ClampInt(min, max, value int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Compare decides whether a coordinate has crossed a limit.
type Compare func(coord, limit int) bool

// Greater reports coord > limit.
func Greater(coord, limit int) bool { return coord > limit }

// Less reports coord < limit.
func Less(coord, limit int) bool { return coord < limit }

// LimitToBoundary mirrors coord about limit when cmp reports a crossing.
func LimitToBoundary(coord, limit int, cmp Compare) int {
	if cmp(coord, limit) {
		return 2*limit - coord
	}
	return coord
}

// LimitToRange pins coord into [min, max].
func LimitToRange(coord, min, max int) int {
	return ClampInt(min, max, coord)
}
