package particle

import (
	"fmt"
	"strings"
)

// Modulation selects which particle quantities are scaled by the sampled
// complement luminance (1 - luma/255) each step.
type Modulation uint8

const (
	// ModulateSpeed scales the speed used for the step.
	ModulateSpeed Modulation = 1 << iota
	// ModulateAngle scales the heading used for the step.
	ModulateAngle
	// ModulateSize scales the radius after it is perturbed and clamped.
	ModulateSize

	ModulateNone   Modulation = 0
	ModulateMotion            = ModulateSpeed | ModulateAngle
	ModulateAll               = ModulateMotion | ModulateSize
)

var modulationNames = []struct {
	name string
	bit  Modulation
}{
	{"speed", ModulateSpeed},
	{"angle", ModulateAngle},
	{"size", ModulateSize},
}

// Has reports whether every bit of f is set in m.
func (m Modulation) Has(f Modulation) bool { return m&f == f && f != 0 }

func (m Modulation) String() string {
	if m == ModulateNone {
		return "none"
	}
	var parts []string
	for _, n := range modulationNames {
		if m.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseModulation reads a comma separated list of speed, angle, size, motion,
// all or none.
func ParseModulation(s string) (Modulation, error) {
	var m Modulation
	for _, part := range strings.Split(s, ",") {
		switch p := strings.TrimSpace(strings.ToLower(part)); p {
		case "", "none":
		case "motion":
			m |= ModulateMotion
		case "all":
			m |= ModulateAll
		default:
			found := false
			for _, n := range modulationNames {
				if n.name == p {
					m |= n.bit
					found = true
				}
			}
			if !found {
				return 0, fmt.Errorf("unknown modulation %q", p)
			}
		}
	}
	return m, nil
}
