package core

import (
	"math"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes free-form values such as file paths.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single tunable value exposed by a simulation. Key
// matches the factory config map key that sets it.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by sims that publish their tunables.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// IntParam builds an integer Parameter.
func IntParam(key, label string, value int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(value)}
}

// Int64Param builds an integer Parameter from a 64-bit value.
func Int64Param(key, label string, value int64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

// FloatParam builds a floating-point Parameter.
func FloatParam(key, label string, value float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

// StringParam builds a free-form Parameter.
func StringParam(key, label, value string) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeString, Value: value}
}

// Adjustable reports whether the HUD can nudge p.
func (p Parameter) Adjustable() bool {
	return p.Type == ParamTypeInt || p.Type == ParamTypeFloat
}

// Nudge returns p's value moved one step in direction's sign. Ints move by
// one; floats move by a tenth of their leading decimal place. It reports
// false for values it cannot parse or adjust.
func (p Parameter) Nudge(direction int) (string, bool) {
	if direction == 0 {
		return p.Value, false
	}
	sign := 1
	if direction < 0 {
		sign = -1
	}
	switch p.Type {
	case ParamTypeInt:
		v, err := strconv.ParseInt(p.Value, 10, 64)
		if err != nil {
			return p.Value, false
		}
		return strconv.FormatInt(v+int64(sign), 10), true
	case ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return p.Value, false
		}
		step, digits := FloatStep(v)
		next := math.Round((v+float64(sign)*step)/step) * step
		return strconv.FormatFloat(next, 'f', digits, 64), true
	}
	return p.Value, false
}

// FloatStep is the nudge increment for v, a tenth of its leading decimal
// place or 0.01 for zero, and the number of decimals that step needs.
func FloatStep(v float64) (float64, int) {
	exp := -2
	if v != 0 {
		exp = int(math.Floor(math.Log10(math.Abs(v)))) - 1
	}
	return math.Pow(10, float64(exp)), max(0, -exp)
}

// Values flattens the snapshot back into a factory config map.
func (s ParameterSnapshot) Values() map[string]string {
	out := map[string]string{}
	for _, g := range s.Groups {
		for _, p := range g.Params {
			out[p.Key] = p.Value
		}
	}
	return out
}

// Lookup finds the parameter with the given key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}
