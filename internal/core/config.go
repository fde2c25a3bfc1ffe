package core

import "strconv"

// IntValue parses cfg[key] as an int, keeping def when the key is missing,
// unparsable, or rejected by valid.
func IntValue(cfg map[string]string, key string, def int, valid func(int) bool) int {
	v, ok := cfg[key]
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || (valid != nil && !valid(parsed)) {
		return def
	}
	return parsed
}

// Int64Value is IntValue for 64-bit values such as seeds.
func Int64Value(cfg map[string]string, key string, def int64) int64 {
	v, ok := cfg[key]
	if !ok {
		return def
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

// FloatValue parses cfg[key] as a float64 with the same fallback rules as IntValue.
func FloatValue(cfg map[string]string, key string, def float64, valid func(float64) bool) float64 {
	v, ok := cfg[key]
	if !ok {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || (valid != nil && !valid(parsed)) {
		return def
	}
	return parsed
}

// BoolValue parses cfg[key] with strconv.ParseBool, keeping def on failure.
func BoolValue(cfg map[string]string, key string, def bool) bool {
	v, ok := cfg[key]
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

// StringValue returns cfg[key] or def.
func StringValue(cfg map[string]string, key, def string) string {
	if v, ok := cfg[key]; ok && v != "" {
		return v
	}
	return def
}

// Positive accepts values above zero.
func Positive[T int | float64](v T) bool { return v > 0 }

// NonNegative accepts zero and above.
func NonNegative[T int | float64](v T) bool { return v >= 0 }
