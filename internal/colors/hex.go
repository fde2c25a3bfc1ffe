package colors

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHex reports hex input of odd length or with non-hex digits.
var ErrMalformedHex = errors.New("malformed hex string")

// ParseHexBytes decodes two hex digits per byte, so "FFFFFF" is
// [255 255 255]. The empty string decodes to an empty slice.
func ParseHexBytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %q has odd length, pad it", ErrMalformedHex, s)
	}
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedHex, s, err)
	}
	return out, nil
}

// ParseHex reads "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
// Six-digit input is opaque.
func ParseHex(s string) (RGBA, error) {
	raw := strings.TrimPrefix(s, "#")
	if len(raw) != 6 && len(raw) != 8 {
		return RGBA{}, fmt.Errorf("%w: %q must have 6 or 8 digits", ErrMalformedHex, s)
	}
	b, err := ParseHexBytes(raw)
	if err != nil {
		return RGBA{}, err
	}
	c := RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}
