package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a color split into its three 8-bit channels.
type RGB struct {
	R, G, B int
}

// ParseHexColor parses "#rgb" or "#rrggbb". Shorthand is expanded by
// doubling each digit.
func ParseHexColor(s string) (RGB, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Hex encodes the color as "#rrggbb" in lowercase.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
