package generator

import (
	"github.com/nfrund/folio/internal/domain"
)

// Shade lightens (positive percent) or darkens (negative percent) a hex
// color. Each channel is scaled by (100+percent)/100, truncated toward zero
// and clamped to 0-255.
func Shade(color string, percent int) (string, error) {
	c, err := domain.ParseHexColor(color)
	if err != nil {
		return "", err
	}
	return domain.RGB{
		R: shadeChannel(c.R, percent),
		G: shadeChannel(c.G, percent),
		B: shadeChannel(c.B, percent),
	}.Hex(), nil
}

func shadeChannel(v, percent int) int {
	v = v * (100 + percent) / 100
	return max(0, min(255, v))
}
