package generator

import (
	"testing"

	"github.com/nfrund/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShade(t *testing.T) {
	tests := []struct {
		color   string
		percent int
		want    string
	}{
		{"#808080", 0, "#808080"},
		{"#000000", 50, "#000000"},
		{"#ffffff", -50, "#7f7f7f"},
		{"#ffffff", 50, "#ffffff"},
		{"#4f46e5", -20, "#3f38b7"},
		{"#4F46E5", -20, "#3f38b7"},
		{"#fff", -50, "#7f7f7f"},
		{"#102030", -100, "#000000"},
		{"#102030", -150, "#000000"},
		{"#ff8000", 100, "#ffff00"},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			got, err := Shade(tt.color, tt.percent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShade_NeverExceedsFF(t *testing.T) {
	for _, percent := range []int{0, 10, 50, 100, 500} {
		got, err := Shade("#f0e0d0", percent)
		require.NoError(t, err)
		c, err := domain.ParseHexColor(got)
		require.NoError(t, err)
		assert.LessOrEqual(t, c.R, 255)
		assert.LessOrEqual(t, c.G, 255)
		assert.LessOrEqual(t, c.B, 255)
	}
}

func TestShade_InvalidColor(t *testing.T) {
	for _, bad := range []string{"", "red", "#12345", "#gggggg", "4f46e5"} {
		_, err := Shade(bad, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidColor, bad)
	}
}
