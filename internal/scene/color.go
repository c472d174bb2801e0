package scene

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with straight alpha in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

var (
	White  = Color{colorful.Color{R: 1, G: 1, B: 1}, 1}
	Black  = Color{colorful.Color{}, 1}
	Red    = Color{colorful.Color{R: 1}, 1}
	Green  = Color{colorful.Color{G: 0.5}, 1}
	Blue   = Color{colorful.Color{B: 1}, 1}
	Orange = Color{colorful.Color{R: 1, G: 0.647}, 1}
	Gray   = Color{colorful.Color{R: 0.42, G: 0.45, B: 0.5}, 1}
)

func RGBA(r, g, b, a float64) Color {
	return Color{colorful.Color{R: r, G: g, B: b}, a}
}

// ParseHex reads "#rrggbb" as an opaque colour.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{c, 1}, nil
}

func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func (c Color) Translucent() bool { return c.A < 1 }

// Terminal returns the lipgloss colour; alpha is not representable and is
// expressed by the rasteriser through stippling instead.
func (c Color) Terminal() lipgloss.Color {
	return lipgloss.Color(c.Color.Clamped().Hex())
}
