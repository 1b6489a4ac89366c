package geom

import (
	"encoding/json"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with channels in [0, 1].
type Color colorful.Color

// RGB returns a color from channel values, clamped to [0, 1].
func RGB(r, g, b float64) Color {
	return Color(colorful.Color{R: r, G: g, B: b}.Clamped())
}

// Hex parses a "#rrggbb" (or "#rgb") color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color(c), nil
}

// MustHex is like Hex but panics on malformed input. It is intended for
// package-level color constants.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the "#rrggbb" form of c.
func (c Color) Hex() string { return colorful.Color(c).Clamped().Hex() }

// Shade darkens (f < 1) or lightens (f > 1) c by scaling its Lab lightness.
func (c Color) Shade(f float64) Color {
	l, a, b := colorful.Color(c).Lab()
	return Color(colorful.Lab(l*f, a, b).Clamped())
}

// MarshalJSON encodes c as a hex string.
func (c Color) MarshalJSON() ([]byte, error) { return json.Marshal(c.Hex()) }

// UnmarshalJSON decodes a hex string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Hex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
