package skygen

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]; components are not premultiplied.
//
// The zero value (fully transparent black) means "unset" in Config.
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements color.Color, returning alpha-premultiplied components.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A)*0xffff + 0.5)
	r = uint32(clamp01(c.R)*float64(a) + 0.5)
	g = uint32(clamp01(c.G)*float64(a) + 0.5)
	b = uint32(clamp01(c.B)*float64(a) + 0.5)
	return r, g, b, a
}

// Color converts RGBA to the standard color.NRGBA.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// FromUint24 creates an opaque color from a packed 0xRRGGBB value.
// Bits above the low 24 are ignored.
func FromUint24(v uint32) RGBA {
	return RGBA{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}
}

// Uint24 packs the color channels as 0xRRGGBB, dropping alpha.
func (c RGBA) Uint24() uint32 {
	n := c.Color().(color.NRGBA)
	return uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

// ParseColor parses an opaque color written as "#rrggbb", "rrggbb",
// "0xrrggbb" or the short form "#rgb".
func ParseColor(s string) (RGBA, error) {
	h := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	}

	c, err := colorful.Hex("#" + strings.ToLower(h))
	if err != nil {
		return RGBA{}, fmt.Errorf("skygen: invalid color %q: %w", s, err)
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// Hex formats the color channels as "#rrggbb", dropping alpha.
func (c RGBA) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// String implements fmt.Stringer.
func (c RGBA) String() string {
	if c.A >= 1 {
		return c.Hex()
	}
	return fmt.Sprintf("%s@%.3f", c.Hex(), c.A)
}

// UnmarshalYAML accepts either an integer (0x65ddf7) or a hex string
// ("#65ddf7").
func (c *RGBA) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("skygen: line %d: color must be a scalar", value.Line)
	}

	if value.Tag == "!!int" {
		v, err := strconv.ParseUint(value.Value, 0, 32)
		if err != nil {
			return fmt.Errorf("skygen: line %d: invalid color %q: %w", value.Line, value.Value, err)
		}
		if v > 0xffffff {
			return fmt.Errorf("skygen: line %d: color %q exceeds 0xffffff", value.Line, value.Value)
		}
		*c = FromUint24(uint32(v))
		return nil
	}

	parsed, err := ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML writes the color as a "#rrggbb" string.
func (c RGBA) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// clamp01 restricts a value to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)
