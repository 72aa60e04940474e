// Package palette converts between hue angles and the hex colors stored on entities.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Fixed saturation and lightness used for every hue-derived color.
const (
	Saturation = 0.7
	Lightness  = 0.5
)

// NormalizeHue wraps a hue angle into [0, 360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HueToHex returns the "#rrggbb" color for hue h (degrees, any range).
func HueToHex(h float64) string {
	return colorful.Hsl(NormalizeHue(h), Saturation, Lightness).Hex()
}

// HexToHue extracts the hue of a hex color, rounded to whole degrees.
// Accepts "#rgb", "#rrggbb" and "#rrggbbaa" (alpha ignored). Unparseable
// input and achromatic colors yield 0.
func HexToHue(hex string) int {
	c, err := colorful.Hex(trimAlpha(hex))
	if err != nil {
		return 0
	}
	h, _, _ := c.Hsl()
	if math.IsNaN(h) {
		return 0
	}
	return int(math.Round(h)) % 360
}

// WithAlpha appends an alpha byte to a "#rrggbb" color.
func WithAlpha(hex string, alpha float64) string {
	if len(hex) != 7 {
		return hex
	}
	a := int(math.Floor(math.Max(0, math.Min(1, alpha)) * 255))
	const digits = "0123456789abcdef"
	return hex + string([]byte{digits[a>>4], digits[a&0x0f]})
}

// Fade blends hex toward bg so that opacity 1 keeps hex and opacity 0
// yields bg. Used where the output has no alpha channel, such as terminal
// cells. Unparseable colors are returned unchanged.
func Fade(hex, bg string, opacity float64) string {
	c, err := colorful.Hex(trimAlpha(hex))
	if err != nil {
		return hex
	}
	b, err := colorful.Hex(trimAlpha(bg))
	if err != nil {
		return hex
	}
	t := 1 - math.Max(0, math.Min(1, opacity))
	return c.BlendRgb(b, t).Clamped().Hex()
}

func trimAlpha(hex string) string {
	if len(hex) == 9 {
		return hex[:7]
	}
	return hex
}
