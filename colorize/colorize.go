// Package colorize tints a grayscale canvas with a single hue.
package colorize

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/bodgit/ditherdock/luminance"
	"github.com/bodgit/ditherdock/param"
)

// Palette returns the 256 colors that each gray level maps to for hue, which
// is in the range [0, 1]. Gray level v becomes the fully saturated color
// with value v/255, so black stays black and white becomes the pure hue.
func Palette(hue float64) [256]color.RGBA {
	// Both ends of the range are red
	degrees := math.Mod(hue*360, 360)

	var p [256]color.RGBA
	for i := range p {
		c := colorful.Hsv(degrees, 1, float64(i)/255)
		p[i] = color.RGBA{
			R: channel(c.R),
			G: channel(c.G),
			B: channel(c.B),
			A: 0xff,
		}
	}
	return p
}

// Absorbs the rounding error of the hue sector arithmetic so that exact
// components such as 0.2 are not truncated to the level below
const epsilon = 1e-9

// channel truncates a color component in [0, 1] to 8 bits.
func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v*255+epsilon)))
}

// Apply returns m tinted according to p. In grayscale mode m is returned
// unchanged. Otherwise a new canvas is returned in which each pixel is
// replaced by the color for its luminance.
func Apply(m *image.RGBA, p param.Color) *image.RGBA {
	if p.Mode != param.Tinted {
		return m
	}

	palette := Palette(p.Hue)

	b := m.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetRGBA(x, y, palette[luminance.Luma(m.RGBAAt(x, y))])
		}
	}
	return out
}
