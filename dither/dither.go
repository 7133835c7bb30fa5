/*
Package dither implements binary quantization of a luminance buffer.

Every algorithm produces a buffer containing only 0 and 255. The error
diffusion algorithms visit pixels once in raster order, left to right and
top to bottom without serpentine reversal, and push the quantization error
onto pixels that have not been visited yet. Each pixel therefore depends
on every pixel before it and the scan cannot be reordered or split without
changing the result.
*/
package dither

import (
	"github.com/bodgit/ditherdock/luminance"
	"github.com/bodgit/ditherdock/param"
)

const (
	black = 0
	white = 255
)

// offset is a neighbour relative to the current pixel along with its share
// of the quantization error.
type offset struct {
	dx, dy int
	weight float64
}

var (
	floydSteinberg = []offset{
		{1, 0, 7.0 / 16},
		{-1, 1, 3.0 / 16},
		{0, 1, 5.0 / 16},
		{1, 1, 1.0 / 16},
	}

	// Six neighbours of 1/8 each so only three quarters of the error is
	// passed on
	atkinson = []offset{
		{1, 0, 1.0 / 8},
		{2, 0, 1.0 / 8},
		{-1, 1, 1.0 / 8},
		{0, 1, 1.0 / 8},
		{1, 1, 1.0 / 8},
		{0, 2, 1.0 / 8},
	}
)

func quantize(v, threshold float64) float64 {
	if v > threshold {
		return white
	}
	return black
}

// diffuse quantizes b in place. Neighbours outside of the buffer are
// skipped and their share of the error is dropped.
func diffuse(b *luminance.Buffer, threshold float64, matrix []offset) {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			old := b.At(x, y)
			n := quantize(old, threshold)
			b.Set(x, y, n)

			err := old - n
			for _, o := range matrix {
				b.Add(x+o.dx, y+o.dy, err*o.weight)
			}
		}
	}
}

// FloydSteinberg quantizes b in place using Floyd-Steinberg error
// diffusion and returns it.
func FloydSteinberg(b *luminance.Buffer, threshold float64) *luminance.Buffer {
	diffuse(b, threshold, floydSteinberg)
	return b
}

// Atkinson quantizes b in place using Atkinson error diffusion and returns
// it.
func Atkinson(b *luminance.Buffer, threshold float64) *luminance.Buffer {
	diffuse(b, threshold, atkinson)
	return b
}

// Apply quantizes b in place with the algorithm selected by p. The ordered
// algorithms ignore the threshold.
func Apply(b *luminance.Buffer, p param.Dither) *luminance.Buffer {
	switch p.Algorithm {
	case param.Atkinson:
		return Atkinson(b, p.Threshold)
	case param.OrderedBayer:
		return OrderedBayer(b)
	case param.OrderedBayerTiled:
		return OrderedBayerTiled(b)
	default:
		return FloydSteinberg(b, p.Threshold)
	}
}
