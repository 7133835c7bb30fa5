package dither

import (
	"github.com/bodgit/ditherdock/luminance"
)

var bayer2 = [2][2]float64{
	{0, 2},
	{3, 1},
}

// level maps a Bayer matrix cell onto the 0-255 luminance range.
func level(v float64) float64 {
	return (v + 0.5) * 255 / 4
}

// blockIndex returns which of the two matrix cells covers position p when
// each cell is stretched to size/2 positions. Odd sizes leave one trailing
// position beyond the stretched matrix, and sizes below 2 leave nothing to
// stretch, so both are covered by the last cell.
func blockIndex(p, size int) int {
	block := size / 2
	if block < 1 {
		block = 1
	}
	if i := p / block; i < 1 {
		return i
	}
	return 1
}

func threshold(b *luminance.Buffer, index func(x, y int) (int, int)) *luminance.Buffer {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i, j := index(x, y)
			if b.At(x, y) > level(bayer2[i][j]) {
				b.Set(x, y, white)
			} else {
				b.Set(x, y, black)
			}
		}
	}
	return b
}

// OrderedBayer quantizes b in place against the 2x2 Bayer matrix with each
// cell stretched to cover a quarter of the buffer, and returns it. For
// anything larger than 2x2 this thresholds four flat quadrants rather than
// producing a fine repeating pattern; see OrderedBayerTiled for the
// conventional form.
func OrderedBayer(b *luminance.Buffer) *luminance.Buffer {
	return threshold(b, func(x, y int) (int, int) {
		return blockIndex(y, b.Height), blockIndex(x, b.Width)
	})
}

// OrderedBayerTiled quantizes b in place against the 2x2 Bayer matrix
// repeated across the buffer, and returns it.
func OrderedBayerTiled(b *luminance.Buffer) *luminance.Buffer {
	return threshold(b, func(x, y int) (int, int) {
		return y % 2, x % 2
	})
}
