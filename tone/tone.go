// Package tone applies brightness, contrast and black clip adjustments to
// a luminance buffer.
package tone

import (
	"gonum.org/v1/gonum/floats"

	"github.com/bodgit/ditherdock/luminance"
	"github.com/bodgit/ditherdock/param"
)

// Adjust returns a new buffer with p applied to b, which is not modified.
//
// Brightness scales every value, contrast stretches values away from the
// mean of the brightened buffer and black clip zeroes anything below the
// floor. The result is clamped to [0, 255] only once all three steps are
// complete.
func Adjust(b *luminance.Buffer, p param.Adjustment) *luminance.Buffer {
	out := b.Clone()

	floats.Scale(p.Brightness, out.Pix)

	mean := out.Mean()
	for i, v := range out.Pix {
		out.Pix[i] = mean + (v-mean)*p.Contrast
	}

	for i, v := range out.Pix {
		if v < p.BlackClip {
			out.Pix[i] = 0
		}
	}

	out.Clamp()

	return out
}
