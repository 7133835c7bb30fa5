package halftone

import (
	"math/rand/v2"
)

// Context is the pseudo-random stream consumed by a single render. It is
// only drawn from when glyphs are randomly oriented.
type Context struct {
	rng *rand.Rand
}

// NewContext returns a stream seeded with seed. Two contexts with the same
// seed produce the same sequence of angles.
func NewContext(seed uint64) *Context {
	return &Context{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// Angle returns the next angle in degrees, uniform in [0, 360).
func (c *Context) Angle() float64 {
	return c.rng.Float64() * 360
}
