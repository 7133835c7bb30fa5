/*
Package render implements the two rendering operations.

Direct adjusts tone, dithers the result to two levels and optionally tints
it. Halftone adjusts tone, stamps shape glyphs and optionally tints the
result. Both are pure functions of their inputs and the seed: they never
modify the source and either return a complete canvas or an error.

Resizing and zooming happen before an image is passed in.
*/
package render

import (
	"image"

	"github.com/bodgit/ditherdock/colorize"
	"github.com/bodgit/ditherdock/dither"
	"github.com/bodgit/ditherdock/halftone"
	"github.com/bodgit/ditherdock/luminance"
	"github.com/bodgit/ditherdock/param"
	"github.com/bodgit/ditherdock/tone"
)

// DefaultSeed seeds the render context unless told otherwise.
const DefaultSeed = 42

// Params is the complete set of parameters for either operation. Shape and
// Seed are only used by Halftone.
type Params struct {
	Adjustment param.Adjustment
	Dither     param.Dither
	Shape      param.Shape
	Color      param.Color
	Seed       uint64
}

// DefaultParams returns the parameters the interactive tool starts with.
func DefaultParams() Params {
	return Params{
		Adjustment: param.DefaultAdjustment,
		Dither:     param.DefaultDither,
		Shape:      param.DefaultShape,
		Color:      param.DefaultColor,
		Seed:       DefaultSeed,
	}
}

// Validate checks every parameter set.
func (p Params) Validate() error {
	if err := p.Adjustment.Validate(); err != nil {
		return err
	}
	if err := p.Dither.Validate(); err != nil {
		return err
	}
	if err := p.Shape.Validate(); err != nil {
		return err
	}
	return p.Color.Validate()
}

func (p Params) validateDirect() error {
	if err := p.Adjustment.Validate(); err != nil {
		return err
	}
	if err := p.Dither.Validate(); err != nil {
		return err
	}
	return p.Color.Validate()
}

// DirectBuffer renders b as a full resolution two tone image.
func DirectBuffer(b *luminance.Buffer, p Params) (*image.RGBA, error) {
	if err := p.validateDirect(); err != nil {
		return nil, err
	}
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return nil, luminance.ErrEmptyInput
	}

	adjusted := tone.Adjust(b, p.Adjustment)

	return colorize.Apply(dither.Apply(adjusted, p.Dither).RGBA(), p.Color), nil
}

// Direct renders m as a full resolution two tone image.
func Direct(m image.Image, p Params) (*image.RGBA, error) {
	if err := p.validateDirect(); err != nil {
		return nil, err
	}
	b, err := luminance.FromImage(m)
	if err != nil {
		return nil, err
	}
	return DirectBuffer(b, p)
}

// HalftoneBuffer renders b as a shape halftone.
func HalftoneBuffer(b *luminance.Buffer, p Params) (*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return nil, luminance.ErrEmptyInput
	}

	adjusted := tone.Adjust(b, p.Adjustment)
	ctx := halftone.NewContext(p.Seed)

	return colorize.Apply(halftone.Render(adjusted, p.Shape, p.Dither.Threshold, ctx), p.Color), nil
}

// Halftone renders m as a shape halftone.
func Halftone(m image.Image, p Params) (*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b, err := luminance.FromImage(m)
	if err != nil {
		return nil, err
	}
	return HalftoneBuffer(b, p)
}
