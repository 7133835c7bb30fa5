/*
Package param defines the parameter sets accepted by the rendering
pipeline.

Every parameter set has a constructor that rejects out of range values
with ErrInvalidParameter rather than clamping them. The zero value of a
parameter set is not necessarily valid; use Validate before handing a
hand-built value to the pipeline.
*/
package param

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidParameter is returned, wrapped with the offending field, when a
// parameter is outside of its permitted range.
var ErrInvalidParameter = errors.New("param: invalid parameter")

func invalid(name string, v interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, "%s: %v", name, v)
}

func inRange(name string, v, min, max float64) error {
	// Written as a negation so NaN is rejected too
	if !(v >= min && v <= max) {
		return errors.Wrapf(ErrInvalidParameter, "%s: %v outside [%v, %v]", name, v, min, max)
	}
	return nil
}

func positive(name string, v float64) error {
	if !(v > 0) {
		return errors.Wrapf(ErrInvalidParameter, "%s: %v must be greater than zero", name, v)
	}
	return nil
}

// Adjustment holds the tone adjustment applied before quantization.
type Adjustment struct {
	Brightness float64
	Contrast   float64
	BlackClip  float64
}

// DefaultAdjustment leaves the luminance untouched.
var DefaultAdjustment = Adjustment{Brightness: 1, Contrast: 1}

// NewAdjustment returns a validated Adjustment.
func NewAdjustment(brightness, contrast, blackClip float64) (Adjustment, error) {
	a := Adjustment{
		Brightness: brightness,
		Contrast:   contrast,
		BlackClip:  blackClip,
	}
	if err := a.Validate(); err != nil {
		return Adjustment{}, err
	}
	return a, nil
}

// Validate checks brightness and contrast are positive and the black clip
// is within [0, 255].
func (a Adjustment) Validate() error {
	if err := positive("brightness", a.Brightness); err != nil {
		return err
	}
	if err := positive("contrast", a.Contrast); err != nil {
		return err
	}
	return inRange("black clip", a.BlackClip, 0, 255)
}

// Dither selects the binary quantization algorithm and its threshold. The
// threshold is also used by the shape halftone renderer.
type Dither struct {
	Algorithm Algorithm
	Threshold float64
}

// DefaultDither matches the initial state of the interactive tool.
var DefaultDither = Dither{Algorithm: FloydSteinberg, Threshold: 128}

// NewDither returns a validated Dither.
func NewDither(algorithm Algorithm, threshold float64) (Dither, error) {
	d := Dither{
		Algorithm: algorithm,
		Threshold: threshold,
	}
	if err := d.Validate(); err != nil {
		return Dither{}, err
	}
	return d, nil
}

// Validate checks the algorithm is known and the threshold is within
// [0, 255].
func (d Dither) Validate() error {
	if !d.Algorithm.valid() {
		return invalid("algorithm", int(d.Algorithm))
	}
	return inRange("threshold", d.Threshold, 0, 255)
}

// Shape configures the shape halftone renderer.
type Shape struct {
	Kind        ShapeKind
	Orientation Orientation
	// DotSize is the largest glyph size in pixels
	DotSize int
	// BlockSize is the edge length of the square tiles the image is
	// divided into, called "detail" in the interactive tool
	BlockSize int
}

// DefaultShape matches the initial state of the interactive tool.
var DefaultShape = Shape{Kind: Circle, Orientation: Aligned, DotSize: 4, BlockSize: 8}

// NewShape returns a validated Shape.
func NewShape(kind ShapeKind, orientation Orientation, dotSize, blockSize int) (Shape, error) {
	s := Shape{
		Kind:        kind,
		Orientation: orientation,
		DotSize:     dotSize,
		BlockSize:   blockSize,
	}
	if err := s.Validate(); err != nil {
		return Shape{}, err
	}
	return s, nil
}

// Validate checks the enumerations are known and both sizes are at least 1.
func (s Shape) Validate() error {
	if !s.Kind.valid() {
		return invalid("shape", int(s.Kind))
	}
	if !s.Orientation.valid() {
		return invalid("orientation", int(s.Orientation))
	}
	if s.DotSize < 1 {
		return invalid("dot size", s.DotSize)
	}
	if s.BlockSize < 1 {
		return invalid("block size", s.BlockSize)
	}
	return nil
}

// Color selects between grayscale output and single hue tinting.
type Color struct {
	Mode ColorMode
	// Hue is in the range [0, 1], both ends being red
	Hue float64
}

// DefaultColor is plain grayscale output.
var DefaultColor = Color{Mode: Grayscale}

// NewColor returns a validated Color.
func NewColor(mode ColorMode, hue float64) (Color, error) {
	c := Color{
		Mode: mode,
		Hue:  hue,
	}
	if err := c.Validate(); err != nil {
		return Color{}, err
	}
	return c, nil
}

// Validate checks the mode is known and the hue is within [0, 1].
func (c Color) Validate() error {
	if !c.Mode.valid() {
		return invalid("color mode", int(c.Mode))
	}
	return inRange("hue", c.Hue, 0, 1)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	return s
}
