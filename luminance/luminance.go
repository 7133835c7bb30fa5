/*
Package luminance implements the single channel working surface used by
every stage of the rendering pipeline.

A Buffer holds real valued luminance, nominally in the range [0, 255],
stored row by row. Values are deliberately not clamped while a stage is
working so that error diffusion can push pixels outside of that range.
*/
package luminance

import (
	"image"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ErrEmptyInput is returned for a buffer or image with no pixels.
var ErrEmptyInput = errors.New("luminance: empty input")

// Buffer is a Height by Width grid of luminance values.
type Buffer struct {
	Width  int
	Height int
	Pix    []float64
}

// New returns a zeroed buffer of the given size.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrEmptyInput, "%dx%d", width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}, nil
}

// FromRows builds a buffer from a slice of equal length rows.
func FromRows(rows [][]float64) (*Buffer, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	b, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != b.Width {
			return nil, errors.Errorf("luminance: row %d has %d values, expected %d", y, len(row), b.Width)
		}
		copy(b.Pix[y*b.Width:], row)
	}
	return b, nil
}

// Luma converts a color to 8-bit luminance using the ITU-R 601-2 weights,
// rounding to the nearest integer. Alpha is discarded rather than composited
// so a transparent pixel keeps the luminance of its color.
func Luma(c color.Color) uint8 {
	var r, g, b uint32
	switch c := c.(type) {
	case color.NRGBA:
		r, g, b = uint32(c.R), uint32(c.G), uint32(c.B)
	case color.NRGBA64:
		r, g, b = uint32(c.R>>8), uint32(c.G>>8), uint32(c.B>>8)
	default:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		r, g, b = uint32(n.R), uint32(n.G), uint32(n.B)
	}
	// 16.16 fixed point weights of 0.299, 0.587, 0.114
	return uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
}

// FromImage converts m to a buffer. The result always starts at (0, 0).
func FromImage(m image.Image) (*Buffer, error) {
	r := m.Bounds()
	b, err := New(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}

	switch src := m.(type) {
	case *image.Gray:
		for y := 0; y < b.Height; y++ {
			row := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):]
			for x := 0; x < b.Width; x++ {
				b.Pix[y*b.Width+x] = float64(row[x])
			}
		}
	default:
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				b.Pix[y*b.Width+x] = float64(Luma(m.At(r.Min.X+x, r.Min.Y+y)))
			}
		}
	}

	return b, nil
}

// Bounds returns the rectangle covered by the buffer.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// In reports whether (x, y) lies within the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At returns the value at (x, y).
func (b *Buffer) At(x, y int) float64 {
	return b.Pix[y*b.Width+x]
}

// Set stores v at (x, y).
func (b *Buffer) Set(x, y int, v float64) {
	b.Pix[y*b.Width+x] = v
}

// Add adds v to the value at (x, y) if it lies within the buffer.
func (b *Buffer) Add(x, y int, v float64) {
	if b.In(x, y) {
		b.Pix[y*b.Width+x] += v
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    append([]float64(nil), b.Pix...),
	}
}

// Mean returns the arithmetic mean of every value.
func (b *Buffer) Mean() float64 {
	return floats.Sum(b.Pix) / float64(len(b.Pix))
}

// RegionMean returns the arithmetic mean over r, which is clipped to the
// buffer. An empty region has a mean of zero.
func (b *Buffer) RegionMean(r image.Rectangle) float64 {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return 0
	}
	var sum float64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		sum += floats.Sum(b.Pix[y*b.Width+r.Min.X : y*b.Width+r.Max.X])
	}
	return sum / float64(r.Dx()*r.Dy())
}

// Clamp limits every value to [0, 255].
func (b *Buffer) Clamp() {
	for i, v := range b.Pix {
		b.Pix[i] = math.Max(0, math.Min(255, v))
	}
}

func toByte(v float64) uint8 {
	// Truncates like a float to uint8 array conversion after clipping
	return uint8(math.Max(0, math.Min(255, v)))
}

// Gray converts the buffer to an 8-bit grayscale image, clipping to
// [0, 255] and truncating any fractional part.
func (b *Buffer) Gray() *image.Gray {
	m := image.NewGray(b.Bounds())
	for i, v := range b.Pix {
		m.Pix[i] = toByte(v)
	}
	return m
}

// RGBA converts the buffer to a grayscale canvas where each channel holds
// the clipped luminance.
func (b *Buffer) RGBA() *image.RGBA {
	m := image.NewRGBA(b.Bounds())
	for i, v := range b.Pix {
		c := toByte(v)
		m.Pix[i*4+0] = c
		m.Pix[i*4+1] = c
		m.Pix[i*4+2] = c
		m.Pix[i*4+3] = 0xff
	}
	return m
}
