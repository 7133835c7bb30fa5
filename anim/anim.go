/*
Package anim assembles a sequence of images into a looping animated GIF.

Every frame is resized to the dimensions of the first one and reduced to
its own palette of at most 256 colors using median cut quantization. The
animation loops forever and each frame is cleared to the background
before the next is drawn.
*/
package anim

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

const maxColors = 256

var (
	errNoFrames = errors.New("anim: no frames")
	errDelay    = errors.New("anim: invalid frame duration")
)

// Encoder accumulates frames for a single animation.
type Encoder struct {
	delay  int
	bounds image.Rectangle
	g      gif.GIF
}

// NewEncoder returns an Encoder that shows each frame for d, which is
// stored with a resolution of 10ms.
func NewEncoder(d time.Duration) (*Encoder, error) {
	delay := int(d / (10 * time.Millisecond))
	if delay <= 0 {
		return nil, errors.Wrapf(errDelay, "%v", d)
	}
	return &Encoder{
		delay: delay,
		g: gif.GIF{
			LoopCount: 0,
		},
	}, nil
}

// Len returns the number of frames added so far.
func (e *Encoder) Len() int {
	return len(e.g.Image)
}

// Add appends m as the next frame.
func (e *Encoder) Add(m image.Image) error {
	b := m.Bounds()
	if b.Empty() {
		return errors.New("anim: empty frame")
	}

	if len(e.g.Image) == 0 {
		e.bounds = image.Rect(0, 0, b.Dx(), b.Dy())
		e.g.Config = image.Config{
			Width:  b.Dx(),
			Height: b.Dy(),
		}
	} else if b.Dx() != e.bounds.Dx() || b.Dy() != e.bounds.Dy() {
		m = resize.Resize(uint(e.bounds.Dx()), uint(e.bounds.Dy()), m, resize.Lanczos3)
	}

	e.g.Image = append(e.g.Image, paletted(m, e.bounds))
	e.g.Delay = append(e.g.Delay, e.delay)
	e.g.Disposal = append(e.g.Disposal, gif.DisposalBackground)

	return nil
}

// paletted converts m to a paletted image covering r.
func paletted(m image.Image, r image.Rectangle) *image.Paletted {
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= maxColors && pm.Rect == r {
		return pm
	}

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(r, q.Quantize(make(color.Palette, 0, maxColors), m))
	draw.Draw(pm, r, m, m.Bounds().Min, draw.Src)

	return pm
}

// Encode writes the animation to w.
func (e *Encoder) Encode(w io.Writer) error {
	if len(e.g.Image) == 0 {
		return errNoFrames
	}
	return gif.EncodeAll(w, &e.g)
}
