package render

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/ditherdock/luminance"
	"github.com/bodgit/ditherdock/param"
)

func gradient(width, height int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / (width - 1))
			m.SetRGBA(x, y, color.RGBA{R: v, G: v / 2, B: 255 - v, A: 0xff})
		}
	}
	return m
}

func noise(seed int64, width, height int) *image.Gray {
	r := rand.New(rand.NewSource(seed))
	m := image.NewGray(image.Rect(0, 0, width, height))
	r.Read(m.Pix)
	return m
}

func twoTone(t *testing.T, m *image.RGBA) {
	t.Helper()
	for i := 0; i < len(m.Pix); i += 4 {
		v := m.Pix[i]
		if (v != 0 && v != 0xff) || m.Pix[i+1] != v || m.Pix[i+2] != v || m.Pix[i+3] != 0xff {
			t.Fatalf("pixel %d = %v", i/4, m.Pix[i:i+4])
		}
	}
}

func TestDirect(t *testing.T) {
	src := gradient(64, 48)

	for _, a := range param.Algorithms() {
		t.Run(a.String(), func(t *testing.T) {
			p := DefaultParams()
			p.Dither.Algorithm = a

			m, err := Direct(src, p)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), m.Bounds())
			twoTone(t, m)
		})
	}
}

func TestDirectExample(t *testing.T) {
	b, err := luminance.FromRows([][]float64{{200, 50}})
	require.NoError(t, err)

	m, err := DirectBuffer(b, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []uint8{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0xff}, m.Pix)

	// The source buffer is never modified
	assert.Equal(t, []float64{200, 50}, b.Pix)
}

func TestDirectTinted(t *testing.T) {
	b, err := luminance.FromRows([][]float64{{200, 50}})
	require.NoError(t, err)

	p := DefaultParams()
	p.Color = param.Color{Mode: param.Tinted, Hue: 2.0 / 3}

	m, err := DirectBuffer(b, p)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, m.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{A: 0xff}, m.RGBAAt(1, 0))
}

func TestHalftone(t *testing.T) {
	src := noise(5, 101, 67)

	p := DefaultParams()
	p.Shape = param.Shape{Kind: param.Triangle, Orientation: param.Random, DotSize: 7, BlockSize: 5}
	p.Seed = 99

	m1, err := Halftone(src, p)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), m1.Bounds())
	twoTone(t, m1)

	m2, err := Halftone(src, p)
	require.NoError(t, err)
	assert.Equal(t, m1.Pix, m2.Pix)
}

func TestHalftoneExample(t *testing.T) {
	b, err := luminance.FromRows([][]float64{{200, 200}, {200, 200}})
	require.NoError(t, err)

	p := DefaultParams()
	p.Dither.Threshold = 100
	p.Shape = param.Shape{Kind: param.Circle, DotSize: 5, BlockSize: 2}

	m, err := HalftoneBuffer(b, p)
	require.NoError(t, err)
	for i := 0; i < len(m.Pix); i++ {
		assert.Equal(t, uint8(0xff), m.Pix[i])
	}
}

func TestInvalidParameters(t *testing.T) {
	src := gradient(8, 8)

	tests := []struct {
		name   string
		modify func(*Params)
		direct bool
	}{
		{"brightness", func(p *Params) { p.Adjustment.Brightness = 0 }, true},
		{"contrast", func(p *Params) { p.Adjustment.Contrast = -2 }, true},
		{"black clip", func(p *Params) { p.Adjustment.BlackClip = 300 }, true},
		{"threshold", func(p *Params) { p.Dither.Threshold = -1 }, true},
		{"hue", func(p *Params) { p.Color.Hue = 1.5 }, true},
		{"dot size", func(p *Params) { p.Shape.DotSize = 0 }, false},
		{"block size", func(p *Params) { p.Shape.BlockSize = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)

			m, err := Halftone(src, p)
			assert.True(t, errors.Is(err, param.ErrInvalidParameter))
			assert.Nil(t, m)

			m, err = Direct(src, p)
			if tt.direct {
				assert.True(t, errors.Is(err, param.ErrInvalidParameter))
				assert.Nil(t, m)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	empty := image.NewRGBA(image.Rect(0, 0, 0, 10))

	_, err := Direct(empty, DefaultParams())
	assert.True(t, errors.Is(err, luminance.ErrEmptyInput))

	_, err = Halftone(empty, DefaultParams())
	assert.True(t, errors.Is(err, luminance.ErrEmptyInput))

	_, err = HalftoneBuffer(nil, DefaultParams())
	assert.True(t, errors.Is(err, luminance.ErrEmptyInput))
}
