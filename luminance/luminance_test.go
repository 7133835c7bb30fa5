package luminance

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b, err := New(3, 2)
	require.NoError(t, err)
	assert.Len(t, b.Pix, 6)

	for _, size := range [][2]int{{0, 1}, {1, 0}, {-1, 4}} {
		_, err := New(size[0], size[1])
		assert.True(t, errors.Is(err, ErrEmptyInput))
	}

	_, err = FromRows(nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = FromRows([][]float64{{}})
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = FromRows([][]float64{{1, 2}, {3}})
	assert.Error(t, err)
}

func TestLuma(t *testing.T) {
	assert.Equal(t, uint8(0), Luma(color.Black))
	assert.Equal(t, uint8(255), Luma(color.White))
	assert.Equal(t, uint8(76), Luma(color.RGBA{R: 255, A: 255}))
	assert.Equal(t, uint8(150), Luma(color.RGBA{G: 255, A: 255}))
	assert.Equal(t, uint8(29), Luma(color.RGBA{B: 255, A: 255}))
}

func TestLumaIgnoresAlpha(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want uint8
	}{
		{"transparent white", color.NRGBA{R: 255, G: 255, B: 255}, 255},
		{"transparent red", color.NRGBA{R: 255}, 76},
		{"half transparent green", color.NRGBA{G: 255, A: 128}, 150},
		{"premultiplied half red", color.RGBA{R: 128, A: 128}, 76},
		{"transparent white 16-bit", color.NRGBA64{R: 0xffff, G: 0xffff, B: 0xffff}, 255},
		{"fully transparent premultiplied", color.RGBA{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Luma(tt.c))
		})
	}
}

func TestFromImageTransparent(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255})
	m.SetNRGBA(1, 0, color.NRGBA{A: 255})

	b, err := FromImage(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{255, 0}, b.Pix)
}

func TestFromImage(t *testing.T) {
	m := image.NewRGBA(image.Rect(10, 20, 13, 22))
	m.Set(10, 20, color.White)
	m.Set(12, 21, color.RGBA{R: 255, A: 255})

	b, err := FromImage(m)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 2, b.Height)

	want := []float64{255, 0, 0, 0, 0, 76}
	if diff := cmp.Diff(want, b.Pix); diff != "" {
		t.Errorf("FromImage() mismatch (-want +got):\n%s", diff)
	}

	g := image.NewGray(image.Rect(0, 0, 2, 1))
	g.Pix[0], g.Pix[1] = 12, 200
	b, err = FromImage(g)
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 200}, b.Pix)

	_, err = FromImage(image.NewRGBA(image.Rect(0, 0, 0, 5)))
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestMeans(t *testing.T) {
	b, err := FromRows([][]float64{
		{0, 10, 20},
		{30, 40, 50},
	})
	require.NoError(t, err)

	assert.InDelta(t, 25.0, b.Mean(), 1e-9)
	assert.InDelta(t, 20.0, b.RegionMean(image.Rect(0, 0, 2, 2)), 1e-9)
	assert.InDelta(t, 50.0, b.RegionMean(image.Rect(2, 1, 10, 10)), 1e-9)
	assert.Equal(t, 0.0, b.RegionMean(image.Rect(5, 5, 6, 6)))
}

func TestCloneAndAdd(t *testing.T) {
	b, err := FromRows([][]float64{{1, 2}})
	require.NoError(t, err)

	c := b.Clone()
	c.Add(0, 0, 10)
	c.Add(5, 0, 10)
	c.Add(0, -1, 10)

	assert.Equal(t, []float64{1, 2}, b.Pix)
	assert.Equal(t, []float64{11, 2}, c.Pix)
}

func TestConversions(t *testing.T) {
	b, err := FromRows([][]float64{{-20, 127.9, 300}})
	require.NoError(t, err)

	g := b.Gray()
	assert.Equal(t, []uint8{0, 127, 255}, g.Pix)

	m := b.RGBA()
	assert.Equal(t, []uint8{0, 0, 0, 255, 127, 127, 127, 255, 255, 255, 255, 255}, m.Pix)

	b.Clamp()
	assert.Equal(t, []float64{0, 127.9, 255}, b.Pix)
}
