package anim

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(width, height int, c color.Color) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

func TestEncoder(t *testing.T) {
	e, err := NewEncoder(100 * time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, e.Add(solid(20, 10, color.White)))
	require.NoError(t, e.Add(solid(40, 20, color.RGBA{R: 0xff, A: 0xff})))
	require.NoError(t, e.Add(solid(20, 10, color.Black)))
	assert.Equal(t, 3, e.Len())

	var buf bytes.Buffer
	require.NoError(t, e.Encode(&buf))

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)

	require.Len(t, g.Image, 3)
	assert.Equal(t, []int{10, 10, 10}, g.Delay)
	assert.Equal(t, 0, g.LoopCount)
	assert.Equal(t, 20, g.Config.Width)
	assert.Equal(t, 10, g.Config.Height)
	for i, m := range g.Image {
		assert.Equal(t, image.Rect(0, 0, 20, 10), m.Bounds(), "frame %d", i)
		assert.Equal(t, byte(gif.DisposalBackground), g.Disposal[i], "frame %d", i)
	}

	r, gr, b, _ := g.Image[1].At(5, 5).RGBA()
	assert.InDelta(t, 0xffff, float64(r), 0x400)
	assert.InDelta(t, 0, float64(gr), 0x400)
	assert.InDelta(t, 0, float64(b), 0x400)
}

func TestEncoderErrors(t *testing.T) {
	_, err := NewEncoder(5 * time.Millisecond)
	assert.Error(t, err)

	e, err := NewEncoder(time.Second)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Equal(t, errNoFrames, e.Encode(&buf))

	assert.Error(t, e.Add(image.NewRGBA(image.Rect(0, 0, 0, 0))))
}

func TestPalettedPassThrough(t *testing.T) {
	pm := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	assert.Same(t, pm, paletted(pm, pm.Rect))
}
