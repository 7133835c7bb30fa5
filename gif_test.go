package ditherdock

import (
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeGIF(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, EncodeFile(filepath.Join(in, "02.png"), gradient(40, 20)))
	require.NoError(t, EncodeFile(filepath.Join(in, "01.png"), gradient(20, 10)))
	require.NoError(t, EncodeFile(filepath.Join(in, "03.bmp"), gradient(10, 30)))
	require.NoError(t, os.WriteFile(filepath.Join(in, "readme.txt"), []byte("x"), 0o644))

	out := filepath.Join(t.TempDir(), "anim.gif")
	d := newTestDitherDock(t, DefaultSettings())
	require.NoError(t, d.MakeGIF(in, out, 250*time.Millisecond))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, g.Image, 3)
	assert.Equal(t, []int{25, 25, 25}, g.Delay)
	assert.Equal(t, 0, g.LoopCount)
	assert.Equal(t, 20, g.Config.Width)
	assert.Equal(t, 10, g.Config.Height)
	for _, m := range g.Image {
		assert.Equal(t, 20, m.Bounds().Dx())
		assert.Equal(t, 10, m.Bounds().Dy())
	}
}

func TestMakeGIFErrors(t *testing.T) {
	d := newTestDitherDock(t, DefaultSettings())
	out := filepath.Join(t.TempDir(), "anim.gif")

	err := d.MakeGIF(t.TempDir(), out, 100*time.Millisecond)
	assert.True(t, errors.Is(err, errNoImages))

	in := t.TempDir()
	require.NoError(t, EncodeFile(filepath.Join(in, "a.png"), gradient(4, 4)))
	assert.Error(t, d.MakeGIF(in, out, time.Millisecond))

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}
