package ditherdock

import (
	"context"
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/ditherdock/param"
	"github.com/bodgit/ditherdock/render"
)

func newTestDitherDock(t *testing.T, s Settings) *DitherDock {
	t.Helper()
	d, err := New(s, log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	return d
}

func TestNew(t *testing.T) {
	logger := log.New(ioutil.Discard, "", 0)

	s := DefaultSettings()
	s.Zoom = 0
	_, err := New(s, logger)
	assert.True(t, errors.Is(err, param.ErrInvalidParameter))

	s = DefaultSettings()
	s.Shape.DotSize = 0
	_, err = New(s, logger)
	assert.True(t, errors.Is(err, param.ErrInvalidParameter))

	d, err := New(DefaultSettings(), logger)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), d.Settings())
}

func TestNewNilLogger(t *testing.T) {
	d, err := New(DefaultSettings(), nil)
	require.NoError(t, err)

	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, EncodeFile(filepath.Join(in, "a.png"), gradient(8, 8)))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.png"), []byte("garbage"), 0o644))

	assert.NotPanics(t, func() {
		n, err := d.Batch(context.Background(), in, out, 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
	})
	assert.NotPanics(t, func() {
		assert.Error(t, d.MakeGIF(in, filepath.Join(out, "anim.gif"), 100*time.Millisecond))
	})
}

func TestPreview(t *testing.T) {
	s := DefaultSettings()
	s.Zoom = 0.5
	d := newTestDitherDock(t, s)

	m, err := d.Preview(gradient(1024, 256))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 256, 64), m.Bounds())

	m, err = d.Preview(gradient(100, 60))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 30), m.Bounds())
}

func TestProcess(t *testing.T) {
	s := DefaultSettings()
	s.Zoom = 2
	s.Shape.Orientation = param.Random
	d := newTestDitherDock(t, s)

	src := gradient(40, 30)

	m, err := d.Process(src)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 60), m.Bounds())

	z, err := Zoom(src, 2)
	require.NoError(t, err)
	want, err := render.Halftone(z, s.Params)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, m.Pix)
}

func TestExportIgnoresContrastAndClip(t *testing.T) {
	src := gradient(40, 30)

	s := DefaultSettings()
	s.Adjustment = param.Adjustment{Brightness: 1.2, Contrast: 3, BlackClip: 200}
	got, err := newTestDitherDock(t, s).Export(src)
	require.NoError(t, err)

	s.Adjustment = param.Adjustment{Brightness: 1.2, Contrast: 1, BlackClip: 0}
	want, err := newTestDitherDock(t, s).Export(src)
	require.NoError(t, err)

	assert.Equal(t, want.Pix, got.Pix)

	direct, err := render.Direct(src, s.Params)
	require.NoError(t, err)
	assert.Equal(t, direct.Pix, got.Pix)
}

func TestFileOperations(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, EncodeFile(in, gradient(32, 16)))

	d := newTestDitherDock(t, DefaultSettings())

	tests := []struct {
		name string
		fn   func(string, string) error
	}{
		{"preview", d.PreviewFile},
		{"process", d.ProcessFile},
		{"export", d.ExportFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".png")
			require.NoError(t, tt.fn(in, out))

			m, err := DecodeFile(out)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 32, 16), m.Bounds())
		})
	}

	assert.Error(t, d.ProcessFile(filepath.Join(dir, "missing.png"), filepath.Join(dir, "x.png")))
	assert.Error(t, d.ProcessFile(in, filepath.Join(dir, "x.unknown")))
}
