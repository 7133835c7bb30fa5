/*
Package ditherdock renders images as two tone dithers or stylized shape
halftones, either one at a time or a folder at a time.

The rendering itself lives in the render package and never touches the
filesystem. This package provides the callers around it: decoding and
encoding files, zoom and preview scaling, batch processing of a folder,
assembling a folder into an animated GIF and storing named presets.
*/
package ditherdock

import (
	"image"
	"io/ioutil"
	"log"

	"github.com/bodgit/ditherdock/render"
)

// DitherDock renders images according to a fixed set of Settings.
type DitherDock struct {
	settings Settings
	logger   *log.Logger
	progress func(done, total int)
}

// New returns a DitherDock using settings, which are validated first. A nil
// logger discards everything.
func New(settings Settings, logger *log.Logger) (*DitherDock, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &DitherDock{
		settings: settings,
		logger:   logger,
	}, nil
}

// Settings returns the settings in use.
func (d *DitherDock) Settings() Settings {
	return d.settings
}

// SetProgress registers fn to be called after each image of a batch has
// been processed, successfully or not.
func (d *DitherDock) SetProgress(fn func(done, total int)) {
	d.progress = fn
}

// Preview renders a reduced size shape halftone of m for display. The image
// is scaled down to fit PreviewSize before zoom is applied.
func (d *DitherDock) Preview(m image.Image) (*image.RGBA, error) {
	z, err := Zoom(Thumbnail(m), d.settings.Zoom)
	if err != nil {
		return nil, err
	}
	return render.Halftone(z, d.settings.Params)
}

// Process renders a full size shape halftone of m after applying zoom. This
// is what is applied to every image of a batch.
func (d *DitherDock) Process(m image.Image) (*image.RGBA, error) {
	z, err := Zoom(m, d.settings.Zoom)
	if err != nil {
		return nil, err
	}
	return render.Halftone(z, d.settings.Params)
}

// Export renders a full size two tone dither of m after applying zoom. Only
// the brightness adjustment is applied; contrast and black clip are not.
func (d *DitherDock) Export(m image.Image) (*image.RGBA, error) {
	z, err := Zoom(m, d.settings.Zoom)
	if err != nil {
		return nil, err
	}
	return render.Direct(z, d.settings.exportParams())
}

func (d *DitherDock) convertFile(in, out string, fn func(image.Image) (*image.RGBA, error)) error {
	m, err := DecodeFile(in)
	if err != nil {
		return err
	}

	r, err := fn(m)
	if err != nil {
		return err
	}

	return EncodeFile(out, r)
}

// PreviewFile writes the Preview of the image in file in to out.
func (d *DitherDock) PreviewFile(in, out string) error {
	return d.convertFile(in, out, d.Preview)
}

// ProcessFile writes the Process result of the image in file in to out.
func (d *DitherDock) ProcessFile(in, out string) error {
	return d.convertFile(in, out, d.Process)
}

// ExportFile writes the Export result of the image in file in to out.
func (d *DitherDock) ExportFile(in, out string) error {
	return d.convertFile(in, out, d.Export)
}
