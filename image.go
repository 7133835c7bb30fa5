package ditherdock

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/bodgit/ditherdock/luminance"
)

// PreviewSize is the largest width or height of an image used for a
// preview, before zoom is applied.
const PreviewSize = 512

var errUnsupportedFormat = errors.New("ditherdock: unsupported image format")

var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
	".tiff": {},
}

// IsImage reports whether file has one of the extensions processed in
// bulk.
func IsImage(file string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(file))]
	return ok
}

// DecodeFile reads and decodes the image in file.
func DecodeFile(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return m, nil
}

var encoders = map[string]func(io.Writer, image.Image) error{
	".png":  png.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
	".gif":  encodeGIF,
}

func encodeJPEG(w io.Writer, m image.Image) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
}

func encodeTIFF(w io.Writer, m image.Image) error {
	return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func encodeGIF(w io.Writer, m image.Image) error {
	return gif.Encode(w, m, &gif.Options{
		NumColors: 256,
		Quantizer: &quantize.MedianCutQuantizer{},
	})
}

// EncodeFile writes m to file in the format implied by its extension.
func EncodeFile(file string, m image.Image) (err error) {
	enc, ok := encoders[strings.ToLower(filepath.Ext(file))]
	if !ok {
		return errors.Wrap(errUnsupportedFormat, file)
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return enc(f, m)
}

// Zoom scales m by factor using Lanczos resampling.
func Zoom(m image.Image, factor float64) (image.Image, error) {
	b := m.Bounds()
	width, height := int(float64(b.Dx())*factor), int(float64(b.Dy())*factor)
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(luminance.ErrEmptyInput, "zoom %v of %dx%d", factor, b.Dx(), b.Dy())
	}
	if width == b.Dx() && height == b.Dy() {
		return m, nil
	}
	return resize.Resize(uint(width), uint(height), m, resize.Lanczos3), nil
}

// Thumbnail scales m down to fit within PreviewSize on both sides,
// preserving its aspect ratio. Smaller images are returned as is.
func Thumbnail(m image.Image) image.Image {
	return resize.Thumbnail(PreviewSize, PreviewSize, m, resize.Lanczos3)
}
