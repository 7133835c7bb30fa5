package ditherdock

import (
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/bodgit/ditherdock/anim"
)

var errNoImages = errors.New("ditherdock: no images in folder")

// MakeGIF assembles the images directly inside dir, in name order, into an
// animated GIF written to file with each frame shown for d.
func (d *DitherDock) MakeGIF(dir, file string, delay time.Duration) (err error) {
	files, err := listImages(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Wrap(errNoImages, dir)
	}

	e, err := anim.NewEncoder(delay)
	if err != nil {
		return err
	}

	for _, f := range files {
		m, err := DecodeFile(f)
		if err != nil {
			return err
		}
		if err := e.Add(m); err != nil {
			return errors.Wrap(err, f)
		}
		d.logger.Printf("Added \"%s\"\n", f)
	}

	out, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return e.Encode(out)
}
