package ditherdock

import (
	"github.com/pkg/errors"

	"github.com/bodgit/ditherdock/param"
	"github.com/bodgit/ditherdock/render"
)

// Settings is the configuration held by a caller between renders: the
// rendering parameters plus the zoom factor applied before rendering.
type Settings struct {
	render.Params
	Zoom float64
}

// DefaultSettings returns the settings the interactive tool starts with.
func DefaultSettings() Settings {
	return Settings{
		Params: render.DefaultParams(),
		Zoom:   1,
	}
}

// Validate checks the zoom factor and every rendering parameter.
func (s Settings) Validate() error {
	if !(s.Zoom > 0) {
		return errors.Wrapf(param.ErrInvalidParameter, "zoom: %v must be greater than zero", s.Zoom)
	}
	return s.Params.Validate()
}

// exportParams returns the parameters used when exporting a single file.
// Only brightness is applied; contrast and black clip are left neutral.
func (s Settings) exportParams() render.Params {
	p := s.Params
	p.Adjustment = param.Adjustment{
		Brightness: s.Adjustment.Brightness,
		Contrast:   1,
		BlackClip:  0,
	}
	return p
}
