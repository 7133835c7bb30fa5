package halftone

import (
	"image"
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/bodgit/ditherdock/param"
)

// Control point distance for approximating a quarter circle with a cubic
// Bézier curve
const kappa = 0.5522847498

// Minimum coverage, one third, for a pixel to be considered inside a glyph
const coverage = 0x55

// glyph is a coverage mask anchored at origin in canvas coordinates.
type glyph struct {
	origin image.Point
	mask   *image.Alpha
}

// rasterizer renders glyph masks. It is not safe for concurrent use.
type rasterizer struct {
	z *vector.Rasterizer
}

func newRasterizer() *rasterizer {
	return &rasterizer{
		z: vector.NewRasterizer(1, 1),
	}
}

func (r *rasterizer) circle(cx, cy, radius float32) {
	k := kappa * radius
	r.z.MoveTo(cx+radius, cy)
	r.z.CubeTo(cx+radius, cy+k, cx+k, cy+radius, cx, cy+radius)
	r.z.CubeTo(cx-k, cy+radius, cx-radius, cy+k, cx-radius, cy)
	r.z.CubeTo(cx-radius, cy-k, cx-k, cy-radius, cx, cy-radius)
	r.z.CubeTo(cx+k, cy-radius, cx+radius, cy-k, cx+radius, cy)
	r.z.ClosePath()
}

// polygon adds a regular polygon with n vertices at distance radius from
// the center, the first vertex at angle degrees.
func (r *rasterizer) polygon(cx, cy, radius float32, n int, angle float64) {
	step := 2 * math32.Pi / float32(n)
	theta := float32(angle) * math32.Pi / 180
	for i := 0; i < n; i++ {
		t := theta + step*float32(i)
		x, y := cx+radius*math32.Cos(t), cy+radius*math32.Sin(t)
		if i == 0 {
			r.z.MoveTo(x, y)
		} else {
			r.z.LineTo(x, y)
		}
	}
	r.z.ClosePath()
}

// snap moves c onto a pixel center for odd sizes and onto a pixel corner
// for even sizes, so that a glyph covers a whole number of pixels and is
// symmetric on the pixel grid.
func snap(c float64, size int) float64 {
	if size%2 == 0 {
		return math.Round(c)
	}
	return math.Floor(c) + 0.5
}

// render returns the mask for a glyph of the given kind and size centered
// as close as the pixel grid allows to (cx, cy). The angle is ignored for
// circles.
func (r *rasterizer) render(kind param.ShapeKind, cx, cy float64, size int, angle float64) glyph {
	radius := float64(size) / 2
	cx, cy = snap(cx, size), snap(cy, size)

	bounds := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)),
	)

	r.z.Reset(bounds.Dx(), bounds.Dy())

	lx, ly := float32(cx-float64(bounds.Min.X)), float32(cy-float64(bounds.Min.Y))
	switch kind {
	case param.Square:
		r.polygon(lx, ly, float32(radius), 4, angle)
	case param.Triangle:
		r.polygon(lx, ly, float32(radius), 3, angle)
	default:
		r.circle(lx, ly, float32(radius))
	}

	mask := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mark(mask)

	return glyph{
		origin: bounds.Min,
		mask:   mask,
	}
}

// mark ensures a glyph always marks at least one pixel. If no pixel reaches
// the minimum coverage, the most covered pixel, first in raster order on a
// tie, is marked instead.
func mark(mask *image.Alpha) {
	best := 0
	for i, a := range mask.Pix {
		if a >= coverage {
			return
		}
		if a > mask.Pix[best] {
			best = i
		}
	}
	mask.Pix[best] = 0xff
}

// stamp paints every covered pixel of g white on m, clipped to the bounds
// of m.
func (g glyph) stamp(m *image.RGBA) {
	b := g.mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if g.mask.AlphaAt(x, y).A < coverage {
				continue
			}
			p := image.Pt(x, y).Add(g.origin)
			if !p.In(m.Rect) {
				continue
			}
			i := m.PixOffset(p.X, p.Y)
			m.Pix[i+0] = 0xff
			m.Pix[i+1] = 0xff
			m.Pix[i+2] = 0xff
			m.Pix[i+3] = 0xff
		}
	}
}
