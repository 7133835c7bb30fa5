/*
Package halftone implements a shape halftone renderer.

The luminance buffer is divided into square tiles in raster order. Each
tile at least as bright as the threshold is replaced by a single white
glyph, a circle, square or triangle, whose size grows with how far the
tile's mean luminance is above the threshold. Everything else is black.

Tiles are independent of each other so they are measured and rasterized
concurrently. Random glyph angles are drawn from the render context one
tile at a time in raster order before any rasterization starts, so the
output does not depend on scheduling.
*/
package halftone

import (
	"image"
	"image/draw"
	"math"

	"github.com/bodgit/ditherdock/luminance"
	"github.com/bodgit/ditherdock/param"
)

type tile struct {
	bounds image.Rectangle
	// size is zero for a tile that is skipped
	size  int
	angle float64
	glyph glyph
}

// center returns the midpoint of a tile in continuous coordinates.
func (t *tile) center() (float64, float64) {
	return float64(t.bounds.Min.X) + float64(t.bounds.Dx())/2,
		float64(t.bounds.Min.Y) + float64(t.bounds.Dy())/2
}

// glyphSize returns the glyph size for a tile with mean luminance avg, or
// false if the tile is darker than the threshold and draws nothing.
func glyphSize(avg, threshold float64, dotSize int) (int, bool) {
	if avg < threshold {
		return 0, false
	}

	var rel float64
	if threshold < 255 {
		rel = math.Max(0, math.Min(1, (avg-threshold)/(255-threshold)))
	}

	return 1 + int(math.Round(rel*float64(dotSize-1))), true
}

func tiles(r image.Rectangle, blockSize int) []tile {
	var t []tile
	for y := r.Min.Y; y < r.Max.Y; y += blockSize {
		for x := r.Min.X; x < r.Max.X; x += blockSize {
			t = append(t, tile{
				bounds: image.Rect(x, y, x+blockSize, y+blockSize).Intersect(r),
			})
		}
	}
	return t
}

// plan measures every tile and assigns glyph sizes and angles.
func plan(b *luminance.Buffer, s param.Shape, threshold float64, ctx *Context) []tile {
	t := tiles(b.Bounds(), s.BlockSize)

	parallel(len(t), func(start, end int) {
		for i := start; i < end; i++ {
			if size, ok := glyphSize(b.RegionMean(t[i].bounds), threshold, s.DotSize); ok {
				t[i].size = size
			}
		}
	})

	if s.Orientation == param.Random {
		for i := range t {
			if t[i].size > 0 {
				t[i].angle = ctx.Angle()
			}
		}
	}

	return t
}

// Render draws the halftone of b onto a new black canvas of the same size.
// The context is only consumed when s.Orientation is param.Random, once for
// every tile that draws a glyph regardless of its shape.
func Render(b *luminance.Buffer, s param.Shape, threshold float64, ctx *Context) *image.RGBA {
	t := plan(b, s, threshold, ctx)

	parallel(len(t), func(start, end int) {
		r := newRasterizer()
		for i := start; i < end; i++ {
			if t[i].size > 0 {
				cx, cy := t[i].center()
				t[i].glyph = r.render(s.Kind, cx, cy, t[i].size, t[i].angle)
			}
		}
	})

	m := image.NewRGBA(b.Bounds())
	draw.Draw(m, m.Bounds(), image.Black, image.Point{}, draw.Src)

	// Glyphs larger than a tile overlap their neighbours so they are
	// composited on a single goroutine
	for i := range t {
		if t[i].size > 0 {
			t[i].glyph.stamp(m)
		}
	}

	return m
}
