package param

import (
	"strings"

	"github.com/pkg/errors"
)

// Algorithm is a binary dithering algorithm.
type Algorithm int

const (
	// FloydSteinberg is error diffusion over four neighbours.
	FloydSteinberg Algorithm = iota
	// Atkinson is error diffusion over six neighbours that deliberately
	// discards a quarter of the error.
	Atkinson
	// OrderedBayer thresholds against a 2x2 Bayer matrix expanded to
	// cover the whole image, producing four quadrants.
	OrderedBayer
	// OrderedBayerTiled thresholds against a 2x2 Bayer matrix repeated
	// across the image, i.e. conventional ordered dithering.
	OrderedBayerTiled
)

var algorithmNames = map[Algorithm]string{
	FloydSteinberg:    "floyd-steinberg",
	Atkinson:          "atkinson",
	OrderedBayer:      "ordered",
	OrderedBayerTiled: "ordered-tiled",
}

// Algorithms lists every algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{FloydSteinberg, Atkinson, OrderedBayer, OrderedBayerTiled}
}

func (a Algorithm) valid() bool {
	_, ok := algorithmNames[a]
	return ok
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAlgorithm parses the name of an algorithm. The labels used by the
// interactive tool, such as "Floyd-Steinberg", are also accepted.
func ParseAlgorithm(s string) (Algorithm, error) {
	n := normalize(s)
	for a, name := range algorithmNames {
		if n == name {
			return a, nil
		}
	}
	switch n {
	case "floydsteinberg", "fs":
		return FloydSteinberg, nil
	case "bayer", "ordered-bayer":
		return OrderedBayer, nil
	}
	return 0, invalid("algorithm", s)
}

// ShapeKind is the glyph stamped by the shape halftone renderer.
type ShapeKind int

const (
	// Circle is a filled disk.
	Circle ShapeKind = iota
	// Square is a filled quadrilateral.
	Square
	// Triangle is a filled equilateral triangle.
	Triangle
)

var shapeNames = map[ShapeKind]string{
	Circle:   "circle",
	Square:   "square",
	Triangle: "triangle",
}

func (k ShapeKind) valid() bool {
	_, ok := shapeNames[k]
	return ok
}

func (k ShapeKind) String() string {
	if s, ok := shapeNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseShapeKind parses a shape name, singular or plural.
func ParseShapeKind(s string) (ShapeKind, error) {
	n := strings.TrimSuffix(normalize(s), "s")
	for k, name := range shapeNames {
		if n == name {
			return k, nil
		}
	}
	return 0, invalid("shape", s)
}

// Orientation controls glyph rotation.
type Orientation int

const (
	// Aligned glyphs are never rotated.
	Aligned Orientation = iota
	// Random glyphs are rotated by an angle drawn from the render
	// context.
	Random
)

var orientationNames = map[Orientation]string{
	Aligned: "aligned",
	Random:  "random",
}

func (o Orientation) valid() bool {
	_, ok := orientationNames[o]
	return ok
}

func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return "unknown"
}

// ParseOrientation parses an orientation name.
func ParseOrientation(s string) (Orientation, error) {
	n := normalize(s)
	for o, name := range orientationNames {
		if n == name {
			return o, nil
		}
	}
	return 0, invalid("orientation", s)
}

// ParseShapeLabel parses the combined labels offered by the interactive
// tool, for example "Circles" or "Triangles (random)". Circles are always
// aligned.
func ParseShapeLabel(s string) (ShapeKind, Orientation, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	name, rest, _ := strings.Cut(label, "(")

	kind, err := ParseShapeKind(name)
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidParameter, "shape label: %q", s)
	}

	orientation := Aligned
	if rest = strings.TrimSuffix(strings.TrimSpace(rest), ")"); rest != "" {
		if orientation, err = ParseOrientation(rest); err != nil {
			return 0, 0, errors.Wrapf(ErrInvalidParameter, "shape label: %q", s)
		}
	}

	return kind, orientation, nil
}

// ColorMode selects grayscale or hue tinted output.
type ColorMode int

const (
	// Grayscale output is passed through unchanged.
	Grayscale ColorMode = iota
	// Tinted output maps each gray level onto a single hue.
	Tinted
)

var colorModeNames = map[ColorMode]string{
	Grayscale: "grayscale",
	Tinted:    "color",
}

func (m ColorMode) valid() bool {
	_, ok := colorModeNames[m]
	return ok
}

func (m ColorMode) String() string {
	if s, ok := colorModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseColorMode parses a color mode name.
func ParseColorMode(s string) (ColorMode, error) {
	switch normalize(s) {
	case "grayscale", "greyscale", "gray", "grey", "mono":
		return Grayscale, nil
	case "color", "colour", "tint", "tinted":
		return Tinted, nil
	}
	return 0, invalid("color mode", s)
}
