package main

import (
	"context"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/bodgit/ditherdock"
	"github.com/bodgit/ditherdock/param"
	"github.com/bodgit/ditherdock/render"
)

const defaultDB = "ditherdock.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "preset",
			Usage: "start from the named preset",
		},
		&cli.Float64Flag{
			Name:  "brightness",
			Value: param.DefaultAdjustment.Brightness,
			Usage: "brightness multiplier",
		},
		&cli.Float64Flag{
			Name:  "contrast",
			Value: param.DefaultAdjustment.Contrast,
			Usage: "contrast multiplier about the mean",
		},
		&cli.Float64Flag{
			Name:  "black-clip",
			Value: param.DefaultAdjustment.BlackClip,
			Usage: "values below this become black",
		},
		&cli.StringFlag{
			Name:    "algorithm",
			Aliases: []string{"a"},
			Value:   param.DefaultDither.Algorithm.String(),
			Usage:   "dither algorithm: " + algorithmNames(),
		},
		&cli.Float64Flag{
			Name:    "threshold",
			Aliases: []string{"t"},
			Value:   param.DefaultDither.Threshold,
			Usage:   "black/white threshold",
		},
		&cli.StringFlag{
			Name:  "shape",
			Value: param.DefaultShape.Kind.String(),
			Usage: "halftone shape: circle, square, triangle, optionally with \"(random)\"",
		},
		&cli.StringFlag{
			Name:  "orientation",
			Value: param.DefaultShape.Orientation.String(),
			Usage: "halftone orientation: aligned or random",
		},
		&cli.IntFlag{
			Name:  "dot-size",
			Value: param.DefaultShape.DotSize,
			Usage: "largest glyph diameter in pixels",
		},
		&cli.IntFlag{
			Name:  "detail",
			Value: param.DefaultShape.BlockSize,
			Usage: "halftone block size in pixels",
		},
		&cli.StringFlag{
			Name:  "color",
			Value: param.DefaultColor.Mode.String(),
			Usage: "color mode: grayscale or color",
		},
		&cli.Float64Flag{
			Name:  "hue",
			Value: param.DefaultColor.Hue,
			Usage: "hue in [0, 1] used in color mode",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Value: render.DefaultSeed,
			Usage: "seed for random orientation",
		},
		&cli.Float64Flag{
			Name:    "zoom",
			Aliases: []string{"z"},
			Value:   1,
			Usage:   "scale factor applied before rendering",
		},
	}
}

func algorithmNames() string {
	var names []string
	for _, a := range param.Algorithms() {
		names = append(names, a.String())
	}
	return strings.Join(names, ", ")
}

// settings builds Settings from the preset, if any, overridden by any
// flags given explicitly.
func settings(c *cli.Context) (ditherdock.Settings, error) {
	s := ditherdock.DefaultSettings()

	if name := c.String("preset"); name != "" {
		db, err := ditherdock.NewPresetDB(c.String("db"))
		if err != nil {
			return s, err
		}
		defer db.Close()

		if s, err = db.Load(name); err != nil {
			return s, err
		}
	}

	if c.IsSet("brightness") {
		s.Adjustment.Brightness = c.Float64("brightness")
	}
	if c.IsSet("contrast") {
		s.Adjustment.Contrast = c.Float64("contrast")
	}
	if c.IsSet("black-clip") {
		s.Adjustment.BlackClip = c.Float64("black-clip")
	}

	var err error
	if c.IsSet("algorithm") {
		if s.Dither.Algorithm, err = param.ParseAlgorithm(c.String("algorithm")); err != nil {
			return s, err
		}
	}
	if c.IsSet("threshold") {
		s.Dither.Threshold = c.Float64("threshold")
	}

	if c.IsSet("shape") {
		if err = applyShapeLabel(&s.Shape, c.String("shape")); err != nil {
			return s, err
		}
	}
	if c.IsSet("orientation") {
		if s.Shape.Orientation, err = param.ParseOrientation(c.String("orientation")); err != nil {
			return s, err
		}
	}
	if c.IsSet("dot-size") {
		s.Shape.DotSize = c.Int("dot-size")
	}
	if c.IsSet("detail") {
		s.Shape.BlockSize = c.Int("detail")
	}

	if c.IsSet("color") {
		if s.Color.Mode, err = param.ParseColorMode(c.String("color")); err != nil {
			return s, err
		}
	}
	if c.IsSet("hue") {
		s.Color.Hue = c.Float64("hue")
	}

	if c.IsSet("seed") {
		s.Seed = c.Uint64("seed")
	}
	if c.IsSet("zoom") {
		s.Zoom = c.Float64("zoom")
	}

	return s, s.Validate()
}

// applyShapeLabel sets the shape kind from label, changing the orientation
// only when the label names one, as in "triangles (random)".
func applyShapeLabel(s *param.Shape, label string) error {
	kind, orientation, err := param.ParseShapeLabel(label)
	if err != nil {
		return err
	}
	s.Kind = kind
	if strings.Contains(label, "(") {
		s.Orientation = orientation
	}
	return nil
}

func newDitherDock(c *cli.Context) (*ditherdock.DitherDock, error) {
	s, err := settings(c)
	if err != nil {
		return nil, err
	}
	return ditherdock.New(s, newLogger(c))
}

func convert(fn func(*ditherdock.DitherDock, string, string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < 2 {
			cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
		}

		d, err := newDitherDock(c)
		if err != nil {
			return cli.Exit(err, 1)
		}

		if err := fn(d, c.Args().Get(0), c.Args().Get(1)); err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	}
}

func progress(done, total int) {
	fmt.Fprintf(os.Stderr, "\r%d / %d", done, total)
	if done == total {
		fmt.Fprintln(os.Stderr)
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "ditherdock"
	app.Usage = "Dither and halftone images"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"DITHERDOCK_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to preset database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "preview",
			Usage:     "Render a reduced size halftone preview of an image",
			ArgsUsage: "INPUT OUTPUT",
			Flags:     renderFlags(),
			Action:    convert((*ditherdock.DitherDock).PreviewFile),
		},
		{
			Name:      "render",
			Usage:     "Render a full size halftone of an image",
			ArgsUsage: "INPUT OUTPUT",
			Flags:     renderFlags(),
			Action:    convert((*ditherdock.DitherDock).ProcessFile),
		},
		{
			Name:        "export",
			Usage:       "Export a full size two tone dither of an image",
			Description: "Only brightness is applied; contrast and black clip are ignored.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags:       renderFlags(),
			Action:      convert((*ditherdock.DitherDock).ExportFile),
		},
		{
			Name:      "batch",
			Usage:     "Render a halftone of every image in a directory",
			ArgsUsage: "INPUT-DIRECTORY OUTPUT-DIRECTORY",
			Flags: append(renderFlags(), &cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "number of images processed at once, defaults to one per CPU",
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				d, err := newDitherDock(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if term.IsTerminal(int(os.Stderr.Fd())) {
					d.SetProgress(progress)
				}

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()

				n, err := d.Batch(ctx, c.Args().Get(0), c.Args().Get(1), c.Int("workers"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Printf("Processed %d images\n", n)

				return nil
			},
		},
		{
			Name:      "gif",
			Usage:     "Assemble the images in a directory into a looping GIF",
			ArgsUsage: "DIRECTORY OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "duration",
					Aliases: []string{"d"},
					Value:   100,
					Usage:   "frame duration in milliseconds",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				d, err := ditherdock.New(ditherdock.DefaultSettings(), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}

				delay := time.Duration(c.Int("duration")) * time.Millisecond
				if err := d.MakeGIF(c.Args().Get(0), c.Args().Get(1), delay); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "preset",
			Usage: "Manage named presets",
			Subcommands: []*cli.Command{
				{
					Name:      "save",
					Usage:     "Save the given settings as a preset",
					ArgsUsage: "NAME",
					Flags: append(renderFlags(), &cli.StringFlag{
						Name:  "image",
						Usage: "store a preview of this image with the preset",
					}),
					Action: presetSave,
				},
				{
					Name:   "list",
					Usage:  "List presets",
					Action: presetList,
				},
				{
					Name:      "show",
					Usage:     "Show the settings of a preset",
					ArgsUsage: "NAME",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "output",
							Usage: "write the stored preview to this file",
						},
					},
					Action: presetShow,
				},
				{
					Name:      "delete",
					Usage:     "Delete a preset",
					ArgsUsage: "NAME",
					Action:    presetDelete,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
