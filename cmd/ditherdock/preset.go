package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/bodgit/ditherdock"
)

var errNoName = errors.New("preset name required")

func withPresetDB(c *cli.Context, fn func(*ditherdock.PresetDB) error) error {
	db, err := ditherdock.NewPresetDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func presetSave(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit(errNoName, 1)
	}
	name := c.Args().First()

	d, err := newDitherDock(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	return withPresetDB(c, func(db *ditherdock.PresetDB) error {
		if err := db.Save(name, d.Settings()); err != nil {
			return err
		}

		if file := c.String("image"); file != "" {
			m, err := ditherdock.DecodeFile(file)
			if err != nil {
				return err
			}
			preview, err := d.Preview(m)
			if err != nil {
				return err
			}
			if err := db.SavePreview(name, preview); err != nil {
				return err
			}
		}

		return nil
	})
}

func presetList(c *cli.Context) error {
	return withPresetDB(c, func(db *ditherdock.PresetDB) error {
		names, err := db.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	})
}

func presetShow(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit(errNoName, 1)
	}
	name := c.Args().First()

	return withPresetDB(c, func(db *ditherdock.PresetDB) error {
		s, err := db.Load(name)
		if err != nil {
			return err
		}

		fmt.Printf("brightness:  %v\n", s.Adjustment.Brightness)
		fmt.Printf("contrast:    %v\n", s.Adjustment.Contrast)
		fmt.Printf("black-clip:  %v\n", s.Adjustment.BlackClip)
		fmt.Printf("algorithm:   %v\n", s.Dither.Algorithm)
		fmt.Printf("threshold:   %v\n", s.Dither.Threshold)
		fmt.Printf("shape:       %v\n", s.Shape.Kind)
		fmt.Printf("orientation: %v\n", s.Shape.Orientation)
		fmt.Printf("dot-size:    %v\n", s.Shape.DotSize)
		fmt.Printf("detail:      %v\n", s.Shape.BlockSize)
		fmt.Printf("color:       %v\n", s.Color.Mode)
		fmt.Printf("hue:         %v\n", s.Color.Hue)
		fmt.Printf("seed:        %v\n", s.Seed)
		fmt.Printf("zoom:        %v\n", s.Zoom)

		if file := c.String("output"); file != "" {
			m, err := db.Preview(name)
			if err != nil {
				return err
			}
			if m == nil {
				return errors.Errorf("preset %s has no preview", name)
			}
			return ditherdock.EncodeFile(file, m)
		}

		return nil
	})
}

func presetDelete(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit(errNoName, 1)
	}

	return withPresetDB(c, func(db *ditherdock.PresetDB) error {
		return db.Delete(c.Args().First())
	})
}
