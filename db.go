package ditherdock

import (
	"bytes"
	"database/sql"
	"fmt"
	"image"
	"io"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3" // register driver
	"github.com/pkg/errors"

	"github.com/bodgit/ditherdock/param"
)

// ErrPresetNotFound is returned when a named preset does not exist.
var ErrPresetNotFound = errors.New("ditherdock: preset not found")

// PresetDB stores named Settings, each with an optional preview image.
type PresetDB struct {
	db *sql.DB
}

// NewPresetDB opens, creating if necessary, the preset database in file.
func NewPresetDB(file string) (*PresetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS preset (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, brightness REAL NOT NULL, contrast REAL NOT NULL, black_clip REAL NOT NULL, algorithm TEXT NOT NULL, threshold REAL NOT NULL, shape TEXT NOT NULL, orientation TEXT NOT NULL, dot_size INTEGER NOT NULL, block_size INTEGER NOT NULL, color_mode TEXT NOT NULL, hue REAL NOT NULL, seed INTEGER NOT NULL, zoom REAL NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS preview (preset_id INTEGER PRIMARY KEY NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, pix BLOB NOT NULL, FOREIGN KEY(preset_id) REFERENCES preset(id) ON DELETE CASCADE)"); err != nil {
		db.Close()
		return nil, err
	}

	return &PresetDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *PresetDB) Close() error {
	return db.db.Close()
}

// Save stores s under name, replacing any existing preset of that name
// along with its preview.
func (db *PresetDB) Save(name string, s Settings) error {
	if name == "" {
		return errors.New("ditherdock: empty preset name")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM preset WHERE name = ?", name); err != nil {
		return err
	}

	if _, err = tx.Exec("INSERT INTO preset (name, brightness, contrast, black_clip, algorithm, threshold, shape, orientation, dot_size, block_size, color_mode, hue, seed, zoom) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		name,
		s.Adjustment.Brightness, s.Adjustment.Contrast, s.Adjustment.BlackClip,
		s.Dither.Algorithm.String(), s.Dither.Threshold,
		s.Shape.Kind.String(), s.Shape.Orientation.String(), s.Shape.DotSize, s.Shape.BlockSize,
		s.Color.Mode.String(), s.Color.Hue,
		int64(s.Seed), s.Zoom); err != nil {
		return err
	}

	return tx.Commit()
}

// Load returns the Settings stored under name.
func (db *PresetDB) Load(name string) (Settings, error) {
	var s Settings
	var algorithm, shape, orientation, mode string
	var seed int64

	switch err := db.db.QueryRow("SELECT brightness, contrast, black_clip, algorithm, threshold, shape, orientation, dot_size, block_size, color_mode, hue, seed, zoom FROM preset WHERE name = ?", name).Scan(
		&s.Adjustment.Brightness, &s.Adjustment.Contrast, &s.Adjustment.BlackClip,
		&algorithm, &s.Dither.Threshold,
		&shape, &orientation, &s.Shape.DotSize, &s.Shape.BlockSize,
		&mode, &s.Color.Hue,
		&seed, &s.Zoom); err {
	case sql.ErrNoRows:
		return Settings{}, errors.Wrap(ErrPresetNotFound, name)
	case nil:
	default:
		return Settings{}, err
	}

	var err error
	if s.Dither.Algorithm, err = param.ParseAlgorithm(algorithm); err != nil {
		return Settings{}, err
	}
	if s.Shape.Kind, err = param.ParseShapeKind(shape); err != nil {
		return Settings{}, err
	}
	if s.Shape.Orientation, err = param.ParseOrientation(orientation); err != nil {
		return Settings{}, err
	}
	if s.Color.Mode, err = param.ParseColorMode(mode); err != nil {
		return Settings{}, err
	}
	s.Seed = uint64(seed)

	return s, s.Validate()
}

// List returns the names of all presets in alphabetical order.
func (db *PresetDB) List() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM preset ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Delete removes the preset stored under name and its preview.
func (db *PresetDB) Delete(name string) error {
	result, err := db.db.Exec("DELETE FROM preset WHERE name = ?", name)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrap(ErrPresetNotFound, name)
	}

	return nil
}

func (db *PresetDB) presetID(name string) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM preset WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		return 0, errors.Wrap(ErrPresetNotFound, name)
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// SavePreview stores m as the preview for the preset stored under name.
func (db *PresetDB) SavePreview(name string, m *image.RGBA) error {
	id, err := db.presetID(name)
	if err != nil {
		return err
	}

	b := m.Bounds()
	pix := make([]byte, 0, 4*b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		pix = append(pix, m.Pix[i:i+4*b.Dx()]...)
	}

	buf := new(bytes.Buffer)
	enc, err := zstd.NewWriter(buf)
	if err != nil {
		return err
	}
	if _, err := enc.Write(pix); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if _, err = db.db.Exec("INSERT OR REPLACE INTO preview (preset_id, width, height, pix) VALUES (?, ?, ?, ?)", id, b.Dx(), b.Dy(), buf.Bytes()); err != nil {
		return err
	}

	return nil
}

// Preview returns the preview stored for the preset under name, or nil if
// the preset exists but has no preview.
func (db *PresetDB) Preview(name string) (*image.RGBA, error) {
	id, err := db.presetID(name)
	if err != nil {
		return nil, err
	}

	var (
		width, height int
		blob          []byte
	)
	switch err := db.db.QueryRow("SELECT width, height, pix FROM preview WHERE preset_id = ?", id).Scan(&width, &height, &blob); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	dec, err := zstd.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	pix, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	if len(pix) != 4*width*height {
		return nil, errors.Errorf("ditherdock: preview for %s is %d bytes, expected %d", name, len(pix), 4*width*height)
	}

	return &image.RGBA{
		Pix:    pix,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}
