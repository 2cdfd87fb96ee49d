// Package layout holds the per-screen-type, per-resolution tables of named
// column regions. Regions are configuration data versioned alongside the game
// UI revision they describe, never inferred from the image.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pelletier/go-toml/v2"
)

// ErrRegionOutOfBounds is returned when a region does not fit inside the
// source image. Callers skip the affected region/image and continue.
var ErrRegionOutOfBounds = errors.New("region out of bounds")

// ErrUnknownScreen is returned when a table has no entry for a screen type.
var ErrUnknownScreen = errors.New("unknown screen type")

// Region is a named rectangle in source-image pixel coordinates. TrimLeft
// and TrimRight are fractions of the width shaved off before cropping, for
// columns whose edges carry status or injury icons.
type Region struct {
	X         int     `toml:"x"`
	Y         int     `toml:"y"`
	W         int     `toml:"w"`
	H         int     `toml:"h"`
	TrimLeft  float64 `toml:"trim_left,omitempty"`
	TrimRight float64 `toml:"trim_right,omitempty"`
}

// TrimWidth shrinks the region horizontally by the given fractions of its
// width. Used to keep status icons at the column edges out of the crop.
func (r Region) TrimWidth(left, right float64) Region {
	lx := int(float64(r.W) * left)
	rx := int(float64(r.W) * right)
	r.X += lx
	r.W -= lx + rx
	if r.W < 0 {
		r.W = 0
	}
	return r
}

// Screen is the region set for one screen type. Columns of the same screen
// share one vertical coordinate system: a text line found in one column
// projects directly onto its siblings. Headers are one-off regions (team
// name plate, conference label) outside the column grid.
type Screen struct {
	// Primary names the column whose ink sets the line boundaries for the
	// whole screen (the name column on rosters, the year column on picks).
	Primary string            `toml:"primary"`
	Columns map[string]Region `toml:"columns"`
	Headers map[string]Region `toml:"headers"`
}

// Column returns the named column region.
func (s Screen) Column(name string) (Region, bool) {
	r, ok := s.Columns[name]
	return r, ok
}

// Header returns the named header region.
func (s Screen) Header(name string) (Region, bool) {
	r, ok := s.Headers[name]
	return r, ok
}

// Table maps screen types to their region sets for one screen resolution.
type Table struct {
	Width   int               `toml:"width"`
	Height  int               `toml:"height"`
	Screens map[string]Screen `toml:"screens"`
}

// Screen returns the region set for a screen type.
func (t *Table) Screen(screenType string) (Screen, error) {
	s, ok := t.Screens[screenType]
	if !ok {
		return Screen{}, fmt.Errorf("%w: %s", ErrUnknownScreen, screenType)
	}
	return s, nil
}

//go:embed regions_1080p.toml
var defaultRegions []byte

// Default returns the built-in 1920x1080 region table.
func Default() *Table {
	t, err := parse(defaultRegions)
	if err != nil {
		// The embedded asset is validated by tests; a decode failure here is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("layout: embedded region table: %v", err))
	}
	return t
}

// Load reads a region table from a TOML file.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region table: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Table, error) {
	var t Table
	if err := toml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode region table: %w", err)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("decode region table: missing resolution")
	}
	return &t, nil
}

// Crop returns the pixel sub-image for a region, or ErrRegionOutOfBounds if
// the rectangle exceeds the image dimensions.
func Crop(img image.Image, r Region) (*image.NRGBA, error) {
	b := img.Bounds()
	if r.X < 0 || r.Y < 0 || r.W <= 0 || r.H <= 0 ||
		r.X+r.W > b.Dx() || r.Y+r.H > b.Dy() {
		return nil, fmt.Errorf("%w: (%d,%d,%d,%d) in %dx%d image",
			ErrRegionOutOfBounds, r.X, r.Y, r.W, r.H, b.Dx(), b.Dy())
	}
	rect := image.Rect(b.Min.X+r.X, b.Min.Y+r.Y, b.Min.X+r.X+r.W, b.Min.Y+r.Y+r.H)
	return imaging.Crop(img, rect), nil
}
