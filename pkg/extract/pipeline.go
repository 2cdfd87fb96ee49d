// Package extract runs the per-screen-type extraction pipelines: crop the
// configured columns, segment the primary column into text lines, OCR each
// line under voting strategies, normalize fields, and merge observations
// across overlapping screenshots.
package extract

import (
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"regexp"

	"github.com/disintegration/imaging"

	"leaguelens/pkg/field"
	"leaguelens/pkg/layout"
	"leaguelens/pkg/ocr"
	"leaguelens/pkg/segment"
	"leaguelens/pkg/vision"
)

// ErrImageUnreadable marks screenshots that are missing or fail to decode.
// The image is skipped and the run continues.
var ErrImageUnreadable = errors.New("image unreadable")

// Character whitelists per column kind.
const (
	nameWhitelist  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.'- "
	digitWhitelist = "0123456789"
	cellWhitelist  = "" // unrestricted
)

// Working-image parameters for line OCR.
const (
	lineScale  = 3
	lineBorder = 14
	cellScale  = 4
	cellBorder = 15
)

// Pipeline holds the shared collaborators for one extraction run.
type Pipeline struct {
	Engine   ocr.Engine
	Layout   *layout.Table
	Seg      segment.Config
	Names    *field.NameNormalizer
	Teams    *field.TeamResolver
	InputDir string
	Debug    bool
	// DebugDir, when set, receives the intermediate line crops.
	DebugDir string
}

// New wires a pipeline from its configuration assets.
func New(engine ocr.Engine, lay *layout.Table, tables *field.Tables, inputDir string) *Pipeline {
	return &Pipeline{
		Engine:   engine,
		Layout:   lay,
		Seg:      segment.DefaultConfig(),
		Names:    field.NewNameNormalizer(tables.NameCorrections),
		Teams:    field.NewTeamResolver(tables.Teams, tables.TeamCorrections, 0.75),
		InputDir: inputDir,
	}
}

// Summary reports what a run yielded. FieldMisses counts normalizer nulls
// per field name; those are expected, not errors.
type Summary struct {
	Processed   int            `json:"processed"`
	Skipped     int            `json:"skipped"`
	Records     int            `json:"records"`
	FieldMisses map[string]int `json:"field_misses,omitempty"`
}

func newSummary() Summary {
	return Summary{FieldMisses: make(map[string]int)}
}

func (s *Summary) miss(fieldName string) {
	s.FieldMisses[fieldName]++
}

// Log prints the run summary in one line per figure.
func (s Summary) Log(kind string) {
	log.Printf("%s: processed=%d skipped=%d records=%d", kind, s.Processed, s.Skipped, s.Records)
	for name, n := range s.FieldMisses {
		log.Printf("%s: unrecovered %s fields: %d", kind, name, n)
	}
}

// RawLine is one pre-merge line observation, kept for auditing.
type RawLine struct {
	File string  `json:"file"`
	Y0   int     `json:"y0"`
	Y1   int     `json:"y1"`
	Text string  `json:"text"`
	Conf float64 `json:"conf"`
}

func (p *Pipeline) loadImage(name string) (image.Image, error) {
	img, err := imaging.Open(filepath.Join(p.InputDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageUnreadable, name, err)
	}
	return img, nil
}

// cropColumn cuts a named column out of the screenshot. A region outside
// the image bounds logs a warning and yields no observations for that
// column; it never aborts the run.
func (p *Pipeline) cropColumn(img image.Image, screen layout.Screen, name, file string) (*image.NRGBA, bool) {
	region, ok := screen.Column(name)
	if !ok {
		return nil, false
	}
	// Shave the configured edge fractions so icons at the column borders
	// stay out of the crop.
	region = region.TrimWidth(region.TrimLeft, region.TrimRight)
	col, err := layout.Crop(img, region)
	if err != nil {
		log.Printf("WARNING: column %s of %s: %v", name, file, err)
		return nil, false
	}
	return col, true
}

// segmentLines binarizes a column and finds its text-line bands.
func segmentLines(col *image.NRGBA, cfg segment.Config) []segment.Band {
	return segment.FindLines(vision.InkMask(col), cfg)
}

// lineCrop cuts one text band out of a column, projecting the band onto the
// column's height first.
func lineCrop(col *image.NRGBA, band segment.Band) (*image.NRGBA, bool) {
	clamped, ok := band.ClampTo(col.Bounds().Dy())
	if !ok {
		return nil, false
	}
	return imaging.Crop(col, image.Rect(0, clamped.Y0, col.Bounds().Dx(), clamped.Y1)), true
}

// fatal reports whether an OCR error must abort the whole run.
func fatal(err error) bool {
	return errors.Is(err, ocr.ErrEngineUnavailable)
}

func (p *Pipeline) saveDebug(name string, img image.Image) {
	if p.DebugDir == "" {
		return
	}
	if err := imaging.Save(img, filepath.Join(p.DebugDir, name)); err != nil {
		log.Printf("WARNING: save debug %s: %v", name, err)
	}
}

// Name-column shape: "J. Brunson", optional suffix token.
var (
	nameCanonicalRE = regexp.MustCompile(`^[A-Za-z]\.\s?[A-Za-z][A-Za-z'\-]+(?:\s+(?:Jr\.|Sr\.|I|II|III|IV|V|VI|VII|VIII|IX|X))?$`)
	nameLooseRE     = regexp.MustCompile(`^[A-Za-z][A-Za-z'\-]{2,}$`)
	digitShapeRE    = regexp.MustCompile(`^\d{1,3}$`)
	digitLooseRE    = regexp.MustCompile(`\d`)
)

func nameShape() ocr.Shape {
	return ocr.Shape{
		Canonical: nameCanonicalRE,
		Loose:     nameLooseRE,
		Reject:    []string{"NAME", "N.AME"},
	}
}

func digitShape(headers ...string) ocr.Shape {
	return ocr.Shape{Canonical: digitShapeRE, Loose: digitLooseRE, Reject: headers}
}

func cellShape(headers ...string) ocr.Shape {
	return ocr.Shape{Reject: headers}
}

// ocrName recognizes one name-column line: prepare the crop, vote across
// strategies with the name shape, then validate through the normalizer.
// ok is false when nothing name-shaped survives.
func (p *Pipeline) ocrName(line image.Image) (string, float64, bool, error) {
	prepared := vision.PrepareLine(line, lineScale, lineBorder)
	cand, ok, err := ocr.Best(p.Engine, prepared, ocr.NameStrategies(nameWhitelist), nameShape(), p.Names.Clean)
	if err != nil || !ok {
		return "", 0, false, err
	}
	name, valid := p.Names.Normalize(cand.Text)
	if !valid {
		return "", 0, false, nil
	}
	return name, cand.Confidence, true, nil
}

// ocrCell recognizes one small single-value cell and returns the raw text.
func (p *Pipeline) ocrCell(line image.Image, whitelist string, shape ocr.Shape) (string, float64, bool, error) {
	prepared := vision.PrepareLine(line, cellScale, cellBorder)
	cand, ok, err := ocr.Best(p.Engine, prepared, ocr.CellStrategies(whitelist), shape, nil)
	if err != nil || !ok {
		return "", 0, false, err
	}
	return cand.Text, cand.Confidence, true, nil
}
