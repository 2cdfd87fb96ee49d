package extract

import (
	"fmt"
	"image"
	"log"
	"math"
	"strings"

	"leaguelens/pkg/field"
	"leaguelens/pkg/layout"
	"leaguelens/pkg/manifest"
	"leaguelens/pkg/merge"
	"leaguelens/pkg/ocr"
	"leaguelens/pkg/segment"
)

// Player is one merged roster record.
type Player struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Pos      *string `json:"pos"`
	Age      *int    `json:"age"`
	Ovr      *int    `json:"ovr"`
	InDelta  *int    `json:"in_delta"`
	InStr    *string `json:"in_str"`
	Source   string  `json:"source"`
	Y0       int     `json:"y0"`
	Y1       int     `json:"y1"`
	NameConf float64 `json:"name_conf"`
}

// RosterResult is the output of a roster extraction run.
type RosterResult struct {
	Players []Player  `json:"players"`
	Raw     []RawLine `json:"raw"`
	Summary Summary   `json:"summary"`
}

// ExtractRoster processes every RosterViewer entry and merges the player
// observations across screenshots.
func (p *Pipeline) ExtractRoster(entries []manifest.Entry) (RosterResult, error) {
	res := RosterResult{Summary: newSummary()}
	screen, err := p.Layout.Screen(manifest.RosterViewer)
	if err != nil {
		return res, err
	}
	store := merge.NewStore()

	for _, e := range entries {
		img, err := p.loadImage(e.File)
		if err != nil {
			log.Printf("WARNING: %v", err)
			res.Summary.Skipped++
			continue
		}
		if err := p.rosterImage(img, e.File, screen, store, &res); err != nil {
			return res, err
		}
		res.Summary.Processed++
	}

	for _, rec := range store.Records() {
		res.Players = append(res.Players, playerFromRecord(rec))
	}
	res.Summary.Records = len(res.Players)
	return res, nil
}

func (p *Pipeline) rosterImage(img image.Image, file string, screen layout.Screen, store *merge.Store, res *RosterResult) error {
	nameCol, ok := p.cropColumn(img, screen, "name", file)
	if !ok {
		return nil
	}
	bands := segmentLines(nameCol, p.Seg)
	if len(bands) == 0 {
		log.Printf("no text lines in %s", file)
		return nil
	}

	posCol, hasPos := p.cropColumn(img, screen, "pos", file)
	ageCol, hasAge := p.cropColumn(img, screen, "age", file)
	ovrCol, hasOvr := p.cropColumn(img, screen, "rating", file)
	inCol, hasIn := p.cropColumn(img, screen, "in", file)

	for i, band := range bands {
		line, ok := lineCrop(nameCol, band)
		if !ok {
			continue
		}
		if p.Debug {
			p.saveDebug(fmt.Sprintf("%s_line_%02d_name.png", file, i), line)
		}
		name, conf, ok, err := p.ocrName(line)
		if err != nil {
			if fatal(err) {
				return err
			}
			log.Printf("WARNING: name ocr %s line %d: %v", file, i, err)
			continue
		}
		if !ok {
			res.Summary.miss("name")
			continue
		}
		res.Raw = append(res.Raw, RawLine{File: file, Y0: band.Y0, Y1: band.Y1, Text: name, Conf: round2(conf)})

		fields := make(map[string]merge.Value)

		if hasPos {
			text, _, found, err := p.cellAt(posCol, band, cellWhitelist, cellShape("POS"))
			if err != nil {
				return err
			}
			if found {
				if pos, ok := field.PositionEnum().Normalize(strings.ReplaceAll(text, " ", "")); ok {
					fields["pos"] = merge.Str(pos)
				} else {
					res.Summary.miss("pos")
				}
			}
		}
		if hasAge {
			if v, c, ok, err := p.intAt(ageCol, band, field.AgeRange(), "AGE"); err != nil {
				return err
			} else if ok {
				fields["age"] = merge.Int(v, c)
			} else {
				res.Summary.miss("age")
			}
		}
		if hasOvr {
			if v, c, ok, err := p.intAt(ovrCol, band, field.RatingRange(), "OVR"); err != nil {
				return err
			} else if ok {
				fields["ovr"] = merge.Int(v, c)
			} else {
				res.Summary.miss("ovr")
			}
		}
		if hasIn {
			if cell, ok := lineCrop(inCol, band); ok {
				delta, found, err := p.ratingDelta(cell)
				if err != nil {
					if fatal(err) {
						return err
					}
					log.Printf("WARNING: in-delta ocr %s line %d: %v", file, i, err)
				} else if found {
					fields["in_delta"] = merge.Int(delta, 0)
				}
			}
		}

		store.Upsert(merge.Observation{
			Key:      strings.ToLower(name),
			Name:     name,
			NameConf: round2(conf),
			Fields:   fields,
			Source:   file,
			Y0:       band.Y0,
			Y1:       band.Y1,
		})
	}
	return nil
}

// cellAt crops a sibling column at the band and OCRs it as a generic cell.
// The returned error is always fatal; recoverable problems come back as
// found=false.
func (p *Pipeline) cellAt(col *image.NRGBA, band segment.Band, whitelist string, shape ocr.Shape) (string, float64, bool, error) {
	cell, ok := lineCrop(col, band)
	if !ok {
		return "", 0, false, nil
	}
	text, conf, found, err := p.ocrCell(cell, whitelist, shape)
	if err != nil {
		if fatal(err) {
			return "", 0, false, err
		}
		log.Printf("WARNING: cell ocr: %v", err)
		return "", 0, false, nil
	}
	return text, conf, found, nil
}

// intAt OCRs a digit cell and runs it through a bounded-integer normalizer.
func (p *Pipeline) intAt(col *image.NRGBA, band segment.Band, rng field.IntRange, header string) (int, float64, bool, error) {
	text, conf, found, err := p.cellAt(col, band, digitWhitelist, digitShape(header))
	if err != nil || !found {
		return 0, 0, false, err
	}
	v, c, ok := rng.Normalize(text, conf)
	return v, c, ok, nil
}

func playerFromRecord(rec *merge.Record) Player {
	out := Player{
		ID:       rec.ID,
		Name:     rec.Name,
		NameConf: rec.NameConf,
		Source:   rec.Source,
		Y0:       rec.Y0,
		Y1:       rec.Y1,
	}
	if v := rec.StrField("pos"); v != "" {
		out.Pos = &v
	}
	if n, ok := rec.IntField("age"); ok {
		out.Age = &n
	}
	if n, ok := rec.IntField("ovr"); ok {
		out.Ovr = &n
	}
	if n, ok := rec.IntField("in_delta"); ok {
		out.InDelta = &n
		s := fmt.Sprintf("%+d", n)
		out.InStr = &s
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
