package extract

import (
	"image"
	"log"
	"sort"
	"strings"

	"leaguelens/pkg/field"
	"leaguelens/pkg/layout"
	"leaguelens/pkg/manifest"
	"leaguelens/pkg/merge"
)

// DraftPick is one merged future-draft-pick record. A pick is identified by
// owning team, year, round, and origin, since one team can hold several
// picks in the same draft.
type DraftPick struct {
	ID         string  `json:"id"`
	Team       string  `json:"team"`
	Year       string  `json:"year"`
	Round      *string `json:"round"`
	Pick       *string `json:"pick"`
	Protection *string `json:"protection"`
	Origin     *string `json:"origin"`
	Source     string  `json:"source"`
	Y0         int     `json:"y0"`
	Y1         int     `json:"y1"`
}

// PicksResult is the output of a draft-pick extraction run.
type PicksResult struct {
	Picks   []DraftPick            `json:"picks"`
	ByTeam  map[string][]DraftPick `json:"-"`
	Raw     []RawLine              `json:"raw"`
	Summary Summary                `json:"summary"`
}

// ExtractDraftPicks processes every FutureDraftPicks entry. The year column
// is the primary: it sets the line boundaries shared by the sibling columns.
func (p *Pipeline) ExtractDraftPicks(entries []manifest.Entry) (PicksResult, error) {
	res := PicksResult{Summary: newSummary()}
	screen, err := p.Layout.Screen(manifest.FutureDraftPicks)
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
		if err := p.pickImage(img, e.File, screen, store, &res); err != nil {
			return res, err
		}
		res.Summary.Processed++
	}

	res.ByTeam = make(map[string][]DraftPick)
	for _, rec := range store.Records() {
		pick := pickFromRecord(rec)
		res.Picks = append(res.Picks, pick)
		res.ByTeam[pick.Team] = append(res.ByTeam[pick.Team], pick)
	}
	sort.Slice(res.Picks, func(i, j int) bool {
		if res.Picks[i].Team != res.Picks[j].Team {
			return res.Picks[i].Team < res.Picks[j].Team
		}
		return res.Picks[i].Year < res.Picks[j].Year
	})
	for team := range res.ByTeam {
		list := res.ByTeam[team]
		sort.Slice(list, func(i, j int) bool { return list[i].Year < list[j].Year })
	}
	res.Summary.Records = len(res.Picks)
	return res, nil
}

func (p *Pipeline) pickImage(img image.Image, file string, screen layout.Screen, store *merge.Store, res *PicksResult) error {
	team, err := p.teamFromHeader(img, screen, file)
	if err != nil {
		return err
	}

	yearCol, ok := p.cropColumn(img, screen, "year", file)
	if !ok {
		return nil
	}
	bands := segmentLines(yearCol, p.Seg)
	if len(bands) == 0 {
		log.Printf("no text lines in %s", file)
		return nil
	}

	roundCol, hasRound := p.cropColumn(img, screen, "round", file)
	pickCol, hasPick := p.cropColumn(img, screen, "pick", file)
	protCol, hasProt := p.cropColumn(img, screen, "protection", file)
	originCol, hasOrigin := p.cropColumn(img, screen, "origin", file)

	roundEnum := field.RoundEnum()

	for _, band := range bands {
		yearText, yearConf, found, err := p.cellAt(yearCol, band, digitWhitelist, digitShape("YEAR"))
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		year, ok := field.PickYear(yearText)
		if !ok {
			res.Summary.miss("year")
			continue
		}
		res.Raw = append(res.Raw, RawLine{File: file, Y0: band.Y0, Y1: band.Y1, Text: year, Conf: round2(yearConf)})

		fields := map[string]merge.Value{
			"year": merge.Str(year),
			"team": merge.Str(team),
		}

		var round, origin string
		if hasRound {
			text, _, found, err := p.cellAt(roundCol, band, cellWhitelist, cellShape("ROUND"))
			if err != nil {
				return err
			}
			if found {
				if v, ok := roundEnum.Normalize(text); ok {
					round = v
					fields["round"] = merge.Str(v)
				} else {
					res.Summary.miss("round")
				}
			}
		}
		if hasPick {
			text, _, found, err := p.cellAt(pickCol, band, cellWhitelist, cellShape("PICK"))
			if err != nil {
				return err
			}
			if found {
				if v, ok := field.PickNumber(text); ok {
					fields["pick"] = merge.Str(v)
				}
			}
		}
		if hasProt {
			text, _, found, err := p.cellAt(protCol, band, cellWhitelist, cellShape("PROTECTION"))
			if err != nil {
				return err
			}
			if found {
				if v, ok := field.PickProtection(text); ok {
					fields["protection"] = merge.Str(v)
				}
			}
		}
		if hasOrigin {
			text, _, found, err := p.cellAt(originCol, band, cellWhitelist, cellShape("ORIGIN"))
			if err != nil {
				return err
			}
			if found {
				// The origin is a franchise name, so it goes through the
				// same correction table and fuzzy match as any team read.
				if m, ok := p.Teams.Resolve(text); ok {
					origin = m.Name
					fields["origin"] = merge.Str(m.Name)
				} else if v, ok := field.PickOrigin(text); ok {
					origin = v
					fields["origin"] = merge.Str(v)
				}
			}
		}

		key := strings.ToLower(strings.Join([]string{team, year, round, origin}, "|"))
		store.Upsert(merge.Observation{
			Key:    key,
			Name:   team + " " + year,
			Fields: fields,
			Source: file,
			Y0:     band.Y0,
			Y1:     band.Y1,
		})
	}
	return nil
}

func pickFromRecord(rec *merge.Record) DraftPick {
	out := DraftPick{
		ID:     rec.ID,
		Team:   rec.StrField("team"),
		Year:   rec.StrField("year"),
		Source: rec.Source,
		Y0:     rec.Y0,
		Y1:     rec.Y1,
	}
	if out.Team == "" {
		out.Team = "Unknown"
	}
	if v := rec.StrField("round"); v != "" {
		out.Round = &v
	}
	if v := rec.StrField("pick"); v != "" {
		out.Pick = &v
	}
	if v := rec.StrField("protection"); v != "" {
		out.Protection = &v
	}
	if v := rec.StrField("origin"); v != "" {
		out.Origin = &v
	}
	return out
}
