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

// Standing is one merged standings row.
type Standing struct {
	ID         string  `json:"id"`
	Conference string  `json:"conference"`
	Rank       *int    `json:"rank"`
	PowerRank  *int    `json:"power_rank"`
	Team       string  `json:"team"`
	Record     *string `json:"record"`
	Source     string  `json:"source"`
	Y0         int     `json:"y0"`
	Y1         int     `json:"y1"`
	NameConf   float64 `json:"name_conf"`
}

// StandingsResult is the output of a standings extraction run. Teams come
// back Eastern first, then Western, each conference sorted by rank with
// unranked rows last.
type StandingsResult struct {
	Standings []Standing `json:"standings"`
	Raw       []RawLine  `json:"raw"`
	Summary   Summary    `json:"summary"`
}

// ExtractStandings processes every TeamStandings entry.
func (p *Pipeline) ExtractStandings(entries []manifest.Entry) (StandingsResult, error) {
	res := StandingsResult{Summary: newSummary()}
	screen, err := p.Layout.Screen(manifest.TeamStandings)
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
		if err := p.standingsImage(img, e.File, screen, store, &res); err != nil {
			return res, err
		}
		res.Summary.Processed++
	}

	var eastern, western []Standing
	for _, rec := range store.Records() {
		s := standingFromRecord(rec)
		if s.Conference == "Western" {
			western = append(western, s)
		} else {
			eastern = append(eastern, s)
		}
	}
	sortByRank(eastern)
	sortByRank(western)
	inferRanks(eastern)
	inferRanks(western)
	res.Standings = append(eastern, western...)
	res.Summary.Records = len(res.Standings)
	return res, nil
}

func (p *Pipeline) standingsImage(img image.Image, file string, screen layout.Screen, store *merge.Store, res *StandingsResult) error {
	conference, err := p.conferenceFromHeader(img, screen, file)
	if err != nil {
		return err
	}
	powerRank, err := p.powerRankFromHeader(img, screen, file)
	if err != nil {
		return err
	}

	teamCol, ok := p.cropColumn(img, screen, "team", file)
	if !ok {
		return nil
	}
	bands := segmentLines(teamCol, p.Seg)
	if len(bands) == 0 {
		log.Printf("no text lines in %s", file)
		return nil
	}

	rankCol, hasRank := p.cropColumn(img, screen, "rank", file)
	recordCol, hasRecord := p.cropColumn(img, screen, "record", file)

	for i, band := range bands {
		line, ok := lineCrop(teamCol, band)
		if !ok {
			continue
		}
		text, conf, found, err := p.ocrCell(line, cellWhitelist, cellShape("TEAM", "NAME"))
		if err != nil {
			if fatal(err) {
				return err
			}
			log.Printf("WARNING: team ocr %s line %d: %v", file, i, err)
			continue
		}
		if !found {
			continue
		}
		match, ok := p.Teams.Resolve(text)
		if !ok {
			res.Summary.miss("team")
			continue
		}
		res.Raw = append(res.Raw, RawLine{File: file, Y0: band.Y0, Y1: band.Y1, Text: match.Name, Conf: round2(conf)})

		fields := make(map[string]merge.Value)

		if hasRank {
			if v, c, ok, err := p.intAt(rankCol, band, field.RankRange(), "RANK"); err != nil {
				return err
			} else if ok {
				fields["rank"] = merge.Int(v, c)
			} else {
				res.Summary.miss("rank")
			}
		}
		if hasRecord {
			text, _, found, err := p.cellAt(recordCol, band, digitWhitelist+"-", cellShape())
			if err != nil {
				return err
			}
			if found {
				if rec, _, _, ok := field.WinLoss(text); ok {
					fields["record"] = merge.Str(rec)
				} else {
					res.Summary.miss("record")
				}
			}
		}
		// A team read with neither rank nor record is most likely a stray
		// match on UI chrome; it never becomes a row.
		_, hasRankVal := fields["rank"]
		_, hasRecordVal := fields["record"]
		if !hasRankVal && !hasRecordVal {
			continue
		}

		if powerRank != 0 {
			fields["power_rank"] = merge.Int(powerRank, 0)
		}

		// The screen's conference tab wins; otherwise fall back to the
		// roster's conference for the matched team.
		side := conference
		if side == "" {
			side = match.Conference
		}
		if side == "" {
			side = "Eastern"
		}
		fields["conference"] = merge.Str(side)

		store.Upsert(merge.Observation{
			Key:      strings.ToLower(match.Name),
			Name:     match.Name,
			NameConf: round2(conf),
			Fields:   fields,
			Source:   file,
			Y0:       band.Y0,
			Y1:       band.Y1,
		})
	}
	return nil
}

func standingFromRecord(rec *merge.Record) Standing {
	out := Standing{
		ID:         rec.ID,
		Team:       rec.Name,
		Conference: rec.StrField("conference"),
		Source:     rec.Source,
		Y0:         rec.Y0,
		Y1:         rec.Y1,
		NameConf:   rec.NameConf,
	}
	if n, ok := rec.IntField("rank"); ok {
		out.Rank = &n
	}
	if n, ok := rec.IntField("power_rank"); ok {
		out.PowerRank = &n
	}
	if v := rec.StrField("record"); v != "" {
		out.Record = &v
	}
	return out
}

func sortByRank(list []Standing) {
	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := list[i].Rank, list[j].Rank
		switch {
		case ri != nil && rj != nil:
			return *ri < *rj
		case ri != nil:
			return true
		default:
			return false
		}
	})
}

// inferRanks fills rank gaps from sorted neighbors: a row between rank N and
// N+2 must be N+1; a row after the last known rank continues the sequence.
func inferRanks(list []Standing) {
	for i := range list {
		if list[i].Rank != nil {
			continue
		}
		var prev, next *int
		if i > 0 {
			prev = list[i-1].Rank
		}
		if i < len(list)-1 {
			next = list[i+1].Rank
		}
		switch {
		case prev != nil && next != nil:
			expected := *prev + 1
			if expected == *next {
				r := expected
				list[i].Rank = &r
			}
		case prev != nil:
			r := *prev + 1
			list[i].Rank = &r
		case next != nil:
			r := *next - 1
			list[i].Rank = &r
		}
	}
}
