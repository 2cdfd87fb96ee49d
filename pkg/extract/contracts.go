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
	"leaguelens/pkg/segment"
)

// Contract is one merged contract-extensions record.
type Contract struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Team      string  `json:"team"`
	Salary    *string `json:"salary"`
	Option    *string `json:"option"`
	Sign      *string `json:"sign"`
	Extension *string `json:"extension"`
	NTC       *string `json:"ntc"`
	Source    string  `json:"source"`
	Y0        int     `json:"y0"`
	Y1        int     `json:"y1"`
	NameConf  float64 `json:"name_conf"`
}

// ContractsResult is the output of a contract extraction run. ByTeam groups
// the same records per franchise for the per-team output files.
type ContractsResult struct {
	Contracts []Contract            `json:"contracts"`
	ByTeam    map[string][]Contract `json:"-"`
	Raw       []RawLine             `json:"raw"`
	Summary   Summary               `json:"summary"`
}

// ExtractContracts processes every ContractExtensions entry.
func (p *Pipeline) ExtractContracts(entries []manifest.Entry) (ContractsResult, error) {
	res := ContractsResult{Summary: newSummary()}
	screen, err := p.Layout.Screen(manifest.ContractExtensions)
	if err != nil {
		return res, err
	}
	store := merge.NewStore()
	teams := make(map[string]string) // identity key -> team

	for _, e := range entries {
		img, err := p.loadImage(e.File)
		if err != nil {
			log.Printf("WARNING: %v", err)
			res.Summary.Skipped++
			continue
		}
		if err := p.contractImage(img, e.File, screen, store, teams, &res); err != nil {
			return res, err
		}
		res.Summary.Processed++
	}

	res.ByTeam = make(map[string][]Contract)
	for _, rec := range store.Records() {
		c := contractFromRecord(rec, teams[rec.Key])
		res.Contracts = append(res.Contracts, c)
		res.ByTeam[c.Team] = append(res.ByTeam[c.Team], c)
	}
	for team := range res.ByTeam {
		list := res.ByTeam[team]
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
	res.Summary.Records = len(res.Contracts)
	return res, nil
}

func (p *Pipeline) contractImage(img image.Image, file string, screen layout.Screen, store *merge.Store, teams map[string]string, res *ContractsResult) error {
	team, err := p.teamFromHeader(img, screen, file)
	if err != nil {
		return err
	}

	nameCol, ok := p.cropColumn(img, screen, "name", file)
	if !ok {
		return nil
	}
	bands := segmentLines(nameCol, p.Seg)
	if len(bands) == 0 {
		log.Printf("no text lines in %s", file)
		return nil
	}

	salaryCol, hasSalary := p.cropColumn(img, screen, "salary", file)
	optionCol, hasOption := p.cropColumn(img, screen, "option", file)
	signCol, hasSign := p.cropColumn(img, screen, "sign", file)
	extCol, hasExt := p.cropColumn(img, screen, "extension", file)
	ntcCol, hasNTC := p.cropColumn(img, screen, "ntc", file)

	optionEnum := field.OptionEnum()
	extensionEnum := field.ExtensionEnum()
	ntcEnum := field.NTCEnum()

	for i, band := range bands {
		line, ok := lineCrop(nameCol, band)
		if !ok {
			continue
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

		if hasSalary {
			text, _, found, err := p.cellAt(salaryCol, band, cellWhitelist, cellShape("SALARY"))
			if err != nil {
				return err
			}
			if found {
				if v, ok := field.Currency(text); ok {
					fields["salary"] = merge.Str(v)
				} else {
					res.Summary.miss("salary")
				}
			}
		}
		if hasOption {
			if err := p.enumAt(optionCol, band, optionEnum, "OPTION", "option", fields, res); err != nil {
				return err
			}
		}
		if hasSign {
			text, _, found, err := p.cellAt(signCol, band, cellWhitelist, cellShape("SIGN"))
			if err != nil {
				return err
			}
			if found {
				if v, ok := field.SignStatus(text); ok {
					fields["sign"] = merge.Str(v)
				} else {
					res.Summary.miss("sign")
				}
			}
		}
		if hasExt {
			if err := p.enumAt(extCol, band, extensionEnum, "EXTENSION", "extension", fields, res); err != nil {
				return err
			}
		}
		if hasNTC {
			if err := p.enumAt(ntcCol, band, ntcEnum, "NTC", "ntc", fields, res); err != nil {
				return err
			}
		}

		key := strings.ToLower(name)
		if _, seen := teams[key]; !seen && team != "" {
			teams[key] = team
		}
		store.Upsert(merge.Observation{
			Key:      key,
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

// enumAt OCRs a cell and matches it against a closed value set.
func (p *Pipeline) enumAt(col *image.NRGBA, band segment.Band, e field.Enum, header, fieldName string, fields map[string]merge.Value, res *ContractsResult) error {
	text, _, found, err := p.cellAt(col, band, cellWhitelist, cellShape(header))
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if v, ok := e.Normalize(text); ok {
		fields[fieldName] = merge.Str(v)
	} else {
		res.Summary.miss(fieldName)
	}
	return nil
}

func contractFromRecord(rec *merge.Record, team string) Contract {
	if team == "" {
		team = "Unknown"
	}
	out := Contract{
		ID:       rec.ID,
		Name:     rec.Name,
		Team:     team,
		NameConf: rec.NameConf,
		Source:   rec.Source,
		Y0:       rec.Y0,
		Y1:       rec.Y1,
	}
	if v := rec.StrField("salary"); v != "" {
		out.Salary = &v
	}
	if v := rec.StrField("option"); v != "" {
		out.Option = &v
	}
	if v := rec.StrField("sign"); v != "" {
		out.Sign = &v
	}
	if v := rec.StrField("extension"); v != "" {
		out.Extension = &v
	}
	if v := rec.StrField("ntc"); v != "" {
		out.NTC = &v
	}
	return out
}
