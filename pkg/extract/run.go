package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"leaguelens/pkg/manifest"
)

// Screen selectors accepted by RunAll.
const (
	ScreenAll       = "all"
	ScreenRoster    = "roster"
	ScreenContracts = "contracts"
	ScreenPicks     = "picks"
	ScreenStandings = "standings"
)

// RunAll executes the selected extractions over the manifest entries and
// writes the JSON outputs under outDir. Per-team contract and pick files go
// to teams_contracts/ and teams_picks/ subdirectories.
func RunAll(p *Pipeline, entries []manifest.Entry, screen, outDir string) error {
	switch screen {
	case ScreenAll, ScreenRoster, ScreenContracts, ScreenPicks, ScreenStandings:
	default:
		return fmt.Errorf("unknown screen selector %q", screen)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	want := func(kind string) bool { return screen == ScreenAll || screen == kind }

	if want(ScreenRoster) {
		res, err := p.ExtractRoster(manifest.Filter(entries, manifest.RosterViewer))
		if err != nil {
			return err
		}
		res.Summary.Log("roster")
		if err := writeJSON(filepath.Join(outDir, "roster_players.json"), res); err != nil {
			return err
		}
	}
	if want(ScreenContracts) {
		res, err := p.ExtractContracts(manifest.Filter(entries, manifest.ContractExtensions))
		if err != nil {
			return err
		}
		res.Summary.Log("contracts")
		if err := writeJSON(filepath.Join(outDir, "contracts.json"), res); err != nil {
			return err
		}
		if err := writeByTeam(filepath.Join(outDir, "teams_contracts"), res.ByTeam); err != nil {
			return err
		}
	}
	if want(ScreenPicks) {
		res, err := p.ExtractDraftPicks(manifest.Filter(entries, manifest.FutureDraftPicks))
		if err != nil {
			return err
		}
		res.Summary.Log("picks")
		if err := writeJSON(filepath.Join(outDir, "draft_picks.json"), res); err != nil {
			return err
		}
		if err := writeByTeam(filepath.Join(outDir, "teams_picks"), res.ByTeam); err != nil {
			return err
		}
	}
	if want(ScreenStandings) {
		res, err := p.ExtractStandings(manifest.Filter(entries, manifest.TeamStandings))
		if err != nil {
			return err
		}
		res.Summary.Log("standings")
		if err := writeJSON(filepath.Join(outDir, "standings.json"), res); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func writeByTeam[T any](dir string, byTeam map[string][]T) error {
	if len(byTeam) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for team, list := range byTeam {
		path := filepath.Join(dir, teamFileName(team)+".json")
		if err := writeJSON(path, list); err != nil {
			return err
		}
	}
	return nil
}

func teamFileName(team string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, strings.ToLower(team))
	s = strings.Trim(s, "_")
	if s == "" {
		return "unknown"
	}
	return s
}
