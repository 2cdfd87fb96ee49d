package field

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	leadingNonAlphaRE = regexp.MustCompile(`^[^A-Za-z]+`)
	nonTeamCharRE     = regexp.MustCompile(`[^A-Za-z0-9\s]`)
)

// TeamMatch is a resolved team cell. Known is false when the text survived
// cleanup but matched no franchise; the title-cased literal is kept so the
// read is not lost.
type TeamMatch struct {
	Name       string
	Conference string
	Known      bool
}

// TeamResolver maps noisy team reads onto the league roster. Resolution
// order: correction table, exact match, containment, then edit-distance
// similarity against full and short names.
type TeamResolver struct {
	entries     []TeamEntry
	corrections []correction
	floor       float64
	title       cases.Caser
}

// NewTeamResolver builds a resolver over the given roster. floor is the
// minimum similarity ratio for a fuzzy match; 0.75 works well for this font.
func NewTeamResolver(entries []TeamEntry, corrections map[string]string, floor float64) *TeamResolver {
	keys := make([]string, 0, len(corrections))
	for k := range corrections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := &TeamResolver{
		entries: entries,
		floor:   floor,
		title:   cases.Title(language.English),
	}
	for _, k := range keys {
		r.corrections = append(r.corrections, correction{
			from: strings.ToLower(k),
			to:   corrections[k],
		})
	}
	return r
}

// Conference returns the conference for a known team name, matching either
// the full or the short form.
func (r *TeamResolver) Conference(name string) (string, bool) {
	low := strings.ToLower(strings.TrimSpace(name))
	for _, e := range r.entries {
		if low == strings.ToLower(e.Full) || low == strings.ToLower(e.Short) {
			return e.Conference, true
		}
	}
	return "", false
}

// Resolve normalizes a raw team read. ok=false means the cell held nothing
// usable (too short, or a header read like "TEAM").
func (r *TeamResolver) Resolve(raw string) (TeamMatch, bool) {
	t := cleanTeamText(raw)
	if len(t) < 3 {
		return TeamMatch{}, false
	}
	up := strings.ToUpper(strings.ReplaceAll(t, " ", ""))
	if up == "TEAM" || up == "NAME" {
		return TeamMatch{}, false
	}

	low := strings.ToLower(t)
	for _, c := range r.corrections {
		if strings.Contains(low, c.from) {
			t = c.to
			low = strings.ToLower(c.to)
			break
		}
	}

	if m, ok := r.lookup(low); ok {
		return m, true
	}

	// Unmatched but readable text is kept as a title-cased literal so a new
	// or misconfigured roster does not silently drop rows.
	return TeamMatch{Name: r.title.String(low)}, true
}

func (r *TeamResolver) lookup(low string) (TeamMatch, bool) {
	for _, e := range r.entries {
		if low == strings.ToLower(e.Full) {
			return TeamMatch{Name: e.Full, Conference: e.Conference, Known: true}, true
		}
		if low == strings.ToLower(e.Short) {
			return TeamMatch{Name: e.Short, Conference: e.Conference, Known: true}, true
		}
	}
	// Containment needs a few characters to be meaningful; tiny fragments
	// match half the league.
	if len(low) >= 5 {
		for _, e := range r.entries {
			full, short := strings.ToLower(e.Full), strings.ToLower(e.Short)
			if strings.Contains(low, full) || strings.Contains(full, low) {
				return TeamMatch{Name: e.Full, Conference: e.Conference, Known: true}, true
			}
			if strings.Contains(low, short) || strings.Contains(short, low) {
				return TeamMatch{Name: e.Short, Conference: e.Conference, Known: true}, true
			}
		}
	}

	var best TeamMatch
	bestRatio := r.floor
	for _, e := range r.entries {
		if ratio := Ratio(low, strings.ToLower(e.Full)); ratio > bestRatio {
			bestRatio = ratio
			best = TeamMatch{Name: e.Full, Conference: e.Conference, Known: true}
		}
		if ratio := Ratio(low, strings.ToLower(e.Short)); ratio > bestRatio {
			bestRatio = ratio
			best = TeamMatch{Name: e.Short, Conference: e.Conference, Known: true}
		}
	}
	if best.Known {
		return best, true
	}
	return TeamMatch{}, false
}

func cleanTeamText(raw string) string {
	t := strings.TrimSpace(raw)
	t = leadingNonAlphaRE.ReplaceAllString(t, "")
	t = nonTeamCharRE.ReplaceAllString(t, " ")
	return CollapseSpaces(t)
}
