package field

import "strings"

// token maps OCR text onto a canonical enum value. All entries must appear
// as substrings of the uppercased read, or the read must equal one of the
// Exact forms.
type token struct {
	canonical string
	all       []string
	exact     []string
}

// Enum matches noisy reads against a fixed value set. Tokens are tried in
// order, so more specific entries must come first.
type Enum struct {
	tokens []token
}

// Normalize returns the canonical value for raw, or ok=false when nothing
// matches.
func (e Enum) Normalize(raw string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return "", false
	}
	for _, tok := range e.tokens {
		for _, x := range tok.exact {
			if t == x {
				return tok.canonical, true
			}
		}
		if len(tok.all) == 0 {
			continue
		}
		hit := true
		for _, sub := range tok.all {
			if !strings.Contains(t, sub) {
				hit = false
				break
			}
		}
		if hit {
			return tok.canonical, true
		}
	}
	return "", false
}

// OptionEnum matches contract option values. "2 Yr Team" must be tried
// before plain "Team". PLAYFR and NONF cover the usual E-to-F misreads.
func OptionEnum() Enum {
	return Enum{tokens: []token{
		{canonical: "Player", all: []string{"PLAYER"}},
		{canonical: "Player", all: []string{"PLAYFR"}},
		{canonical: "2 Yr Team", all: []string{"TEAM", "2", "YR"}},
		{canonical: "Team", all: []string{"TEAM"}},
		{canonical: "None", all: []string{"NONE"}},
		{canonical: "None", all: []string{"NONF"}},
	}}
}

// ExtensionEnum matches extension eligibility values.
func ExtensionEnum() Enum {
	return Enum{tokens: []token{
		{canonical: "Will Resign", all: []string{"WILL", "RESIGN"}},
		{canonical: "Not Eligible", all: []string{"NOT", "ELIGIBLE"}},
		{canonical: "None", all: []string{"NONE"}},
		{canonical: "None", all: []string{"NONF"}},
	}}
}

// NTCEnum matches the no-trade-clause column.
func NTCEnum() Enum {
	return Enum{tokens: []token{
		{canonical: "Yes", all: []string{"YES"}, exact: []string{"Y"}},
		{canonical: "Yes", all: []string{"YFS"}},
		{canonical: "No", all: []string{"NO"}, exact: []string{"N"}},
		{canonical: "No", all: []string{"N0"}},
	}}
}

// PositionEnum matches roster positions. "C" goes last so it only wins when
// no two-letter position is present.
func PositionEnum() Enum {
	return Enum{tokens: []token{
		{canonical: "PG", all: []string{"PG"}},
		{canonical: "SG", all: []string{"SG"}},
		{canonical: "SF", all: []string{"SF"}},
		{canonical: "PF", all: []string{"PF"}},
		{canonical: "C", all: []string{"C"}},
	}}
}

// RoundEnum matches draft round labels.
func RoundEnum() Enum {
	return Enum{tokens: []token{
		{canonical: "1st", all: []string{"1ST"}},
		{canonical: "1st", all: []string{"1"}},
		{canonical: "2nd", all: []string{"2ND"}},
		{canonical: "2nd", all: []string{"2"}},
	}}
}
