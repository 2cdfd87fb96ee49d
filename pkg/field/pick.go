package field

import (
	"regexp"
	"strings"
)

// Draft pick columns. Unowned slots render as "--" and normalize to null.
var (
	pickYearRE   = regexp.MustCompile(`\b(20[2-9][0-9])\b`)
	pickNumberRE = regexp.MustCompile(`\b(\d+)\b`)
	alnumOnlyRE  = regexp.MustCompile(`[^A-Za-z0-9\s]`)
)

// PickYear extracts a four-digit draft year.
func PickYear(raw string) (string, bool) {
	m := pickYearRE.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PickNumber extracts the pick slot number. Dashes mean the slot is not yet
// assigned.
func PickNumber(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	if t == "" || strings.Contains(t, "--") {
		return "", false
	}
	m := pickNumberRE.FindStringSubmatch(t)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PickProtection keeps protection text verbatim, treating dashes and "None"
// as null.
func PickProtection(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	if t == "" || t == "--" || t == "None" {
		return "", false
	}
	return CollapseSpaces(t), true
}

// PickOrigin cleans the originating-team cell down to letters, digits, and
// spaces.
func PickOrigin(raw string) (string, bool) {
	t := strings.TrimSpace(raw)
	if t == "" || t == "--" {
		return "", false
	}
	t = CollapseSpaces(alnumOnlyRE.ReplaceAllString(t, ""))
	if t == "" {
		return "", false
	}
	return t, true
}
