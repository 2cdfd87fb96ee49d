package field

import (
	"regexp"
	"sort"
	"strings"
)

// Player names render as "J. Brunson", optionally with a suffix:
// "C. Porter Jr.", "G. Hill II". The chain below repairs the misreads the
// engine produces on this font and rejects anything that still does not
// look like a name.
var (
	dotCollisionRE  = regexp.MustCompile(`([A-Za-z])\.([A-Za-z])`)
	leadingJunkRE   = regexp.MustCompile(`^[.\-'\s]+`)
	disallowedRE    = regexp.MustCompile(`[^A-Za-z.\-'\s]`)
	missingDotRE    = regexp.MustCompile(`^([A-Za-z])\s*\.?\s*([A-Za-z])`)
	lowerEllRE      = regexp.MustCompile(`^l\.\s`)
	doubledInitRE   = regexp.MustCompile(`(?i)^[a-z]\.\s*[a-z]\.\s*`)
	lowerLastRE     = regexp.MustCompile(` ([a-z])([a-z]{2,})`)
	jrRE            = regexp.MustCompile(`\b(?:JR|Jr|jr)\b\.?`)
	srRE            = regexp.MustCompile(`\b(?:SR|Sr|sr)\b\.?`)
	suffixGlueRE    = regexp.MustCompile(`(Jr\.|Sr\.)`)
	spacedInitialRE = regexp.MustCompile(`^([A-Za-z])\s+([A-Za-z])`)
	romanRE         = regexp.MustCompile(`(?i)\b(?:i{1,3}|iv|v|vi{0,3}|ix|x)\b\.?`)
	lowerInitialRE  = regexp.MustCompile(`^[a-z]\.`)
	glyphInitialRE  = regexp.MustCompile(`^([A-Za-z])[il]\.\s*`)
	initialTokenRE  = regexp.MustCompile(`^[A-Z]\.?$`)
	lastNameTokenRE = regexp.MustCompile(`^[A-Z][A-Za-z'\-]+$`)
)

var romanSuffixes = map[string]bool{
	"I": true, "II": true, "III": true, "IV": true, "V": true,
	"VI": true, "VII": true, "VIII": true, "IX": true, "X": true,
}

type correction struct{ from, to string }

// NameNormalizer repairs and validates OCR'd player names. Corrections are
// substring replacements for misreads that no generic rule can recover.
type NameNormalizer struct {
	corrections []correction
}

// NewNameNormalizer builds a normalizer from a correction map. Entries are
// applied in sorted key order so results do not depend on map iteration.
func NewNameNormalizer(corrections map[string]string) *NameNormalizer {
	keys := make([]string, 0, len(corrections))
	for k := range corrections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n := &NameNormalizer{}
	for _, k := range keys {
		n.corrections = append(n.corrections, correction{
			from: strings.ToLower(k),
			to:   corrections[k],
		})
	}
	return n
}

// Clean applies the repair chain without validating the result. It is used
// both as the pre-scoring cleanup for OCR candidates and as the first step
// of Normalize.
func (n *NameNormalizer) Clean(raw string) string {
	s := strings.TrimSpace(raw)
	low := strings.ToLower(s)
	for _, c := range n.corrections {
		// Skip corrections whose output is already present, otherwise a
		// catch-all entry keeps rewriting its own result.
		if strings.Contains(low, c.from) && !strings.Contains(low, strings.ToLower(c.to)) {
			s = c.to
			break
		}
	}

	s = strings.ReplaceAll(s, "|", " ")
	s = CollapseSpaces(s)

	// "Mi.Bridges" -> "Mi. Bridges"
	s = dotCollisionRE.ReplaceAllString(s, "$1. $2")
	// ".Anunoby" -> "Anunoby"
	s = leadingJunkRE.ReplaceAllString(s, "")
	s = disallowedRE.ReplaceAllString(s, "")
	s = CollapseSpaces(s)

	// "PDadiet" -> "P. Dadiet"
	s = missingDotRE.ReplaceAllString(s, "$1. $2")
	// "l. James" -> "I. James"
	s = lowerEllRE.ReplaceAllString(s, "I. ")
	// Icon artifacts read as doubled initials, "c. s. Brunson" -> "Brunson"
	s = strings.TrimSpace(doubledInitRE.ReplaceAllString(s, ""))
	// "J. lsaac" -> "J. Lsaac"
	s = lowerLastRE.ReplaceAllStringFunc(s, func(m string) string {
		return " " + strings.ToUpper(m[1:2]) + m[2:]
	})

	s = jrRE.ReplaceAllString(s, "Jr.")
	s = srRE.ReplaceAllString(s, "Sr.")
	s = suffixGlueRE.ReplaceAllString(s, " $1")
	s = CollapseSpaces(s)

	// "I Evans" -> "I. Evans"
	s = spacedInitialRE.ReplaceAllString(s, "$1. $2")
	// Suffix numerals uppercase, trailing dot dropped: "ii." -> "II"
	s = romanRE.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(strings.TrimSuffix(m, "."))
	})
	return CollapseSpaces(s)
}

// Accept reports whether text cleans up to something shaped like a player
// name: an initial, a last name, and optionally a known suffix.
func (n *NameNormalizer) Accept(text string) bool {
	t := n.Clean(text)
	t = lowerInitialRE.ReplaceAllStringFunc(t, strings.ToUpper)

	parts := strings.Fields(t)
	if len(parts) < 2 {
		return false
	}
	if !initialTokenRE.MatchString(parts[0]) {
		return false
	}
	// Kills "E. E", "A", and similar fragments.
	if !lastNameTokenRE.MatchString(parts[1]) {
		return false
	}
	if len(parts) == 2 {
		return true
	}
	suffix := parts[2]
	return suffix == "Jr." || suffix == "Sr." || romanSuffixes[suffix]
}

// Normalize returns the canonical form of a raw name read, or ok=false when
// the text cannot be repaired into a plausible name.
func (n *NameNormalizer) Normalize(raw string) (string, bool) {
	// "Mi. Bridges" / "Ml. Bridges" -> "M. Bridges". Must run before the
	// chain, which would otherwise split the doubled initial.
	t := glyphInitialRE.ReplaceAllString(strings.TrimSpace(raw), "$1. ")
	t = n.Clean(t)
	t = lowerInitialRE.ReplaceAllStringFunc(t, strings.ToUpper)
	if !n.Accept(t) {
		return "", false
	}
	return t, true
}
