// Package field turns raw OCR text into typed, canonical values. Every
// normalizer is a pure function from a raw string to a value-or-null; garbage
// input yields null, never a plausible wrong value.
package field

import "strings"

// CollapseSpaces trims and squeezes runs of whitespace to single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// OnlyDigits keeps decimal digits and drops everything else.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Snippet shortens text for logging.
func Snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
