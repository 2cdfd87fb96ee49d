package ocr

import (
	"errors"
	"image"
	"regexp"
	"strings"
)

const (
	rejectScore    = -999.0
	canonicalScore = 10.0
	looseScore     = 6.0
	baselineScore  = 1.0
	confBonusCap   = 8.0
)

// Candidate is one scored OCR attempt.
type Candidate struct {
	Text       string
	Confidence float64
	Tag        string
	Score      float64
}

// Shape scores candidate text against the expected structure of a field.
// A canonical match contributes the largest increment, a loose match less,
// anything else a minimal baseline. Known header strings are rejected
// outright regardless of confidence.
type Shape struct {
	Canonical *regexp.Regexp
	Loose     *regexp.Regexp
	// Reject lists header strings (compared uppercased with spaces removed).
	Reject []string
}

// Score ranks candidate text: shape score plus a capped confidence bonus.
func (s Shape) Score(text string, conf float64) float64 {
	t := strings.TrimSpace(text)
	if t == "" {
		return rejectScore
	}
	key := strings.ToUpper(strings.ReplaceAll(t, " ", ""))
	for _, r := range s.Reject {
		if key == r {
			return rejectScore
		}
	}

	score := baselineScore
	if s.Canonical != nil && s.Canonical.MatchString(t) {
		score = canonicalScore
	} else if s.Loose != nil && s.Loose.MatchString(t) {
		score = looseScore
	}

	if conf > 0 {
		bonus := conf / 10
		if bonus > confBonusCap {
			bonus = confBonusCap
		}
		score += bonus
	}
	return score
}

// Best runs every strategy over the line image, cleans and scores each
// result, and returns the top candidate. clean may be nil. Ties keep the
// earliest strategy (deterministic order, not random). ok is false when
// every attempt was empty or rejected.
func Best(engine Engine, img image.Image, strategies []Strategy, shape Shape, clean func(string) string) (Candidate, bool, error) {
	best := Candidate{Score: rejectScore}
	found := false
	var lastErr error

	for _, st := range strategies {
		words, err := engine.Recognize(img, Params{Mode: st.Mode, Whitelist: st.Whitelist})
		if err != nil {
			// Losing the engine mid-run aborts immediately, even when an
			// earlier strategy already produced a candidate.
			if errors.Is(err, ErrEngineUnavailable) {
				return Candidate{}, false, err
			}
			lastErr = err
			continue
		}
		text := JoinWords(words)
		if clean != nil {
			text = clean(text)
		}
		conf := AvgConfidence(words)
		score := shape.Score(text, conf)
		if score <= rejectScore {
			continue
		}
		if !found || score > best.Score {
			best = Candidate{Text: text, Confidence: conf, Tag: st.Tag, Score: score}
			found = true
		}
	}

	if !found && lastErr != nil {
		return Candidate{}, false, lastErr
	}
	return best, found, nil
}
