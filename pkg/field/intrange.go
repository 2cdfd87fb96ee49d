package field

import (
	"regexp"
	"strconv"
)

var digitRunRE = regexp.MustCompile(`\d{1,3}`)

// Recovery maps a band of misreads onto the plausible range. A rating read
// as "18" almost always lost the leading 7, so 10-19 recovers to 70-79.
type Recovery struct {
	Lo, Hi, Offset int
}

// IntRange normalizes bounded integer columns. Tens lists the leading
// digits tried when only a single digit survives OCR; ReconstructConf is
// the flat confidence such reconstructions report.
type IntRange struct {
	Min, Max        int
	Recover         []Recovery
	Tens            []int
	RecoverScale    float64
	ReconstructConf float64
}

// RatingRange covers overall ratings, 60-99 on this screen.
func RatingRange() IntRange {
	return IntRange{
		Min:             60,
		Max:             99,
		Recover:         []Recovery{{Lo: 10, Hi: 19, Offset: 60}},
		Tens:            []int{7, 8, 9},
		RecoverScale:    0.9,
		ReconstructConf: 40,
	}
}

// AgeRange covers player ages.
func AgeRange() IntRange {
	return IntRange{
		Min:             18,
		Max:             45,
		Tens:            []int{1, 2, 3},
		RecoverScale:    0.9,
		ReconstructConf: 35,
	}
}

// RankRange covers standings and power ranks.
func RankRange() IntRange {
	return IntRange{Min: 1, Max: 30}
}

// Normalize parses a bounded integer from raw. It returns the value, the
// confidence to record for it, and ok=false when no plausible value exists.
// Out-of-range reads pass through the recovery bands, then single digits are
// reconstructed against the Tens list at reduced confidence.
func (r IntRange) Normalize(raw string, conf float64) (int, float64, bool) {
	run := digitRunRE.FindString(raw)
	if run == "" {
		return 0, 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0, 0, false
	}

	if n >= r.Min && n <= r.Max {
		return n, conf, true
	}
	for _, rec := range r.Recover {
		if n >= rec.Lo && n <= rec.Hi {
			return n + rec.Offset, conf * r.RecoverScale, true
		}
	}
	if len(run) == 1 {
		for _, tens := range r.Tens {
			cand := tens*10 + n
			if cand >= r.Min && cand <= r.Max {
				return cand, r.ReconstructConf, true
			}
		}
	}
	return 0, 0, false
}
