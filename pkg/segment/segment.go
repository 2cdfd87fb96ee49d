// Package segment finds horizontal text-line bands in a binarized column
// image. The output order (top to bottom) is part of the contract: it is the
// rank order of the underlying list — roster order, pick order, standings
// order — and callers rely on it.
package segment

import (
	"image"
	"sort"
)

// Config holds the tuned line-detection constants. The defaults are empirical
// values for 1080p columns; override them rather than deriving new rules.
type Config struct {
	// Window is the moving-average width applied to the per-row ink fraction.
	Window int
	// Floor is the minimum threshold on the smoothed ink fraction.
	Floor float64
	// Percentile of the smoothed profile used for the adaptive threshold.
	Percentile float64
	// Factor scales the percentile value; threshold = max(Floor, pN*Factor).
	Factor float64
	// MinHeight discards runs shorter than this many rows as noise.
	MinHeight int
	// Pad extends each accepted run by this many rows on both sides.
	Pad int
}

// DefaultConfig returns the tuned constants for 1080p screenshots.
func DefaultConfig() Config {
	return Config{
		Window:     9,
		Floor:      0.02,
		Percentile: 85,
		Factor:     0.25,
		MinHeight:  10,
		Pad:        4,
	}
}

// Band is a vertical text-line span in column coordinates, 0 <= Y0 < Y1 <= H.
type Band struct {
	Y0 int `json:"y0"`
	Y1 int `json:"y1"`
}

// Height returns the band height in rows.
func (b Band) Height() int { return b.Y1 - b.Y0 }

// ClampTo projects the band onto a sibling column of the given height.
// Returns false when nothing of the band fits.
func (b Band) ClampTo(h int) (Band, bool) {
	if b.Y0 >= h || b.Y1 <= 0 {
		return Band{}, false
	}
	if b.Y0 < 0 {
		b.Y0 = 0
	}
	if b.Y1 > h {
		b.Y1 = h
	}
	if b.Y1 <= b.Y0 {
		return Band{}, false
	}
	return b, true
}

// FindLines locates text-line bands in an ink mask (foreground = white).
// Zero bands is a valid result, not an error. Returned bands are ordered top
// to bottom and never overlap, even after padding.
func FindLines(mask *image.Gray, cfg Config) []Band {
	h := mask.Bounds().Dy()
	w := mask.Bounds().Dx()
	if h == 0 || w == 0 {
		return nil
	}

	profile := rowInkFraction(mask)
	smooth := movingAverage(profile, cfg.Window)
	thr := percentile(smooth, cfg.Percentile) * cfg.Factor
	if thr < cfg.Floor {
		thr = cfg.Floor
	}

	var bands []Band
	y := 0
	for y < h {
		if smooth[y] <= thr {
			y++
			continue
		}
		y0 := y
		for y < h && smooth[y] > thr {
			y++
		}
		if y-y0 < cfg.MinHeight {
			continue
		}
		b := Band{Y0: y0 - cfg.Pad, Y1: y + cfg.Pad}
		if b.Y0 < 0 {
			b.Y0 = 0
		}
		if b.Y1 > h {
			b.Y1 = h
		}
		// Padding may run into the previous band; keep bands disjoint.
		if n := len(bands); n > 0 && b.Y0 < bands[n-1].Y1 {
			b.Y0 = bands[n-1].Y1
		}
		if b.Y1 > b.Y0 {
			bands = append(bands, b)
		}
	}
	return bands
}

func rowInkFraction(mask *image.Gray) []float64 {
	h := mask.Bounds().Dy()
	w := mask.Bounds().Dx()
	out := make([]float64, h)
	for y := 0; y < h; y++ {
		n := 0
		for x := 0; x < w; x++ {
			if mask.GrayAt(x, y).Y > 127 {
				n++
			}
		}
		out[y] = float64(n) / float64(w)
	}
	return out
}

func movingAverage(v []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	half := window / 2
	out := make([]float64, len(v))
	for i := range v {
		lo := i - half
		hi := i + half
		if lo < 0 {
			lo = 0
		}
		if hi >= len(v) {
			hi = len(v) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += v[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// percentile returns the p-th percentile (nearest rank) of v.
func percentile(v []float64, p float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sorted := make([]float64, len(v))
	copy(sorted, v)
	sort.Float64s(sorted)
	idx := int(p / 100 * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
