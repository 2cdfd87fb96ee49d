package extract

import (
	"image"
	"regexp"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"leaguelens/pkg/ocr"
	"leaguelens/pkg/vision"
)

// The IN column shows a colored arrow (green up, red down) next to a 1-2
// digit rating change. The sign comes from the arrow color, with an
// ink-centroid fallback for washed-out crops; the magnitude is OCR'd from
// the right half of the cell.

var deltaDigitsRE = regexp.MustCompile(`\d{1,2}`)

// Minimum colored pixels before a sign is trusted, and the margin one color
// must hold over the other.
const (
	signPixelFloor  = 50
	signPixelMargin = 2
)

// ratingDelta parses one IN-column cell. found is false when the cell shows
// no change.
func (p *Pipeline) ratingDelta(cell image.Image) (int, bool, error) {
	w := cell.Bounds().Dx()
	h := cell.Bounds().Dy()
	if w < 4 || h < 2 {
		return 0, false, nil
	}
	arrow := imaging.Crop(cell, image.Rect(0, 0, w/2, h))
	digits := imaging.Crop(cell, image.Rect(int(float64(w)*0.55), 0, w, h))

	sign := signByColor(arrow)
	if sign == 0 {
		sign = signByCentroid(arrow)
	}
	if sign == 0 {
		return 0, false, nil
	}

	prepared := vision.PrepareLine(digits, 4, 12)
	cand, ok, err := ocr.Best(p.Engine, prepared, ocr.CellStrategies(digitWhitelist), digitShape(), nil)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	m := deltaDigitsRE.FindString(cand.Text)
	if m == "" {
		return 0, false, nil
	}
	n := int(m[0] - '0')
	if len(m) == 2 {
		n = n*10 + int(m[1]-'0')
	}
	if n == 0 {
		return 0, false, nil
	}
	return sign * n, true, nil
}

// signByColor counts saturated green and red pixels in the arrow half.
// One color must clear the pixel floor and double the other to win.
func signByColor(arrow image.Image) int {
	green, red := 0, 0
	b := arrow.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(arrow.At(x, y))
			if !ok {
				continue
			}
			hue, sat, val := c.Hsv()
			if sat < 0.2 || val < 0.2 {
				continue
			}
			switch {
			case hue >= 70 && hue <= 170:
				green++
			case hue <= 20 || hue >= 340:
				red++
			}
		}
	}
	if green > maxInt(signPixelFloor, red*signPixelMargin) {
		return 1
	}
	if red > maxInt(signPixelFloor, green*signPixelMargin) {
		return -1
	}
	return 0
}

// signByCentroid falls back to arrow geometry: the ink centroid of an
// up-triangle sits below the middle of its extent, a down-triangle above.
func signByCentroid(arrow image.Image) int {
	level := vision.OtsuLevel(arrow)
	mask := vision.InkMaskFixed(arrow, level)

	b := mask.Bounds()
	count := 0
	sumY := 0
	minY, maxY := b.Max.Y, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.GrayAt(x, y).Y == 0 {
				continue
			}
			count++
			sumY += y
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if count <= 30 || maxY <= minY {
		return 0
	}
	centroid := float64(sumY) / float64(count)
	mid := float64(minY+maxY) / 2
	if centroid > mid {
		return 1
	}
	return -1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
