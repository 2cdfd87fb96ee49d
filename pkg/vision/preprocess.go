// Package vision prepares screenshot crops for line detection and OCR.
package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// InkMask binarizes a column crop so that ink is foreground (white, 255) on a
// black background, regardless of the UI's text polarity. Mean adaptive
// threshold over a square window, then a median pass to kill single-pixel
// speckle and one dilation to close thin glyph strokes.
func InkMask(img image.Image) *image.Gray {
	gray := imaging.Grayscale(img)
	mask := adaptiveInkMask(gray, 31, 12)
	cleaned := effect.Median(mask, 3)
	grown := effect.Dilate(cleaned, 1)
	return toBinaryGray(grown)
}

// adaptiveInkMask marks pixels darker than the local window mean minus bias
// as ink. Uses an integral image so the window mean is O(1) per pixel.
func adaptiveInkMask(img *image.NRGBA, window, bias int) *image.Gray {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	half := window / 2

	ints := make([]int, w*h)
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			rowSum += int(luma8(img, x, y))
			idx := y*w + x
			if y == 0 {
				ints[idx] = rowSum
			} else {
				ints[idx] = ints[(y-1)*w+x] + rowSum
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := max(0, x-half), max(0, y-half)
			x1, y1 := min(w-1, x+half), min(h-1, y+half)
			sum := ints[y1*w+x1]
			if x0 > 0 {
				sum -= ints[y1*w+x0-1]
			}
			if y0 > 0 {
				sum -= ints[(y0-1)*w+x1]
			}
			if x0 > 0 && y0 > 0 {
				sum += ints[(y0-1)*w+x0-1]
			}
			mean := sum / ((x1 - x0 + 1) * (y1 - y0 + 1))
			th := mean - bias
			if th < 0 {
				th = 0
			}
			if int(luma8(img, x, y)) < th {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// OtsuLevel picks the global threshold that maximizes between-class variance
// of the luma histogram.
func OtsuLevel(img image.Image) uint8 {
	var hist [256]int
	b := img.Bounds()
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			hist[uint8((r+g+bb)/3>>8)]++
			total++
		}
	}
	if total == 0 {
		return 127
	}

	sumAll := 0.0
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}
	var (
		sumBg, wBg float64
		bestVar    float64
		level      uint8
	)
	for i := 0; i < 256; i++ {
		wBg += float64(hist[i])
		if wBg == 0 {
			continue
		}
		wFg := float64(total) - wBg
		if wFg == 0 {
			break
		}
		sumBg += float64(i) * float64(hist[i])
		meanBg := sumBg / wBg
		meanFg := (sumAll - sumBg) / wFg
		v := wBg * wFg * (meanBg - meanFg) * (meanBg - meanFg)
		if v > bestVar {
			bestVar = v
			level = uint8(i)
		}
	}
	return level
}

// Binarize applies a global threshold: pixels at or below the level become
// black, everything else white.
func Binarize(img image.Image, level uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			v := uint8(255)
			if uint8((r+g+bb)/3>>8) <= level {
				v = 0
			}
			out.Set(x-b.Min.X, y-b.Min.Y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}

// InkMaskFixed thresholds at a fixed level and orients the result so ink is
// foreground (white) whatever the cell's polarity.
func InkMaskFixed(img image.Image, level uint8) *image.Gray {
	bw := Binarize(img, level)
	if meanLuma(bw) > 127 {
		bw = imaging.Invert(bw)
	}
	return toBinaryGray(bw)
}

// PrepareLine turns a line crop into OCR input: Otsu binarization, black ink
// on white background, scaled up, with a white border so glyphs do not touch
// the edge.
func PrepareLine(img image.Image, scale float64, border int) *image.NRGBA {
	bw := Binarize(img, OtsuLevel(img))
	if meanLuma(bw) < 127 {
		bw = imaging.Invert(bw)
	}
	w := int(float64(bw.Bounds().Dx()) * scale)
	h := int(float64(bw.Bounds().Dy()) * scale)
	scaled := imaging.Resize(bw, w, h, imaging.Lanczos)
	if border <= 0 {
		return scaled
	}
	canvas := imaging.New(w+2*border, h+2*border, color.NRGBA{255, 255, 255, 255})
	return imaging.PasteCenter(canvas, scaled)
}

// EncodePNG renders an image to PNG bytes for the OCR engine.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func meanLuma(img image.Image) float64 {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0
	}
	sum := 0.0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			sum += float64((r + g + bb) / 3 >> 8)
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}

func luma8(img *image.NRGBA, x, y int) uint8 {
	c := img.NRGBAAt(x, y)
	return uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
}

func toBinaryGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			if (r+g+bb)/3>>8 >= 128 {
				out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
