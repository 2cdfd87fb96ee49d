package segment

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// maskWithBars builds an ink mask with solid foreground bars at the given
// row spans.
func maskWithBars(w, h int, bars [][2]int) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for _, b := range bars {
		for y := b[0]; y < b[1]; y++ {
			for x := 0; x < w; x++ {
				m.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return m
}

func TestFindLinesOrderAndInvariants(t *testing.T) {
	h := 300
	bars := [][2]int{{20, 36}, {70, 86}, {120, 136}, {250, 266}}
	bands := FindLines(maskWithBars(100, h, bars), DefaultConfig())

	require.Len(t, bands, len(bars))
	prevY1 := 0
	for i, b := range bands {
		require.GreaterOrEqual(t, b.Y0, 0, "band %d", i)
		require.Less(t, b.Y0, b.Y1, "band %d", i)
		require.LessOrEqual(t, b.Y1, h, "band %d", i)
		require.GreaterOrEqual(t, b.Height(), DefaultConfig().MinHeight, "band %d", i)
		require.GreaterOrEqual(t, b.Y0, prevY1, "band %d overlaps previous", i)
		prevY1 = b.Y1
	}
	// Top-to-bottom order matches the bar order.
	for i := range bars {
		require.LessOrEqual(t, bands[i].Y0, bars[i][0])
		require.GreaterOrEqual(t, bands[i].Y1, bars[i][1])
	}
}

func TestFindLinesDiscardsNoiseRows(t *testing.T) {
	// One real line plus a 2-row speck: the speck is under MinHeight even
	// after smoothing and must be dropped.
	bands := FindLines(maskWithBars(100, 200, [][2]int{{40, 56}, {120, 122}}), DefaultConfig())
	require.Len(t, bands, 1)
	require.LessOrEqual(t, bands[0].Y0, 40)
}

func TestFindLinesEmptyColumn(t *testing.T) {
	bands := FindLines(maskWithBars(100, 200, nil), DefaultConfig())
	require.Empty(t, bands)

	bands = FindLines(image.NewGray(image.Rect(0, 0, 0, 0)), DefaultConfig())
	require.Empty(t, bands)
}

func TestFindLinesAdjacentBandsStayDisjoint(t *testing.T) {
	// Two lines separated by fewer rows than 2*Pad: padding must not make
	// them overlap.
	bands := FindLines(maskWithBars(100, 120, [][2]int{{20, 36}, {42, 58}}), DefaultConfig())
	require.Len(t, bands, 2)
	require.GreaterOrEqual(t, bands[1].Y0, bands[0].Y1)
}

func TestClampTo(t *testing.T) {
	b := Band{Y0: 10, Y1: 30}

	got, ok := b.ClampTo(25)
	require.True(t, ok)
	require.Equal(t, Band{Y0: 10, Y1: 25}, got)

	_, ok = b.ClampTo(10)
	require.False(t, ok)

	got, ok = b.ClampTo(100)
	require.True(t, ok)
	require.Equal(t, b, got)
}

func TestPercentile(t *testing.T) {
	v := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	require.InDelta(t, 7.0, percentile(v, 85), 1.0)
	require.Equal(t, 0.0, percentile(nil, 85))
}
