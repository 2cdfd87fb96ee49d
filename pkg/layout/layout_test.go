package layout

import (
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableCoversAllScreens(t *testing.T) {
	tbl := Default()
	require.Equal(t, 1920, tbl.Width)
	require.Equal(t, 1080, tbl.Height)

	for _, st := range []string{"RosterViewer", "ContractExtensions", "FutureDraftPicks", "TeamStandings"} {
		s, err := tbl.Screen(st)
		require.NoError(t, err, st)
		require.NotEmpty(t, s.Primary, st)
		_, ok := s.Column(s.Primary)
		require.True(t, ok, "%s primary column %q missing", st, s.Primary)
	}

	_, err := tbl.Screen("Unknown")
	require.ErrorIs(t, err, ErrUnknownScreen)
}

func TestColumnsShareVerticalCoordinates(t *testing.T) {
	tbl := Default()
	for _, st := range []string{"RosterViewer", "ContractExtensions", "FutureDraftPicks", "TeamStandings"} {
		s, err := tbl.Screen(st)
		require.NoError(t, err)
		prim, _ := s.Column(s.Primary)
		for name, r := range s.Columns {
			require.Equal(t, prim.Y, r.Y, "%s/%s y", st, name)
			require.Equal(t, prim.H, r.H, "%s/%s h", st, name)
		}
	}
}

func TestDefaultTableTrimsIconColumns(t *testing.T) {
	tbl := Default()

	roster, err := tbl.Screen("RosterViewer")
	require.NoError(t, err)
	name, ok := roster.Column("name")
	require.True(t, ok)
	// Status and injury icons sit at both edges of the roster name column.
	require.Equal(t, 0.02, name.TrimLeft)
	require.Equal(t, 0.02, name.TrimRight)

	contracts, err := tbl.Screen("ContractExtensions")
	require.NoError(t, err)
	name, ok = contracts.Column("name")
	require.True(t, ok)
	require.Equal(t, 0.0, name.TrimLeft)
	require.Equal(t, 0.02, name.TrimRight)
}

func TestCropBoundsCheck(t *testing.T) {
	img := imaging.New(100, 50, color.NRGBA{255, 255, 255, 255})

	got, err := Crop(img, Region{X: 10, Y: 5, W: 30, H: 20})
	require.NoError(t, err)
	require.Equal(t, 30, got.Bounds().Dx())
	require.Equal(t, 20, got.Bounds().Dy())

	for _, r := range []Region{
		{X: 90, Y: 0, W: 20, H: 10},
		{X: 0, Y: 45, W: 10, H: 10},
		{X: -1, Y: 0, W: 10, H: 10},
		{X: 0, Y: 0, W: 0, H: 10},
	} {
		_, err := Crop(img, r)
		require.True(t, errors.Is(err, ErrRegionOutOfBounds), "region %+v", r)
	}
}

func TestTrimWidth(t *testing.T) {
	r := Region{X: 100, Y: 0, W: 200, H: 50}
	trimmed := r.TrimWidth(0.02, 0.02)
	require.Equal(t, 104, trimmed.X)
	require.Equal(t, 192, trimmed.W)
	require.Equal(t, r.Y, trimmed.Y)
	require.Equal(t, r.H, trimmed.H)
}
