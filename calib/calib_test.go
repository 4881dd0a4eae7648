package calib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strender/goes"
	"strender/hsd"
)

func infraredTile(data []uint16) *hsd.Tile {
	return &hsd.Tile{
		Satellite:  "Himawari-9",
		Width:      len(data),
		Height:     1,
		Band:       13,
		Wavelength: 10.4,
		Bits:       12,
		Slope:      -0.004,
		Intercept:  130,
		C:          2.99792458e8,
		H:          6.62607015e-34,
		K:          1.380649e-23,
		Data:       data,
	}
}

// direct is the uncached Planck inversion the lookup table must agree
// with.
func direct(t *hsd.Tile, count uint16) float64 {
	wl := t.Wavelength * 1e-6
	hcOverKWl := t.H * t.C / (t.K * wl)
	h2ccOverWl5 := 2 * t.H * t.C * t.C / math.Pow(wl, 5) * 1e-6

	radiance := t.Slope*float64(count) + t.Intercept
	return hcOverKWl / math.Log(h2ccOverWl5/radiance+1)
}

func TestPlanckLUTEquivalence(t *testing.T) {
	// Repeated counts exercise the lookup path; the result must match
	// the direct computation for every pixel.
	data := []uint16{0, 100, 100, 2048, 4095, 2048, 0, 1}
	tile := infraredTile(data)

	temps, err := Planck(tile)
	require.NoError(t, err)
	require.Len(t, temps, len(data))

	for i, v := range data {
		want := direct(tile, v)
		assert.InEpsilon(t, want, temps[i], 1e-9, "count %d", v)
	}
}

func TestPlanckAttachesTemp(t *testing.T) {
	tile := infraredTile([]uint16{10, 20})

	temps, err := Planck(tile)
	require.NoError(t, err)
	assert.Equal(t, temps, tile.Temp)
}

func TestPlanckMonotonicDecreasing(t *testing.T) {
	// Slope is negative, so higher counts mean lower radiance and
	// colder brightness temperatures.
	tile := infraredTile([]uint16{100, 2000, 4000})

	temps, err := Planck(tile)
	require.NoError(t, err)
	assert.Greater(t, temps[0], temps[1])
	assert.Greater(t, temps[1], temps[2])
}

func TestPlanckDomainErrorSentinel(t *testing.T) {
	tile := infraredTile([]uint16{5, 100})
	// Force a small negative radiance: the log argument goes
	// non-positive and the pixel must collapse to 0 K, not NaN.
	tile.Slope = 1
	tile.Intercept = -10

	temps, err := Planck(tile)
	require.NoError(t, err)

	assert.Zero(t, temps[0])
	assert.False(t, math.IsNaN(temps[1]))
	assert.Greater(t, temps[1], 0.0)
}

func TestPlanckUnsupportedBand(t *testing.T) {
	tile := infraredTile([]uint16{1, 2, 3})
	tile.Band = 5
	tile.C, tile.H, tile.K = 0, 0, 0

	_, err := Planck(tile)
	assert.ErrorIs(t, err, ErrUnsupportedBand)
	assert.Nil(t, tile.Temp)
}

func TestGOES(t *testing.T) {
	rec := &goes.Record{
		X: 4, Y: 1,
		Band:        13,
		ScaleFactor: 0.04,
		AddOffset:   -0.03,
		PlanckFk1:   1.08033e4,
		PlanckFk2:   1.39274e3,
		Data:        []int16{-1, 100, 1000, 100},
	}

	temps := GOES(rec)
	require.Len(t, temps, 4)

	// Fill value: radiance goes negative, sentinel applies.
	assert.Zero(t, temps[0])

	radiance := 100*0.04 - 0.03
	want := 1.39274e3 / math.Log(1.08033e4/radiance+1)
	assert.InEpsilon(t, want, temps[1], 1e-9)
	assert.InEpsilon(t, want, temps[3], 1e-9)

	assert.Equal(t, temps, rec.Temp)
}
