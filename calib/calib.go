/*
Package calib converts raw sensor counts into brightness temperatures.

HSD tiles embed the physical constants for an inverse-Planck conversion:
radiance is recovered from the linear count calibration, then

	T = (H*c / (k*wl)) / ln((2*H*c^2 / wl^5) / L + 1)

GOES ABI L1b granules arrive pre-scaled with the two Planck terms already
folded in, so their conversion is the direct T = fk2 / ln(fk1/L + 1).

A brightness temperature of exactly 0 K is the missing-data sentinel: any
count whose radiance would make the logarithm argument non-positive maps to
0 K rather than NaN, and the color ramps render it black.
*/
package calib

import (
	"errors"
	"fmt"
	"math"

	"strender/goes"
	"strender/hsd"
)

// ErrUnsupportedBand is returned when brightness-temperature conversion is
// requested for a tile whose header carried no radiometric constants
// (bands 1-6).
var ErrUnsupportedBand = errors.New("calib: no radiometric constants for band")

// Planck converts t's raw counts into brightness temperatures, attaches
// the result to t.Temp and returns it.
//
// The sample space is bounded by the bit depth while the pixel count is
// not, so the transcendental inversion runs once per distinct count via a
// lookup table and pixels are filled from that.
func Planck(t *hsd.Tile) ([]float64, error) {
	if !t.Calibrated() {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedBand, t.Band)
	}

	wl := t.Wavelength * 1e-6 // micrometres to metres
	hcOverKWl := t.H * t.C / (t.K * wl)
	// The 1e-6 factor normalizes spectral radiance to the vendor's units.
	h2ccOverWl5 := 2 * t.H * t.C * t.C / math.Pow(wl, 5) * 1e-6

	lut := make(map[uint16]float64)
	temps := make([]float64, len(t.Data))
	for i, v := range t.Data {
		kelvin, ok := lut[v]
		if !ok {
			kelvin = invertPlanck(t.Slope*float64(v)+t.Intercept, hcOverKWl, h2ccOverWl5)
			lut[v] = kelvin
		}
		temps[i] = kelvin
	}

	t.Temp = temps
	return temps, nil
}

// invertPlanck maps one radiance value to a brightness temperature,
// absorbing domain errors as the 0 K sentinel.
func invertPlanck(radiance, hcOverKWl, h2ccOverWl5 float64) float64 {
	arg := h2ccOverWl5/radiance + 1
	if math.IsNaN(arg) || arg <= 0 {
		return 0
	}
	kelvin := hcOverKWl / math.Log(arg)
	if math.IsNaN(kelvin) {
		return 0
	}
	return kelvin
}

// GOES converts an ABI L1b record's scaled counts into brightness
// temperatures, attaches the result to rec.Temp and returns it. Fill
// values (negative counts) collapse to the 0 K sentinel.
func GOES(rec *goes.Record) []float64 {
	temps := make([]float64, len(rec.Data))
	for i, v := range rec.Data {
		radiance := float64(v)*rec.ScaleFactor + rec.AddOffset
		arg := rec.PlanckFk1/radiance + 1
		if math.IsNaN(arg) || arg <= 0 {
			continue
		}
		kelvin := rec.PlanckFk2 / math.Log(arg)
		if math.IsNaN(kelvin) {
			continue
		}
		temps[i] = kelvin
	}
	rec.Temp = temps
	return temps
}
