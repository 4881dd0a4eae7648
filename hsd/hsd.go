/*
Package hsd implements a decoder for Himawari Standard Data (HSD) tile
containers.

An HSD file holds one spatial segment of a full-disk or regional scene as a
sequence of fixed-layout header blocks followed by the pixel payload. There
is no self-describing schema; every field sits at a hard-coded offset, all
multi-byte values are little-endian, and the payload is width*height
unsigned 16-bit samples in row-major order. Headers for infrared bands
(band > 6) carry an extra set of radiometric constants; the visible-band
variant pads the same 112-byte span so that the payload begins at the same
absolute offset either way.

A full scene is split vertically into up to ten segments, each stored as a
separate container. Merge stacks decoded segments back into one raster.
*/
package hsd

// Number of segments a scene can be split into. Segment indices in file
// names run from 1 to segmentCount.
const segmentCount = 10

// maxBits caps the declared sample bit depth; the payload is stored as
// 16-bit words.
const maxBits = 16

// Tile is one decoded HSD segment.
//
// A Tile is not modified after decoding except for Temp, which the calib
// package attaches once brightness temperatures have been derived.
type Tile struct {
	Satellite  string  // e.g. "Himawari-9"
	Width      int     // pixels per row
	Height     int     // rows
	Band       int     // 1-16
	Wavelength float64 // center wavelength, micrometres
	Bits       int     // valid bits per sample, at most 16
	Slope      float64 // linear calibration slope
	Intercept  float64 // linear calibration intercept

	// Radiometric constants, present only for band > 6.
	C0, C1, C2 float64 // sensitivity correction polynomial
	C          float64 // speed of light, vendor-scaled
	H          float64 // Planck constant
	K          float64 // Boltzmann constant

	Data []uint16  // raw samples, row-major, Width*Height long
	Temp []float64 // brightness temperature (K), set by calibration
}

// Calibrated reports whether the tile header carried the radiometric
// constants needed for brightness-temperature conversion.
func (t *Tile) Calibrated() bool {
	return t.H != 0 && t.C != 0 && t.K != 0
}
