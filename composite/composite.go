/*
Package composite builds true-color RGB images from three visible-band
tiles.

Each band is normalized against its full count range, gamma corrected, and
the smaller bands are resampled up or down so all three share the smallest
common dimensions before being stacked into one image.
*/
package composite

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"strender/hsd"
)

// DefaultGamma is the gamma correction applied when the caller does not
// choose one.
const DefaultGamma = 2.2

// Normalize scales raw counts into 8-bit luminance with gamma correction
// applied against the full range of the band's bit depth.
func Normalize(data []uint16, bits int, gamma float64) []uint8 {
	if gamma <= 0 {
		gamma = DefaultGamma
	}
	max := float64(uint32(1)<<uint(bits) - 1)
	inv := 1 / gamma
	out := make([]uint8, len(data))
	for i, v := range data {
		c := math.Pow(float64(v)/max, inv) * 255
		if c > 255 {
			c = 255
		}
		out[i] = uint8(c)
	}
	return out
}

// Compose stacks three band tiles into one RGB image. Bands of different
// resolutions are resampled to the smallest width and height among the
// three.
func Compose(red, green, blue *hsd.Tile, gamma float64) (*image.NRGBA, error) {
	for _, t := range []*hsd.Tile{red, green, blue} {
		if t == nil || len(t.Data) != t.Width*t.Height {
			return nil, fmt.Errorf("composite: band raster is incomplete")
		}
	}

	width := min3(red.Width, green.Width, blue.Width)
	height := min3(red.Height, green.Height, blue.Height)

	r := channel(red, width, height, gamma)
	g := channel(green, width, height, gamma)
	b := channel(blue, width, height, gamma)

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		out.Pix[4*i+0] = r[i]
		out.Pix[4*i+1] = g[i]
		out.Pix[4*i+2] = b[i]
		out.Pix[4*i+3] = 0xff
	}
	return out, nil
}

// channel normalizes one band and resamples it to the target dimensions
// when they differ.
func channel(t *hsd.Tile, width, height int, gamma float64) []uint8 {
	pix := Normalize(t.Data, t.Bits, gamma)
	if t.Width == width && t.Height == height {
		return pix
	}

	gray := &image.Gray{
		Pix:    pix,
		Stride: t.Width,
		Rect:   image.Rect(0, 0, t.Width, t.Height),
	}
	resized := imaging.Resize(gray, width, height, imaging.Lanczos)

	out := make([]uint8, width*height)
	for i := range out {
		out[i] = resized.Pix[4*i]
	}
	return out
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
