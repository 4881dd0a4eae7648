/*
Package enhance is the cosmetic post-processing pass applied to rendered
imagery. It reproduces the ImageMagick invocation the products were tuned
with:

	convert in.png -level 0%,100%,1.5 -modulate 100,250,102 -contrast out.png

The pass changes pixel values only; dimensions are preserved.
*/
package enhance

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Params are the enhancement controls. Percentage fields use 100 as the
// identity, matching -modulate semantics.
type Params struct {
	LevelGamma float64 // gamma of the -level pass, 1.0 = identity
	Brightness float64 // percent
	Saturation float64 // percent
	Hue        float64 // percent; 100 = no shift, each point is 1.8 degrees
	Contrast   bool    // apply a -contrast style boost
}

// Defaults returns the tuning used for published imagery.
func Defaults() Params {
	return Params{
		LevelGamma: 1.5,
		Brightness: 100,
		Saturation: 250,
		Hue:        102,
		Contrast:   true,
	}
}

// Apply runs the enhancement chain over img.
func Apply(img image.Image, p Params) *image.NRGBA {
	out := imaging.Clone(img)

	if p.LevelGamma != 0 && p.LevelGamma != 1 {
		out = imaging.AdjustGamma(out, p.LevelGamma)
	}
	if p.Brightness != 100 {
		out = imaging.AdjustBrightness(out, p.Brightness-100)
	}
	if p.Saturation != 100 {
		// -modulate saturation is a multiplier; AdjustSaturation takes
		// a -100..100 percentage delta.
		out = imaging.AdjustSaturation(out, clampPercent(p.Saturation-100))
	}
	if p.Hue != 100 {
		out = rotateHue(out, (p.Hue-100)/100*180)
	}
	if p.Contrast {
		out = imaging.AdjustContrast(out, 20)
	}
	return out
}

func clampPercent(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < -100 {
		return -100
	}
	return v
}

// rotateHue shifts the hue of every pixel by degrees. Neither imaging nor
// x/image exposes a modulate-style hue rotation, so the HSV round trip is
// done here.
func rotateHue(img *image.NRGBA, degrees float64) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		h, s, v := rgbToHSV(out.Pix[i], out.Pix[i+1], out.Pix[i+2])
		h = math.Mod(h+degrees+360, 360)
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = hsvToRGB(h, s, v)
	}
	return out
}

func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	v = max

	d := max - min
	if max > 0 {
		s = d / max
	}
	if d == 0 {
		return 0, s, v
	}

	switch max {
	case rf:
		h = math.Mod((gf-bf)/d, 6)
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	return uint8((rf + m) * 255), uint8((gf + m) * 255), uint8((bf + m) * 255)
}
