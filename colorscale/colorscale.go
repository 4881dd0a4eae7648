/*
Package colorscale maps scalar rasters to packed 8-bit RGB buffers.

Grayscale operates on raw counts; the BD, Color2 and WVNRL ramps operate on
brightness temperatures in Kelvin. Each temperature ramp is a ladder of
right-open bands (> low, <= high) that covers the whole real line, and a
temperature of exactly 0 K, the missing-data sentinel, always renders
black.
*/
package colorscale

import (
	"fmt"
	"strings"
)

// Scale selects one of the fixed ramp variants. The set is closed; ramps
// are dispatched by tag, not extended by callers.
type Scale int

const (
	// Grayscale shifts raw counts down to 8 bits.
	Grayscale Scale = iota
	// BD is the aviation "BD curve" single-channel enhancement.
	BD
	// Color2 is a three-channel cloud-top enhancement.
	Color2
	// WVNRL is tuned for the water-vapor channels.
	WVNRL
)

func (s Scale) String() string {
	switch s {
	case Grayscale:
		return "grayscale"
	case BD:
		return "bd"
	case Color2:
		return "color2"
	case WVNRL:
		return "wvnrl"
	}
	return fmt.Sprintf("Scale(%d)", int(s))
}

// Parse accepts a ramp by name or by the numeric code the original tool
// used (0-3).
func Parse(s string) (Scale, error) {
	switch strings.ToLower(s) {
	case "0", "grayscale", "bw":
		return Grayscale, nil
	case "1", "bd":
		return BD, nil
	case "2", "color2":
		return Color2, nil
	case "3", "wvnrl", "wv":
		return WVNRL, nil
	}
	return Grayscale, fmt.Errorf("colorscale: unknown scale %q", s)
}

// Gray maps raw counts to a packed RGB buffer by dropping the count down
// to 8 bits and replicating it across the channels.
func Gray(data []uint16, bits int) []uint8 {
	shift := 0
	if bits > 8 {
		shift = bits - 8
	}
	out := make([]uint8, 3*len(data))
	for i, v := range data {
		g := uint8(v >> shift)
		out[3*i], out[3*i+1], out[3*i+2] = g, g, g
	}
	return out
}

// Map renders a brightness-temperature field through the ramp, returning a
// packed height*width*3 RGB buffer. Grayscale has no temperature ramp; use
// Gray on the raw counts instead.
func (s Scale) Map(temps []float64) []uint8 {
	out := make([]uint8, 3*len(temps))
	switch s {
	case Color2:
		for i, t := range temps {
			out[3*i], out[3*i+1], out[3*i+2] = color2R(t), color2G(t), color2B(t)
		}
	case WVNRL:
		for i, t := range temps {
			out[3*i], out[3*i+1], out[3*i+2] = wvnrlR(t), wvnrlG(t), wvnrlB(t)
		}
	default:
		for i, t := range temps {
			v := bd(t)
			out[3*i], out[3*i+1], out[3*i+2] = v, v, v
		}
	}
	return out
}

// u8 clamps a ramp expression into channel range.
func u8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func bd(t float64) uint8 {
	switch {
	case t <= 0:
		return 0
	case t > 303.15:
		return 0
	case t > 282.15:
		return u8((303.15 - t) * 12)
	case t > 242.15:
		return u8((282.15-t)*2 + 100)
	case t > 231.15:
		return 80
	case t > 219.15:
		return 130
	case t > 209.15:
		return 190
	case t > 203.15:
		return 0
	case t > 197.15:
		return 255
	case t > 192.15:
		return 170
	default:
		return 120
	}
}

func color2R(t float64) uint8 {
	switch {
	case t <= 0:
		return 0
	case t > 303.15:
		return 0
	case t > 243.15:
		return u8((303.15 - t) * 4)
	case t > 223.15:
		return 50
	case t > 203.15:
		return 0
	case t > 193.15:
		return u8((203.15-t)*15 + 100)
	case t > 183.15:
		return u8((t - 183.15) * 25)
	default:
		return u8((t - 173.15) * 25)
	}
}

func color2G(t float64) uint8 {
	switch {
	case t <= 0:
		return 0
	case t > 303.15:
		return 0
	case t > 243.15:
		return u8((303.15 - t) * 4)
	case t > 223.15:
		return u8((t-223.15)*6 + 120)
	case t > 213.15:
		return 0
	case t > 203.15:
		return u8((213.15-t)*15 + 100)
	case t > 193.15:
		return 0
	case t > 183.15:
		return u8((t - 183.15) * 25)
	default:
		return u8((t - 173.15) * 25)
	}
}

func color2B(t float64) uint8 {
	switch {
	case t <= 0:
		return 0
	case t > 303.15:
		return 0
	case t > 243.15:
		return u8((303.15 - t) * 4)
	case t > 223.15:
		return u8((t-223.15)*6 + 120)
	case t > 213.15:
		return u8((223.15-t)*15 + 100)
	case t > 183.15:
		return 0
	default:
		return u8((t - 173.15) * 25)
	}
}

func wvnrlR(t float64) uint8 {
	switch {
	case t <= 0:
		return 0
	case t > 273.15:
		return 127
	case t > 263.15:
		return u8((t-263.15)*10.8 + 20)
	case t > 253.15:
		return u8(20 + (263.15-t)*3)
	case t > 243.15:
		return u8(50 + (253.15-t)*7.8)
	case t > 233.15:
		return u8((127 + 243.15 - t) * 12.8)
	case t > 223.15:
		return 255
	default:
		return u8(127 + (t-203.15)*6.4)
	}
}

func wvnrlG(t float64) uint8 {
	switch {
	case t <= 0:
		return 0
	case t > 273.15:
		return 0
	case t > 263.15:
		return u8((273.15 - t) * 10)
	case t > 253.15:
		return u8(100 + (263.15-t)*5)
	case t > 243.15:
		return u8(150 + (253.15-t)*10.5)
	case t > 233.15:
		return 255
	case t > 223.15:
		return u8(180 + (t-223.15)*7.5)
	default:
		return u8((t - 203.15) * 9)
	}
}

func wvnrlB(t float64) uint8 {
	switch {
	case t <= 0:
		return 0
	case t > 273.15:
		return 140
	case t > 263.15:
		return u8(140 + (273.15-t)*9)
	case t > 253.15:
		return u8(230 + (263.15-t)*2.5)
	case t > 243.15:
		return 255
	case t > 233.15:
		return u8(127 + (t-233.15)*12.8)
	case t > 223.15:
		return u8(100 + (t-223.15)*2.8)
	default:
		return u8((t - 203.15) * 5)
	}
}
