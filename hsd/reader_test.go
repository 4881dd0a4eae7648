package hsd

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// container builds synthetic HSD bytes following the vendor layout.
type container struct {
	satellite        string
	width, height    uint16
	band             uint16
	wavelength       float64
	bits             uint16
	slope, intercept float64
	c0, c1, c2       float64
	c, h, k          float64
	len8, len9       uint16
	len10            uint32
	data             []uint16
}

func (c container) encode() []byte {
	var b bytes.Buffer
	pad := func(n int) { b.Write(make([]byte, n)) }
	u16 := func(v uint16) { binary.Write(&b, binary.LittleEndian, v) }
	u32 := func(v uint32) { binary.Write(&b, binary.LittleEndian, v) }
	f64 := func(v float64) { binary.Write(&b, binary.LittleEndian, v) }

	pad(6)
	name := make([]byte, 16)
	copy(name, c.satellite)
	b.Write(name)
	pad(260 + 1 + 4)
	u16(c.width)
	u16(c.height)
	pad(41 + 269)
	u16(c.band)
	f64(c.wavelength)
	u16(c.bits)
	pad(4)
	f64(c.slope)
	f64(c.intercept)
	if c.band > 6 {
		f64(c.c0)
		f64(c.c1)
		f64(c.c2)
		pad(24)
		f64(c.c)
		f64(c.h)
		f64(c.k)
		pad(40)
	} else {
		pad(112)
	}
	pad(1 + 47 + 258 + 1)

	if c.len8 == 0 {
		c.len8 = 2
	}
	if c.len9 == 0 {
		c.len9 = 2
	}
	u16(c.len8)
	pad(int(c.len8) - 2)
	u16(c.len9)
	pad(int(c.len9) - 2)
	u32(c.len10)
	pad(int(c.len10))
	pad(254)

	for _, v := range c.data {
		u16(v)
	}
	return b.Bytes()
}

func infraredContainer() container {
	return container{
		satellite:  "Himawari-9",
		width:      4,
		height:     3,
		band:       13,
		wavelength: 10.4,
		bits:       12,
		slope:      -0.004,
		intercept:  130,
		c0:         -0.5, c1: 1.0001, c2: 1e-7,
		c: 2.99792458e8, h: 6.62607e-34, k: 1.38065e-23,
		data: []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	want := infraredContainer()

	tile, err := Decode(bytes.NewReader(want.encode()))
	require.NoError(t, err)

	assert.Equal(t, "Himawari-9", tile.Satellite)
	assert.Equal(t, 4, tile.Width)
	assert.Equal(t, 3, tile.Height)
	assert.Equal(t, 13, tile.Band)
	assert.Equal(t, 10.4, tile.Wavelength)
	assert.Equal(t, 12, tile.Bits)
	assert.Equal(t, -0.004, tile.Slope)
	assert.Equal(t, 130.0, tile.Intercept)
	assert.Equal(t, -0.5, tile.C0)
	assert.Equal(t, 1.0001, tile.C1)
	assert.Equal(t, 1e-7, tile.C2)
	assert.Equal(t, 2.99792458e8, tile.C)
	assert.Equal(t, 6.62607e-34, tile.H)
	assert.Equal(t, 1.38065e-23, tile.K)
	assert.Equal(t, want.data, tile.Data)
	assert.True(t, tile.Calibrated())
}

func TestDecodeVisibleBand(t *testing.T) {
	c := infraredContainer()
	c.band = 1
	c.wavelength = 0.47

	tile, err := Decode(bytes.NewReader(c.encode()))
	require.NoError(t, err)

	assert.Equal(t, 1, tile.Band)
	assert.Zero(t, tile.H)
	assert.Zero(t, tile.C)
	assert.Zero(t, tile.K)
	assert.False(t, tile.Calibrated())
	assert.Equal(t, c.data, tile.Data)
}

// The visible branch pads the radiometric span, so the payload offset
// must not depend on the band.
func TestDecodeOffsetInvariance(t *testing.T) {
	ir := infraredContainer()
	vis := ir
	vis.band = 3

	irBytes := ir.encode()
	visBytes := vis.encode()
	require.Equal(t, len(irBytes), len(visBytes))

	irTile, err := Decode(bytes.NewReader(irBytes))
	require.NoError(t, err)
	visTile, err := Decode(bytes.NewReader(visBytes))
	require.NoError(t, err)

	assert.Equal(t, irTile.Data, visTile.Data)
}

func TestDecodeVariableTrailer(t *testing.T) {
	c := infraredContainer()
	c.len8 = 40
	c.len9 = 10
	c.len10 = 16

	tile, err := Decode(bytes.NewReader(c.encode()))
	require.NoError(t, err)
	assert.Equal(t, c.data, tile.Data)
}

func TestDecodeTruncated(t *testing.T) {
	full := infraredContainer().encode()

	// Cut points inside the fixed header, inside the radiometric block,
	// and inside the payload.
	for _, n := range []int{0, 5, 21, 300, 600, len(full) - 3} {
		_, err := Decode(bytes.NewReader(full[:n]))
		assert.ErrorIs(t, err, ErrMalformedHeader, "cut at %d bytes", n)
	}
}

func TestDecodeRejectsWideSamples(t *testing.T) {
	c := infraredContainer()
	c.bits = 17

	_, err := Decode(bytes.NewReader(c.encode()))
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestDecodeRejectsZeroDimension(t *testing.T) {
	c := infraredContainer()
	c.width = 0
	c.data = nil

	_, err := Decode(bytes.NewReader(c.encode()))
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestSatelliteNameStripping(t *testing.T) {
	c := infraredContainer()
	c.satellite = "Himawari-8"

	raw := c.encode()
	// The name field starts at offset 6; salt it with a high byte.
	raw[6+12] = 0xff

	tile, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Himawari-8", tile.Satellite)
}
