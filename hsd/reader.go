package hsd

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

var (
	// ErrMalformedHeader is returned when the container is truncated or
	// structurally inconsistent.
	ErrMalformedHeader = errors.New("hsd: malformed header")

	// ErrWidthMismatch is returned by Merge when sibling segments
	// disagree on raster width.
	ErrWidthMismatch = errors.New("hsd: segment width mismatch")
)

// cursor walks a byte stream, tracking the absolute offset so failures can
// report where the contract broke.
type cursor struct {
	r   io.Reader
	off int64
}

func (c *cursor) read(b []byte) error {
	n, err := io.ReadFull(c.r, b)
	c.off += int64(n)
	if err != nil {
		return fmt.Errorf("%w: short read at offset %d", ErrMalformedHeader, c.off)
	}
	return nil
}

func (c *cursor) skip(n int64) error {
	m, err := io.CopyN(io.Discard, c.r, n)
	c.off += m
	if err != nil {
		return fmt.Errorf("%w: short skip at offset %d", ErrMalformedHeader, c.off)
	}
	return nil
}

func (c *cursor) u16() (uint16, error) {
	var b [2]byte
	if err := c.read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (c *cursor) u32() (uint32, error) {
	var b [4]byte
	if err := c.read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (c *cursor) f64() (float64, error) {
	var b [8]byte
	if err := c.read(b[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}

// Decode reads one HSD container from r and returns the decoded tile.
//
// The byte choreography below is the vendor's fixed contract; both the
// infrared and visible branches of the radiometric block consume 112 bytes
// so the payload offset does not depend on the band.
func Decode(r io.Reader) (*Tile, error) {
	c := &cursor{r: r}
	t := new(Tile)

	if err := c.skip(6); err != nil {
		return nil, err
	}

	var name [16]byte
	if err := c.read(name[:]); err != nil {
		return nil, err
	}
	t.Satellite = satelliteName(name[:])

	if err := c.skip(260 + 1 + 4); err != nil {
		return nil, err
	}

	width, err := c.u16()
	if err != nil {
		return nil, err
	}
	height, err := c.u16()
	if err != nil {
		return nil, err
	}
	t.Width, t.Height = int(width), int(height)
	if t.Width == 0 || t.Height == 0 {
		return nil, fmt.Errorf("%w: zero raster dimension %dx%d", ErrMalformedHeader, t.Width, t.Height)
	}

	if err := c.skip(41 + 269); err != nil {
		return nil, err
	}

	band, err := c.u16()
	if err != nil {
		return nil, err
	}
	t.Band = int(band)

	if t.Wavelength, err = c.f64(); err != nil {
		return nil, err
	}

	bits, err := c.u16()
	if err != nil {
		return nil, err
	}
	t.Bits = int(bits)
	if t.Bits > maxBits {
		return nil, fmt.Errorf("%w: %d-bit samples exceed the 16-bit payload", ErrMalformedHeader, t.Bits)
	}

	if err := c.skip(4); err != nil {
		return nil, err
	}

	if t.Slope, err = c.f64(); err != nil {
		return nil, err
	}
	if t.Intercept, err = c.f64(); err != nil {
		return nil, err
	}

	if t.Band > 6 {
		for _, p := range []*float64{&t.C0, &t.C1, &t.C2} {
			if *p, err = c.f64(); err != nil {
				return nil, err
			}
		}
		if err := c.skip(24); err != nil {
			return nil, err
		}
		for _, p := range []*float64{&t.C, &t.H, &t.K} {
			if *p, err = c.f64(); err != nil {
				return nil, err
			}
		}
		if err := c.skip(40); err != nil {
			return nil, err
		}
	} else {
		// Visible bands carry no constants; the span is padding.
		if err := c.skip(112); err != nil {
			return nil, err
		}
	}

	if err := c.skip(1 + 47 + 258 + 1); err != nil {
		return nil, err
	}

	// Three variable-length trailer blocks, each prefixed by its own
	// length.
	len8, err := c.u16()
	if err != nil {
		return nil, err
	}
	if len8 < 2 {
		return nil, fmt.Errorf("%w: block 8 length %d", ErrMalformedHeader, len8)
	}
	if err := c.skip(int64(len8) - 2); err != nil {
		return nil, err
	}

	len9, err := c.u16()
	if err != nil {
		return nil, err
	}
	if len9 < 2 {
		return nil, fmt.Errorf("%w: block 9 length %d", ErrMalformedHeader, len9)
	}
	if err := c.skip(int64(len9) - 2); err != nil {
		return nil, err
	}

	len10, err := c.u32()
	if err != nil {
		return nil, err
	}
	if err := c.skip(int64(len10)); err != nil {
		return nil, err
	}

	if err := c.skip(254); err != nil {
		return nil, err
	}

	n := t.Width * t.Height
	raw := make([]byte, 2*n)
	if err := c.read(raw); err != nil {
		return nil, err
	}
	t.Data = make([]uint16, n)
	for i := range t.Data {
		t.Data[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}

	return t, nil
}

// Open decodes the HSD container at path. A path ending in .bz2 is
// decompressed transparently; the container bytes reach the decoder
// unchanged.
func Open(path string) (*Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(r)
	}

	t, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// satelliteName strips NULs and anything non-ASCII from the fixed-width
// name field.
func satelliteName(b []byte) string {
	b = bytes.TrimRight(b, "\x00")
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
