/*
Package imgio turns packed RGB buffers into image files. The encoder is
chosen by the destination extension: .png (default), .jpg/.jpeg, and
.tif/.tiff are supported, plus a 256-color quantized PNG for small files.
*/
package imgio

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/tiff"
)

const jpegQuality = 95

// FromRGB wraps a packed height*width*3 buffer as an image.
func FromRGB(width, height int, rgb []uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[4*i+0] = rgb[3*i+0]
		img.Pix[4*i+1] = rgb[3*i+1]
		img.Pix[4*i+2] = rgb[3*i+2]
		img.Pix[4*i+3] = 0xff
	}
	return img
}

// Write encodes img to path, creating parent directories as needed.
func Write(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// WritePaletted quantizes img to at most 256 colors before encoding,
// trading fidelity for file size. Only sensible for PNG output.
func WritePaletted(path string, img image.Image) error {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 256), img)

	pm := image.NewPaletted(img.Bounds(), p)
	draw.Draw(pm, pm.Rect, img, img.Bounds().Min, draw.Src)

	return Write(path, pm)
}
