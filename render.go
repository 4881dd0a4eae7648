package strender

import (
	"fmt"
	"image"

	"strender/calib"
	"strender/colorscale"
	"strender/composite"
	"strender/enhance"
	"strender/goes"
	"strender/hsd"
	"strender/imgio"
)

// RenderHSD decodes the HSD tile at path (merging sibling segments when
// configured), maps it through scale and writes the image to out.
func (r *Renderer) RenderHSD(path, out string, scale colorscale.Scale) error {
	tile, err := r.readScene(path)
	if err != nil {
		return err
	}

	r.logger.Printf("%s: %s %dx%d band %d", path, tile.Satellite, tile.Width, tile.Height, tile.Band)

	rgb, err := rasterize(tile, scale)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return r.write(out, imgio.FromRGB(tile.Width, tile.Height, rgb))
}

// RenderGOES decodes the ABI L1b granule at path, maps it through scale
// and writes the image to out.
func (r *Renderer) RenderGOES(path, out string, scale colorscale.Scale) error {
	rec, err := goes.Read(path)
	if err != nil {
		return err
	}

	r.logger.Printf("%s: %dx%d channel %d", path, rec.X, rec.Y, rec.Band)

	var rgb []uint8
	if scale == colorscale.Grayscale {
		rgb = colorscale.Gray(rec.Counts(), goes.Bits)
	} else {
		calib.GOES(rec)
		rgb = scale.Map(rec.Temp)
	}

	return r.write(out, imgio.FromRGB(rec.X, rec.Y, rgb))
}

// CompositeRGB builds a true-color image from three visible-band tiles,
// decoding the channels concurrently, and writes it to out. A gamma of 0
// uses the configured value.
func (r *Renderer) CompositeRGB(redPath, greenPath, bluePath, out string, gamma float64) error {
	if gamma <= 0 {
		gamma = r.cfg.Composite.Gamma
	}

	tiles, err := r.decodeTiles([]string{redPath, greenPath, bluePath})
	if err != nil {
		return err
	}

	img, err := composite.Compose(tiles[0], tiles[1], tiles[2], gamma)
	if err != nil {
		return err
	}

	return r.write(out, img)
}

// rasterize maps a tile to a packed RGB buffer. Visible bands (1-3) carry
// no radiometric constants and always render their raw counts through the
// grayscale ramp.
func rasterize(t *hsd.Tile, scale colorscale.Scale) ([]uint8, error) {
	if scale == colorscale.Grayscale || t.Band <= 3 {
		return colorscale.Gray(t.Data, t.Bits), nil
	}
	if _, err := calib.Planck(t); err != nil {
		return nil, err
	}
	return scale.Map(t.Temp), nil
}

// readScene resolves path into a single raster, stitching sibling
// segments when discovery finds any. A segmented path whose siblings are
// absent degrades to the single tile.
func (r *Renderer) readScene(path string) (*hsd.Tile, error) {
	if !r.cfg.Render.Merge {
		return hsd.Open(path)
	}

	members := hsd.SceneMembers(path)
	switch len(members) {
	case 0:
		return hsd.Open(path)
	case 1:
		// Discovery may have resolved path to its extracted form.
		r.logger.Printf("%s: no sibling segments found, rendering single tile", path)
		return hsd.Open(members[0])
	}

	r.logger.Printf("%s: merging %d segments", path, len(members))
	tiles, err := r.decodeTiles(members)
	if err != nil {
		return nil, err
	}
	return hsd.Merge(tiles)
}

func (r *Renderer) write(path string, img image.Image) error {
	if r.cfg.Render.Enhance {
		p := enhance.Defaults()
		p.LevelGamma = r.cfg.Enhance.LevelGamma
		p.Saturation = r.cfg.Enhance.Saturation
		p.Hue = r.cfg.Enhance.Hue
		p.Contrast = r.cfg.Enhance.Contrast
		img = enhance.Apply(img, p)
	}

	r.logger.Printf("writing %s", path)

	if r.cfg.Render.Palette {
		return imgio.WritePaletted(path, img)
	}
	return imgio.Write(path, img)
}
