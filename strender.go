/*
Package strender renders Himawari Standard Data (HSD) and GOES ABI L1b
satellite imagery into color-mapped raster images.

The pipeline for one scene is strictly sequential: decode (merging sibling
segments when present), calibrate infrared counts into brightness
temperatures, map the scalar field through a color ramp, and hand the RGB
buffer to the image writer. Tiles of one scene and channels of one
composite are decoded concurrently; assembly order is fixed, so output
bytes do not depend on the degree of parallelism.
*/
package strender

import (
	"io"
	"log"

	"strender/config"
)

// Renderer renders satellite scenes according to its configuration.
type Renderer struct {
	cfg    *config.Config
	logger *log.Logger
}

// New returns a Renderer. A nil cfg uses the defaults; a nil logger
// discards log output.
func New(cfg *config.Config, logger *log.Logger) *Renderer {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Renderer{
		cfg:    cfg,
		logger: logger,
	}
}
