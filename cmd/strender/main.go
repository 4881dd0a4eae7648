package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"strender"
	"strender/colorscale"
	"strender/config"
)

const defaultConfig = "strender.yaml"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// outputPath picks the destination image path: an explicit name wins, an
// output directory rebases it, and by default the input name gains a .png
// suffix.
func outputPath(input, out, outdir string) string {
	if out == "" {
		out = input + ".png"
	}
	if outdir != "" {
		out = filepath.Join(outdir, filepath.Base(out))
	}
	return out
}

func newRenderer(c *cli.Context) (*strender.Renderer, *config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	if c.IsSet("no-merge") {
		cfg.Render.Merge = !c.Bool("no-merge")
	}
	if c.IsSet("enhance") {
		cfg.Render.Enhance = c.Bool("enhance")
	}
	if c.IsSet("palette") {
		cfg.Render.Palette = c.Bool("palette")
	}

	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return strender.New(cfg, logger), cfg, nil
}

func scaleFlag(c *cli.Context, cfg *config.Config) (colorscale.Scale, error) {
	name := c.String("color")
	if name == "" {
		name = cfg.Render.Scale
	}
	return colorscale.Parse(name)
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "strender"
	app.Usage = "Himawari/GOES satellite imagery renderer"
	app.Version = "5.2.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"STRENDER_CONFIG"},
			Value:   defaultConfig,
			Usage:   "path to configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	renderFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "color",
			Usage: "color ramp: grayscale, bd, color2, wvnrl (or 0-3)",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "output image name (default: input name + .png)",
		},
		&cli.StringFlag{
			Name:  "outdir",
			Usage: "output directory",
		},
		&cli.BoolFlag{
			Name:  "enhance",
			Usage: "apply the cosmetic enhancement pass",
		},
		&cli.BoolFlag{
			Name:  "palette",
			Usage: "quantize output to a 256-color PNG",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "hsd",
			Usage:     "Render a Himawari Standard Data tile",
			ArgsUsage: "FILE",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{
					Name:  "no-merge",
					Usage: "render the single tile without sibling discovery",
				},
			}, renderFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				r, cfg, err := newRenderer(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				scale, err := scaleFlag(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				input := c.Args().First()
				if err := r.RenderHSD(input, outputPath(input, c.String("out"), c.String("outdir")), scale); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "goes",
			Usage:     "Render a GOES ABI L1b radiance granule",
			ArgsUsage: "FILE",
			Flags:     renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				r, cfg, err := newRenderer(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				scale, err := scaleFlag(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				input := c.Args().First()
				if err := r.RenderGOES(input, outputPath(input, c.String("out"), c.String("outdir")), scale); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "config",
			Usage: "Write a default configuration file",
			Action: func(c *cli.Context) error {
				if err := config.Save(config.Default(), c.String("config")); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:  "rgb",
			Usage: "Compose a true-color image from three visible bands",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "red",
					Usage:    "HSD file for the red channel",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "green",
					Usage:    "HSD file for the green channel",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "blue",
					Usage:    "HSD file for the blue channel",
					Required: true,
				},
				&cli.Float64Flag{
					Name:  "gamma",
					Usage: "gamma correction (default from config)",
				},
			}, renderFlags...),
			Action: func(c *cli.Context) error {
				r, _, err := newRenderer(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				out := c.String("out")
				if out == "" {
					out = "rgb_composite.png"
				}
				if dir := c.String("outdir"); dir != "" {
					out = filepath.Join(dir, filepath.Base(out))
				}

				if err := r.CompositeRGB(c.String("red"), c.String("green"), c.String("blue"), out, c.Float64("gamma")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
