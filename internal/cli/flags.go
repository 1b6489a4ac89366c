package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/prism/pkg/pipeline"
)

// chartFlags holds the flags shared by commands that lay out or render
// scenes. Which of them a command registers depends on its stages.
type chartFlags struct {
	chart   string
	seed    uint64
	nearest string

	formats string
	width   int
	height  int
	grid    bool
	scale   float64
	title   string

	output  string
	noCache bool
}

func (f *chartFlags) registerLayout(fs *pflag.FlagSet) {
	fs.StringVarP(&f.chart, "chart", "c", "", "chart type: bar, scatter, pie, surface")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for scatter jitter (0: random, uncached)")
	fs.StringVar(&f.nearest, "nearest", "", "surface nearest-point search: auto (default), scan, kdtree")
}

func (f *chartFlags) registerRender(fs *pflag.FlagSet) {
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	fs.IntVar(&f.width, "width", 0, "preview width in pixels (default 800)")
	fs.IntVar(&f.height, "height", 0, "preview height in pixels (default 600)")
	fs.BoolVar(&f.grid, "grid", false, "draw the floor grid in previews")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fs.StringVar(&f.title, "title", "", "SVG document title")
}

func (f *chartFlags) registerCommon(fs *pflag.FlagSet, outputHelp string) {
	fs.StringVarP(&f.output, "output", "o", "", outputHelp)
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options merges flags over config values. Flags the user did not set fall
// back to the config file, then to pipeline defaults.
func (c *CLI) options(cmd *cobra.Command, f *chartFlags) pipeline.Options {
	cfg := c.Config
	changed := cmd.Flags().Changed

	opts := pipeline.Options{
		Chart:   f.chart,
		Seed:    f.seed,
		Nearest: f.nearest,
		Formats: parseFormats(f.formats),
		Width:   f.width,
		Height:  f.height,
		Grid:    f.grid,
		Scale:   f.scale,
		Title:   f.title,
		NoCache: f.noCache,
		Logger:  c.Logger,
	}
	if !changed("chart") && cfg.Chart != "" {
		opts.Chart = cfg.Chart
	}
	if !changed("seed") && cfg.Seed != 0 {
		opts.Seed = cfg.Seed
	}
	if !changed("nearest") && cfg.Nearest != "" {
		opts.Nearest = cfg.Nearest
	}
	if !changed("format") && len(cfg.Formats) > 0 {
		opts.Formats = cfg.Formats
	}
	if !changed("width") && cfg.Width > 0 {
		opts.Width = cfg.Width
	}
	if !changed("height") && cfg.Height > 0 {
		opts.Height = cfg.Height
	}
	if !changed("grid") && cfg.Grid {
		opts.Grid = true
	}
	return opts
}
