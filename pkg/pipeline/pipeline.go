// Package pipeline provides the ingest → layout → render pipeline for prism.
//
// This package wires record ingestion, coercion, layout and the output sinks
// together with caching, so the CLI commands share one implementation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Ingest: Read records from a JSON, CSV or YAML file
//  2. Layout: Coerce records to chart items and compute the scene geometry
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "sales.csv",
//	    Chart:   "bar",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	recs, err := runner.Ingest(ctx, opts)
//	scene, err := runner.Layout(ctx, recs, opts)
//	artifacts, err := runner.Render(ctx, scene, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prism/pkg/cache"
	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/geom"
	"github.com/matzehuels/prism/pkg/layout"
	"github.com/matzehuels/prism/pkg/record"
	"github.com/matzehuels/prism/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for all commands
// =============================================================================

const (
	// DefaultWidth is the default preview width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default preview height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the supported output formats in presentation order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Ingest options
	Source string `json:"source,omitempty"` // input file path

	// Layout options
	Chart   string `json:"chart"`
	Nearest string `json:"nearest,omitempty"` // auto, scan or kdtree
	Seed    uint64 `json:"seed,omitempty"`    // scatter jitter seed; 0 draws fresh randomness

	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	Grid    bool     `json:"grid,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	NoCache bool        `json:"-"`
	Logger  *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records are the ingested input rows.
	Records []record.Record

	// Scene is the computed geometry.
	Scene geom.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Elements   int
	IngestTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // scene came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateChart checks that a chart type is valid and returns its canonical
// name ("pie3d" is accepted as "pie").
func ValidateChart(name string) (string, error) {
	t, err := chart.ParseChartType(name)
	if err != nil {
		return "", err
	}
	return string(t), nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates the chart type and nearest strategy and sets
// layout defaults.
func (o *Options) ValidateForLayout() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	c, err := ValidateChart(o.Chart)
	if err != nil {
		return err
	}
	o.Chart = c
	if o.Nearest == "" {
		o.Nearest = string(layout.NearestAuto)
	}
	_, err = layout.ParseNearest(o.Nearest)
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Reproducible reports whether a layout computed with these options can be
// reproduced. Scatter charts with a zero seed jitter missing coordinates
// with fresh randomness and must not be served from cache.
func (o *Options) Reproducible() bool {
	return o.Chart != string(chart.Scatter) || o.Seed != 0
}

// LayoutKeyOpts returns cache key options for layout computation. The
// nearest strategy is left out since every strategy yields the same scene.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{Chart: o.Chart}
	if o.Chart == string(chart.Scatter) {
		opts.Seed = o.Seed
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format != FormatJSON {
		opts.Width = o.Width
		opts.Height = o.Height
		opts.Grid = o.Grid
		opts.Title = o.Title
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
