package pipeline

import (
	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/geom"
	"github.com/matzehuels/prism/pkg/layout"
	"github.com/matzehuels/prism/pkg/record"
)

// Coerce converts records to chart items using the chart type and jitter
// seed in opts. A zero seed draws jitter from the process-wide generator.
func Coerce(recs []record.Record, opts Options) chart.Items {
	var copts []chart.Option
	if opts.Seed != 0 {
		copts = append(copts, chart.WithSeed(opts.Seed))
	}
	return chart.Coerce(recs, chart.ChartType(opts.Chart), copts...)
}

// GenerateLayout coerces records and computes the scene. opts must have
// passed ValidateForLayout.
func GenerateLayout(recs []record.Record, opts Options) (geom.Scene, error) {
	return LayoutItems(Coerce(recs, opts), opts)
}

// LayoutItems computes the scene for already coerced items.
func LayoutItems(items chart.Items, opts Options) (geom.Scene, error) {
	return layout.Build(items, layout.WithNearest(layout.Nearest(opts.Nearest)))
}
