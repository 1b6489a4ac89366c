package layout

import (
	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/geom"
)

// Option configures layout engines.
type Option func(*options)

type options struct {
	nearest Nearest
}

func newOptions(opts []Option) options {
	o := options{nearest: NearestAuto}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithNearest selects the surface nearest-point strategy. Every strategy
// produces the same heights.
func WithNearest(n Nearest) Option {
	return func(o *options) {
		if n != "" {
			o.nearest = n
		}
	}
}

// ParseNearest validates a strategy name.
func ParseNearest(s string) (Nearest, error) {
	switch n := Nearest(s); n {
	case "":
		return NearestAuto, nil
	case NearestAuto, NearestScan, NearestKDTree:
		return n, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid nearest strategy %q (must be auto, scan or kdtree)", s)
	}
}

// Build lays out items according to their chart type and sets the scene ID.
// It fails only for an unknown chart type.
func Build(items chart.Items, opts ...Option) (geom.Scene, error) {
	var scene geom.Scene
	switch items.Type {
	case chart.Bar:
		scene = Bars(items.Bars)
	case chart.Pie:
		scene = Pie(items.Bars)
	case chart.Scatter:
		scene = Scatter(items.Points)
	case chart.Surface:
		scene = Surface(items.Surface, opts...)
	default:
		return geom.Scene{}, errors.New(errors.ErrCodeInvalidChartType, "invalid chart type %q", items.Type)
	}
	scene.ID = scene.Fingerprint()
	return scene, nil
}
