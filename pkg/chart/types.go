package chart

import (
	"strings"

	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/geom"
)

// ChartType selects coercion and layout.
type ChartType string

// Chart types.
const (
	Bar     ChartType = geom.ChartBar
	Scatter ChartType = geom.ChartScatter
	Pie     ChartType = geom.ChartPie
	Surface ChartType = geom.ChartSurface
)

// Types lists every chart type in presentation order.
func Types() []ChartType {
	return []ChartType{Bar, Scatter, Pie, Surface}
}

// ParseChartType accepts a chart name, case-insensitively. The "3d" suffixed
// names used by the web front end ("bar3d", "scatter3d", "pie3d") are
// accepted too.
func ParseChartType(s string) (ChartType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "3d")
	for _, t := range Types() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidChartType,
		"invalid chart type %q (must be bar, scatter, pie or surface)", s)
}

// Valid reports whether t is a known chart type.
func (t ChartType) Valid() bool {
	switch t {
	case Bar, Scatter, Pie, Surface:
		return true
	}
	return false
}

// String returns the chart name.
func (t ChartType) String() string { return string(t) }

// ItemKind returns the noun used in default labels.
func (t ChartType) ItemKind() string {
	switch t {
	case Bar:
		return "Item"
	case Scatter:
		return "Point"
	case Pie:
		return "Segment"
	default:
		return ""
	}
}

// Description is a one-line summary shown by the CLI chart picker.
func (t ChartType) Description() string {
	switch t {
	case Bar:
		return "vertical bars, heights normalized to the largest value"
	case Scatter:
		return "spheres at (x, y, z) with reference axes"
	case Pie:
		return "extruded sectors proportional to each value"
	case Surface:
		return "height-mapped grid from (x, y, z) samples"
	default:
		return ""
	}
}

// Fields returns the record fields the chart type reads.
func (t ChartType) Fields() []string {
	switch t {
	case Bar, Pie:
		return []string{"label", "value"}
	case Scatter:
		return []string{"x", "y", "z", "size", "label"}
	case Surface:
		return []string{"x", "y", "z"}
	default:
		return nil
	}
}
