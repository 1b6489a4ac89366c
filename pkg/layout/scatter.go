package layout

import (
	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/geom"
)

// Scatter layout constants.
const (
	SphereSegments = 16
	AxisLength     = 10.0
	AxisThickness  = 0.05
)

// Axis colors.
var (
	AxisX = geom.MustHex("#ff0000")
	AxisY = geom.MustHex("#008000")
	AxisZ = geom.MustHex("#0000ff")
)

// Scatter places one sphere per item at its coordinates and adds the
// reference axes.
func Scatter(items []chart.ScatterItem) geom.Scene {
	scene := geom.Scene{
		Chart:  geom.ChartScatter,
		Points: make([]geom.Point, len(items)),
		Axes:   Axes(),
	}
	for i, it := range items {
		p := geom.Point{
			Index:    i,
			Center:   geom.V(it.X, it.Y, it.Z),
			Radius:   it.Size,
			Segments: SphereSegments,
			Color:    chart.ColorAt(i),
			Jittered: it.Jittered,
		}
		if it.Label != "" {
			p.Label = &geom.Text{
				Content:  it.Label,
				Position: geom.V(it.X, it.Y+it.Size+ValueMargin, it.Z),
				Anchor:   geom.AnchorBottom,
				FontSize: FontSize,
			}
		}
		scene.Points[i] = p
	}
	return scene
}

// Axes returns the three fixed reference bars of a scatter scene, in X, Y, Z
// order.
func Axes() []geom.Box {
	const half = AxisLength / 2
	return []geom.Box{
		{Center: geom.V(half, 0, 0), Size: geom.V(AxisLength, AxisThickness, AxisThickness), Color: AxisX},
		{Center: geom.V(0, half, 0), Size: geom.V(AxisThickness, AxisLength, AxisThickness), Color: AxisY},
		{Center: geom.V(0, 0, half), Size: geom.V(AxisThickness, AxisThickness, AxisLength), Color: AxisZ},
	}
}
