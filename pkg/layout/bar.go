package layout

import (
	"strconv"

	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/geom"
)

// Bar layout constants.
const (
	BarMaxHeight = 5.0
	BarSpacing   = 1.5
	BarWidth     = 1.0
	BarMinHeight = 0.1
	LabelMargin  = 0.5 // gap between the bar base and its caption
	ValueMargin  = 0.3 // gap between the bar top and its value text
	FontSize     = 0.3
)

// Bars lays out one box per item along the X axis.
func Bars(items []chart.BarItem) geom.Scene {
	scene := geom.Scene{Chart: geom.ChartBar, Bars: make([]geom.Bar, len(items))}

	maxValue := 1.0
	for _, it := range items {
		maxValue = max(maxValue, it.Value)
	}

	n := len(items)
	for i, it := range items {
		h := it.Value / maxValue * BarMaxHeight
		x := float64(i)*BarSpacing - float64(n-1)*BarSpacing/2
		center := geom.V(x, h/2, 0)

		scene.Bars[i] = geom.Bar{
			Index:  i,
			Label:  it.Label,
			Value:  it.Value,
			Height: h,
			Box: geom.Box{
				Center: center,
				Size:   geom.V(BarWidth, max(h, BarMinHeight), BarWidth),
				Color:  chart.ColorAt(i),
			},
			Caption: geom.Text{
				Content:  it.Label,
				Position: geom.V(x, center.Y-h/2-LabelMargin, 0),
				Anchor:   geom.AnchorTop,
				FontSize: FontSize,
			},
			ValueText: geom.Text{
				Content:  formatValue(it.Value),
				Position: geom.V(x, center.Y+h/2+ValueMargin, 0),
				Anchor:   geom.AnchorBottom,
				FontSize: FontSize,
			},
		}
	}
	return scene
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
