package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/geom"
)

// Pie layout constants.
const (
	PieRadius       = 2.0
	PieDepth        = 0.5
	PieLabelRadius  = 3.0
	PieLabelHeight  = 0.3
	PieLabelMinimum = 0.05 // sectors at or below this fraction get no label
)

// Tilt is the presentation rotation about X shared by pie and surface scenes.
const Tilt = -math.Pi / 4

// Pie lays out one extruded sector per item. Sectors accumulate in input
// order; a total of zero is treated as one so every angle stays defined.
func Pie(items []chart.BarItem) geom.Scene {
	scene := geom.Scene{Chart: geom.ChartPie, Tilt: Tilt, Wedges: make([]geom.Wedge, len(items))}

	var total float64
	for _, it := range items {
		total += it.Value
	}
	if total == 0 {
		total = 1
	}

	var start float64
	for i, it := range items {
		p := it.Value / total
		end := start + p*2*math.Pi

		w := geom.Wedge{
			Index:      i,
			Label:      it.Label,
			Value:      it.Value,
			Percentage: p,
			Start:      start,
			End:        end,
			Radius:     PieRadius,
			Depth:      PieDepth,
			Color:      chart.ColorAt(i),
		}
		if p > PieLabelMinimum {
			mid := w.Mid()
			w.Text = &geom.Text{
				Content:  fmt.Sprintf("%s (%d%%)", it.Label, int(math.Floor(p*100+0.5))),
				Position: geom.V(math.Sin(mid)*PieLabelRadius, PieLabelHeight, math.Cos(mid)*PieLabelRadius),
				Anchor:   geom.AnchorCenter,
				FontSize: FontSize,
			}
		}
		scene.Wedges[i] = w
		start = end
	}
	return scene
}
