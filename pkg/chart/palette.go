package chart

import "github.com/matzehuels/prism/pkg/geom"

// Palette is the fixed color cycle shared by every chart.
var Palette = [5]geom.Color{
	geom.MustHex("#4361ee"),
	geom.MustHex("#3a0ca3"),
	geom.MustHex("#7209b7"),
	geom.MustHex("#f72585"),
	geom.MustHex("#4cc9f0"),
}

// ColorAt returns the palette color for item i.
func ColorAt(i int) geom.Color {
	n := len(Palette)
	return Palette[((i%n)+n)%n]
}
