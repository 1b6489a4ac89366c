// Package layout computes 3D geometry for coerced chart items.
//
// Each engine is a pure function from items to a [geom.Scene]; calling it
// twice with the same input yields identical output, ID included.
//
//	scene := layout.Bars(items.Bars)
//	scene := layout.Scatter(items.Points)
//	scene := layout.Pie(items.Bars)
//	scene := layout.Surface(items.Surface, layout.WithNearest(layout.NearestKDTree))
//
// [Build] dispatches on [chart.Items.Type] and stamps the scene ID.
//
// # Bar
//
// Heights are normalized so the largest value is 5 units tall (values are
// divided by max(values, 1)). Bars sit 1.5 units apart on the X axis,
// centered on the origin, with a minimum rendered height of 0.1.
//
// # Scatter
//
// One sphere per item plus three fixed reference axes, each 10 units long
// and offset 5 units along its own axis.
//
// # Pie
//
// Sectors accumulate in input order from angle 0. Labels are emitted only for
// sectors above 5% of the total. The scene is tilted -45° about X.
//
// # Surface
//
// A 10×10 grid in the XZ plane with max(rows, cols, 10) segments per side.
// When every input point is valid, each vertex takes the height of the input
// point nearest to it in the XZ plane; otherwise heights follow
// sin(x/2)·cos(z/2)·2. The nearest-point search is a linear scan for small
// inputs and a k-d tree for large ones; both break distance ties in favour
// of the earliest point.
package layout
