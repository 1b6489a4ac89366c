// Package chart turns loosely-typed records into the fixed item shapes each
// chart type needs.
//
// # Chart Types
//
// [ChartType] selects both the coercion rules and the layout algorithm:
//
//	chart.Bar      // "bar"      label + value, vertical boxes
//	chart.Scatter  // "scatter"  x, y, z, size, label; spheres
//	chart.Pie      // "pie"      label + value, extruded sectors
//	chart.Surface  // "surface"  x, y, z; height-mapped grid
//
// # Coercion
//
// [Coerce] never fails. Every numeric field is parsed as a float; missing or
// unparseable values are replaced with a per-type default:
//
//	bar, pie   value    -> 0
//	scatter    x, y, z  -> uniform random in [-5, 5] (jitter)
//	scatter    size     -> 0.5
//	surface    x, y, z  -> 0
//
// Labels default to "{Kind} {i}" with a 1-based index: "Item 3", "Point 2",
// "Segment 4". Scatter jitter reads from a random source that can be fixed
// with [WithRand], which is how seeded pipelines stay reproducible.
//
// # Palette
//
// [ColorAt] maps an item index to one of five fixed colors, cycling with
// period five. All layout engines share it.
package chart
