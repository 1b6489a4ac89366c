// Package nodelink renders a scene's structure as a node-link diagram.
//
// # Overview
//
// A [geom.Scene] is a flat list of elements, each optionally carrying text
// labels. This package draws it as a tree with Graphviz: the scene root on
// the left, one box per bar, point, axis, wedge or mesh, and a plain leaf per
// label. Element boxes are filled with the element's color, which makes the
// palette rotation and the surface height mode easy to check at a glance.
//
// # Usage
//
// Convert a scene to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(scene, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: When true, labels include positions, sizes and colors
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [geom.Scene]: github.com/matzehuels/prism/pkg/geom.Scene
package nodelink
