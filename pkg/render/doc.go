// Package render turns prism scenes into viewable artifacts.
//
// # Overview
//
// Layout engines emit [geom.Scene] descriptors meant for an interactive 3D
// renderer. This package and its subpackages provide static previews and
// exports for the command line:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Scene previews and JSON export (in [sink] subpackage)
//   - Scene-tree diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both sinks use them.
//
//	svg := sink.RenderSVG(scene, opts...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Scene Previews
//
// The [sink] subpackage projects a scene through a fixed perspective camera
// (the same viewpoint the interactive viewer opens with) and paints it back
// to front into an SVG.
//
// # Scene-Tree Diagrams
//
// The [nodelink] subpackage draws the structure of a scene (chart, elements,
// labels) as a Graphviz tree, which is handy when debugging layouts.
//
//	dot := nodelink.ToDOT(scene, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [geom.Scene]: github.com/matzehuels/prism/pkg/geom.Scene
// [sink]: github.com/matzehuels/prism/pkg/render/sink
// [nodelink]: github.com/matzehuels/prism/pkg/render/nodelink
package render
