// Package sink provides output format renderers for prism scenes.
//
// # Overview
//
// A "sink" transforms a computed [geom.Scene] into a final output format:
//
//   - SVG: static perspective preview
//   - JSON: scene data for external 3D renderers
//   - PDF: print-ready preview (requires rsvg-convert)
//   - PNG: raster preview (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] views the scene from the interactive viewer's starting camera,
// (0, 2, 10) looking at the origin with a 60° field of view. Boxes, spheres,
// extruded wedges and mesh triangles are projected, lit by an ambient term
// plus one point light, and painted back to front. Labels are painted on top.
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithSize(1024, 768),
//	    sink.WithGrid(),
//	)
//
// The preview is an approximation meant for reports and quick checks; it does
// not resolve intersecting geometry.
//
// # JSON Output
//
// [RenderJSON] writes the scene itself, optionally annotated with the input
// path and jitter seed. Any 3D engine can draw it without importing prism.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the SVG preview and convert it via
// [render.ToPDF] and [render.ToPNG]:
//
//	pdf, err := sink.RenderPDF(ctx, scene, opts...)
//	png, err := sink.RenderPNG(ctx, scene, sink.WithScale(2), opts...)
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [geom.Scene]: github.com/matzehuels/prism/pkg/geom.Scene
// [render.ToPDF]: github.com/matzehuels/prism/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/prism/pkg/render.ToPNG
package sink
